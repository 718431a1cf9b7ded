package response

import (
	"time"

	"dampit-rental/internal/data/entity"
)

type ReservationResponse struct {
	ID                      string           `json:"id"`
	UserID                  string           `json:"userId"`
	VehicleID               string           `json:"vehicleId"`
	PickUp                  string           `json:"pickUp"`
	DropOff                 string           `json:"dropOff"`
	Passengers              int              `json:"passengers"`
	Institution             string           `json:"institution"`
	Unit                    int              `json:"unit"`
	PickDate                time.Time        `json:"pickDate"`
	DropDate                time.Time        `json:"dropDate"`
	Status                  string           `json:"status"`
	TotalPrice              int64            `json:"totalPrice"`
	IsOvertime              bool             `json:"isOvertime"`
	OvertimeHour            int              `json:"overtimeHour"`
	TotalPriceAfterOvertime int64            `json:"totalPriceAfterOvertime"`
	FinishedAt              *time.Time       `json:"finishedAt,omitempty"`
	User                    *UserResponse    `json:"user,omitempty"`
	Vehicle                 *VehicleResponse `json:"vehicle,omitempty"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                      r.ID.String(),
		UserID:                  r.UserID.String(),
		VehicleID:               r.VehicleID.String(),
		PickUp:                  r.PickUp,
		DropOff:                 r.DropOff,
		Passengers:              r.Passengers,
		Institution:             string(r.Institution),
		Unit:                    r.Unit,
		PickDate:                r.PickDate,
		DropDate:                r.DropDate,
		Status:                  string(r.Status),
		TotalPrice:              r.TotalPrice,
		IsOvertime:              r.IsOvertime,
		OvertimeHour:            r.OvertimeHour,
		TotalPriceAfterOvertime: r.TotalPriceAfterOvertime,
		FinishedAt:              r.FinishedAt,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

// ReservationToDetailResponse attaches the joined user and vehicle.
func ReservationToDetailResponse(r *entity.Reservation, user *entity.User, vehicle *entity.Vehicle) ReservationResponse {
	resp := ReservationToResponse(r)
	if user != nil {
		u := UserToResponse(user)
		resp.User = &u
	}
	if vehicle != nil {
		v := VehicleToResponse(vehicle)
		resp.Vehicle = &v
	}
	return resp
}
