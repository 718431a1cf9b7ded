package response

import (
	"time"

	"dampit-rental/internal/data/entity"
)

type VehicleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Capacity  int       `json:"capacity"`
	Price     int64     `json:"price"`
	Overtime  int64     `json:"overtime"`
	Include   string    `json:"include"`
	Area      string    `json:"area"`
	Parking   string    `json:"parking"`
	Payment   string    `json:"payment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func VehicleToResponse(vehicle *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        vehicle.ID.String(),
		Name:      vehicle.Name,
		Model:     vehicle.Model,
		Capacity:  vehicle.Capacity,
		Price:     vehicle.Price,
		Overtime:  vehicle.Overtime,
		Include:   vehicle.Include,
		Area:      vehicle.Area,
		Parking:   vehicle.Parking,
		Payment:   vehicle.Payment,
		CreatedAt: vehicle.CreatedAt,
		UpdatedAt: vehicle.UpdatedAt,
	}
}
