package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusApproved  ReservationStatus = "approved"
	ReservationStatusRejected  ReservationStatus = "rejected"
	ReservationStatusFinished  ReservationStatus = "finished"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Institution string

const (
	InstitutionPersonal     Institution = "personal"
	InstitutionCompany      Institution = "company"
	InstitutionOrganization Institution = "organization"
	InstitutionOthers       Institution = "others"
)

// Reservation is the central transactional entity. TotalPrice is fixed
// at creation; TotalPriceAfterOvertime and FinishedAt are written
// exactly once, on the approved -> finished transition.
type Reservation struct {
	Base
	UserID                  uuid.UUID         `db:"user_id"`
	VehicleID               uuid.UUID         `db:"vehicle_id"`
	PickUp                  string            `db:"pick_up"`
	DropOff                 string            `db:"drop_off"`
	Passengers              int               `db:"passengers"`
	Institution             Institution       `db:"institution"`
	Unit                    int               `db:"unit"`
	PickDate                time.Time         `db:"pick_date"`
	DropDate                time.Time         `db:"drop_date"`
	Status                  ReservationStatus `db:"status"`
	TotalPrice              int64             `db:"total_price"`
	IsOvertime              bool              `db:"is_overtime"`
	OvertimeHour            int               `db:"overtime_hour"`
	TotalPriceAfterOvertime int64             `db:"total_price_after_overtime"`
	FinishedAt              *time.Time        `db:"finished_at"`
}
