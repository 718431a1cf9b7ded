package request

type CreateReservationRequest struct {
	VehicleID   string `json:"vehicleId" validate:"required,uuid"`
	PickUp      string `json:"pickUp" validate:"required"`
	DropOff     string `json:"dropOff" validate:"required"`
	Passengers  int    `json:"passengers" validate:"required,min=1"`
	Institution string `json:"institution" validate:"required,oneof=personal company organization others"`
	Unit        int    `json:"unit" validate:"required,min=1"`
	PickDate    string `json:"pickDate" validate:"required"`
	DropDate    string `json:"dropDate" validate:"required"`
}

// UpdateStatusRequest is the admin transition request. OvertimeHour is
// required (and must be >= 0) when the new status is finished.
type UpdateStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=approved rejected finished"`
	OvertimeHour *int   `json:"overtimeHour" validate:"omitempty,gte=0"`
}

type UpdateReservationRequest struct {
	PickUp      *string `json:"pickUp"`
	DropOff     *string `json:"dropOff"`
	Passengers  *int    `json:"passengers" validate:"omitempty,min=1"`
	Institution *string `json:"institution" validate:"omitempty,oneof=personal company organization others"`
	Unit        *int    `json:"unit" validate:"omitempty,min=1"`
	PickDate    *string `json:"pickDate"`
	DropDate    *string `json:"dropDate"`
}

// DateRangeRequest filters reservations on creation time.
type DateRangeRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	PaginatedRequest
}
