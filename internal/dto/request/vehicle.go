package request

type CreateVehicleRequest struct {
	Name     string `json:"name" validate:"required"`
	Model    string `json:"model" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Price    int64  `json:"price" validate:"required,min=1"`
	Overtime int64  `json:"overtime" validate:"gte=0"`
	Include  string `json:"include"`
	Area     string `json:"area"`
	Parking  string `json:"parking"`
	Payment  string `json:"payment"`
}

type UpdateVehicleRequest struct {
	Name     *string `json:"name"`
	Model    *string `json:"model"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	Price    *int64  `json:"price" validate:"omitempty,min=1"`
	Overtime *int64  `json:"overtime" validate:"omitempty,gte=0"`
	Include  *string `json:"include"`
	Area     *string `json:"area"`
	Parking  *string `json:"parking"`
	Payment  *string `json:"payment"`
}
