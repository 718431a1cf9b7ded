package request

// UpdateProfileRequest covers both self-service and admin profile
// edits. Pointers distinguish "leave as is" from "set to empty".
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address   *string `json:"address"`
	Contact   *string `json:"contact"`
}

// UserFilterRequest is the admin listing filter.
type UserFilterRequest struct {
	Role      string `json:"role" validate:"omitempty,oneof=admin user"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	PaginatedRequest
}
