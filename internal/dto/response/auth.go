package response

// AuthResponse is returned on login, OAuth login and email verification.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
