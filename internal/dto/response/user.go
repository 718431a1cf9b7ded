package response

import (
	"time"

	"dampit-rental/internal/data/entity"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Gender     *string   `json:"gender,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Contact    *string   `json:"contact,omitempty"`
	KTP        *string   `json:"ktp,omitempty"`
	IsVerified string    `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	var gender *string
	if user.Gender != nil {
		g := string(*user.Gender)
		gender = &g
	}

	return UserResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Role:       string(user.Role),
		Gender:     gender,
		Avatar:     user.Avatar,
		Address:    user.Address,
		Contact:    user.Contact,
		KTP:        user.KTP,
		IsVerified: string(user.IsVerified),
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
