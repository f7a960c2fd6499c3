package response

import (
	"time"

	"speaker-booking/internal/data/entity"
)

type UserResponse struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	UserType      entity.UserType `json:"user_type"`
	EmailVerified bool            `json:"email_verified"`
	CreatedAt     time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		UserType:      user.UserType,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
