package serializers

import (
	"time"

	"lms/models"
)

// UserResponse is the wire shape of an account, password excluded
type UserResponse struct {
	ID             uint        `json:"id"`
	Email          string      `json:"email"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Role           models.Role `json:"role"`
	Phone          string      `json:"phone"`
	Bio            string      `json:"bio"`
	ProfilePicture string      `json:"profile_picture"`
	CreatedAt      time.Time   `json:"created_at"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           user.Role,
		Phone:          user.Phone,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}
}
