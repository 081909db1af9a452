package dto

import (
	"time"

	"shopdesk_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewUserRes(u entity.User) UserRes {
	return UserRes{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// SignupRes is returned by /signup.
type SignupRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// UserEnvelope wraps user payloads of /userDetail and /updateProfile.
type UserEnvelope struct {
	Data    UserRes `json:"data"`
	Success bool    `json:"success"`
	Error   bool    `json:"error"`
	Message string  `json:"message"`
}
