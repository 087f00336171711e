package response

import (
	"time"

	"vet-clinic/internal/data/entity"
)

// UserResponse is the public view of an account. The password hash is
// never part of it.
type UserResponse struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Role         entity.UserRole `json:"role"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	LastAccessAt *time.Time      `json:"last_access_at,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		FullName:     user.FullName,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt,
		LastAccessAt: user.LastAccessAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = UserToResponse(u)
	}
	return out
}
