package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

type AuthResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
	// Token travels in the cookie only
	Token string `json:"-"`
}

type UserResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) *AuthResponse {
	return &AuthResponse{
		User:      UserToResponse(user),
		ExpiresAt: expiresAt,
		Token:     token,
	}
}
