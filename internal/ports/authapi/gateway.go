package authapi

import (
	"context"

	"bhasaconnect/internal/core/user"
)

// AuthGateway پورت عملیات احراز هویت علیه بک‌اند
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (*TokenPair, error)
	Register(ctx context.Context, data RegisterData) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*user.User, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TokenPair توکن‌های برگشتی از login؛ refresh token ممکن است خالی باشد
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
