package users

import (
	"context"

	"bhasaconnect/internal/core/user"
	"bhasaconnect/internal/ports/apiclient"
)

// UsersService پورت جستجو، فالو و پروفایل کاربران
type UsersService interface {
	SearchUsers(ctx context.Context, query string, page, limit int) (*SearchPage, error)
	GetUserProfile(ctx context.Context, userID string) (*user.User, error)
	FollowUser(ctx context.Context, userID string) error
	UnfollowUser(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, data ProfileUpdate) (*user.User, error)
	UpdatePassword(ctx context.Context, currentPassword, newPassword string) error
	UploadAvatar(ctx context.Context, up apiclient.Upload) (string, error)
}

type ProfileUpdate struct {
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Bio                string   `json:"bio,omitempty"`
	Languages          []string `json:"languages,omitempty"`
	Place              string   `json:"place,omitempty"`
	District           string   `json:"district,omitempty"`
	State              string   `json:"state,omitempty"`
	EmailNotifications *bool    `json:"email_notifications,omitempty"`
}

// SearchPage یک صفحه از نتایج جستجوی کاربران
type SearchPage struct {
	Items   []*user.User `json:"items"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	HasNext bool         `json:"has_next"`
}
