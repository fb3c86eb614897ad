package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bhasaconnect/internal/core/user"
	"bhasaconnect/internal/ports/apiclient"
	"bhasaconnect/internal/ports/users"

	"github.com/tidwall/gjson"
)

// UsersServiceREST آداپتر خروجی برای endpointهای کاربران
type UsersServiceREST struct {
	client *Client
}

func NewUsersServiceREST(client *Client) *UsersServiceREST {
	return &UsersServiceREST{client: client}
}

var _ users.UsersService = (*UsersServiceREST)(nil)

func (s *UsersServiceREST) SearchUsers(ctx context.Context, query string, page, limit int) (*users.SearchPage, error) {
	endpoint := fmt.Sprintf("/api/users/search?q=%s&page=%d&limit=%d", url.QueryEscape(query), page, limit)
	raw, err := s.client.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var wp struct {
		Items   []wireUser `json:"items"`
		Total   int        `json:"total"`
		Page    int        `json:"page"`
		Limit   int        `json:"limit"`
		HasNext bool       `json:"has_next"`
	}
	if err := json.Unmarshal(unwrapData(raw), &wp); err != nil {
		return nil, err
	}

	result := &users.SearchPage{
		Items:   make([]*user.User, 0, len(wp.Items)),
		Total:   wp.Total,
		Page:    wp.Page,
		Limit:   wp.Limit,
		HasNext: wp.HasNext,
	}
	for _, w := range wp.Items {
		result.Items = append(result.Items, w.toDomain())
	}
	return result, nil
}

func (s *UsersServiceREST) GetUserProfile(ctx context.Context, userID string) (*user.User, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *UsersServiceREST) FollowUser(ctx context.Context, userID string) error {
	_, err := s.client.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/follow", nil)
	return err
}

func (s *UsersServiceREST) UnfollowUser(ctx context.Context, userID string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(userID)+"/follow", nil)
	return err
}

func (s *UsersServiceREST) UpdateProfile(ctx context.Context, data users.ProfileUpdate) (*user.User, error) {
	raw, err := s.client.do(ctx, http.MethodPut, "/api/users/profile", data)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *UsersServiceREST) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	_, err := s.client.do(ctx, http.MethodPut, "/api/users/password", body)
	return err
}

func (s *UsersServiceREST) UploadAvatar(ctx context.Context, up apiclient.Upload) (string, error) {
	raw, err := s.client.upload(ctx, "/api/users/upload-avatar", up)
	if err != nil {
		return "", err
	}

	for _, key := range []string{"data.profile_picture", "data.url", "profile_picture", "url"} {
		if v := gjson.GetBytes(raw, key); v.Exists() && v.String() != "" {
			return v.String(), nil
		}
	}
	return "", errors.New("upload response did not contain an avatar url")
}

func decodeUser(raw []byte) (*user.User, error) {
	var w wireUser
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, errors.New("response did not contain a user")
	}
	return w.toDomain(), nil
}
