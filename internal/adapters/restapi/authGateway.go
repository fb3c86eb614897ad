package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"bhasaconnect/internal/core/user"
	"bhasaconnect/internal/ports/authapi"
)

// AuthGatewayREST آداپتر خروجی برای endpointهای auth بک‌اند
type AuthGatewayREST struct {
	client *Client
}

func NewAuthGatewayREST(client *Client) *AuthGatewayREST {
	return &AuthGatewayREST{client: client}
}

var _ authapi.AuthGateway = (*AuthGatewayREST)(nil)

func (g *AuthGatewayREST) Login(ctx context.Context, creds authapi.Credentials) (*authapi.TokenPair, error) {
	raw, err := g.client.do(ctx, http.MethodPost, "/api/auth/login", creds)
	if err != nil {
		return nil, err
	}

	var pair authapi.TokenPair
	if err := json.Unmarshal(unwrapData(raw), &pair); err != nil {
		return nil, err
	}
	if pair.AccessToken == "" {
		return nil, errors.New("login response did not contain an access token")
	}
	return &pair, nil
}

func (g *AuthGatewayREST) Register(ctx context.Context, data authapi.RegisterData) error {
	_, err := g.client.do(ctx, http.MethodPost, "/api/auth/register", data)
	return err
}

func (g *AuthGatewayREST) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh_token": refreshToken}
	raw, err := g.client.do(ctx, http.MethodPost, "/api/auth/refresh", body)
	if err != nil {
		return "", err
	}

	var pair authapi.TokenPair
	if err := json.Unmarshal(unwrapData(raw), &pair); err != nil {
		return "", err
	}
	if pair.AccessToken == "" {
		return "", errors.New("refresh response did not contain an access token")
	}
	return pair.AccessToken, nil
}

func (g *AuthGatewayREST) Logout(ctx context.Context) error {
	_, err := g.client.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

func (g *AuthGatewayREST) GetProfile(ctx context.Context) (*user.User, error) {
	raw, err := g.client.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var w wireUser
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, errors.New("profile response did not contain a user")
	}
	return w.toDomain(), nil
}
