package api

import (
	"context"
	"errors"
	"net/http"

	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/entity"
	"go.uber.org/zap"
)

var errEmptyToken = errors.New("auth response without access token")

// AuthClient calls the /auth endpoints. It does not consult any session,
// tokens are passed in explicitly.
type AuthClient struct {
	transport
}

func NewAuthClient(baseURL string, httpClient *http.Client, l *zap.Logger) *AuthClient {
	return &AuthClient{
		transport: newTransport(baseURL, httpClient, l),
	}
}

func (ac *AuthClient) Login(ctx context.Context, email, password string) (*entity.AuthResponse, error) {
	resp, err := ac.send(ctx, http.MethodPost, "/auth/login", "", entity.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	switch resp.status {
	case http.StatusOK:
		return decodeAuthResponse(resp.body)
	case http.StatusUnauthorized:
		return nil, errorvalues.Unauthorized(errorvalues.ReasonInvalidCredentials)
	default:
		return nil, statusError(resp)
	}
}

func (ac *AuthClient) Signup(ctx context.Context, email, username, password string) (*entity.AuthResponse, error) {
	resp, err := ac.send(ctx, http.MethodPost, "/auth/register", "", entity.SignupRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	switch resp.status {
	case http.StatusCreated, http.StatusOK:
		return decodeAuthResponse(resp.body)
	case http.StatusUnauthorized:
		return nil, errorvalues.Unauthorized(errorvalues.ReasonInvalidCredentials)
	default:
		return nil, statusError(resp)
	}
}

func (ac *AuthClient) Refresh(ctx context.Context, refreshToken string) (*entity.AuthResponse, error) {
	resp, err := ac.send(ctx, http.MethodPost, "/auth/refresh", "", entity.RefreshTokenRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}
	switch resp.status {
	case http.StatusOK:
		return decodeAuthResponse(resp.body)
	case http.StatusUnauthorized:
		return nil, errorvalues.Unauthorized(errorvalues.ReasonTokenExpired)
	default:
		return nil, statusError(resp)
	}
}

func (ac *AuthClient) Logout(ctx context.Context, accessToken string) error {
	resp, err := ac.send(ctx, http.MethodPost, "/auth/logout", accessToken, nil)
	if err != nil {
		return err
	}
	switch resp.status {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return errorvalues.Unauthorized(errorvalues.ReasonTokenExpired)
	default:
		return statusError(resp)
	}
}

func (ac *AuthClient) DeleteAccount(ctx context.Context, accessToken string) error {
	resp, err := ac.send(ctx, http.MethodDelete, "/auth/account", accessToken, nil)
	if err != nil {
		return err
	}
	switch resp.status {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return errorvalues.Unauthorized(errorvalues.ReasonTokenExpired)
	default:
		return statusError(resp)
	}
}

func decodeAuthResponse(data []byte) (*entity.AuthResponse, error) {
	var auth entity.AuthResponse
	if err := decode(data, &auth); err != nil {
		return nil, err
	}
	if auth.AccessToken == "" {
		return nil, errorvalues.DecodingError(errEmptyToken)
	}
	return &auth, nil
}
