package api

import (
	"context"
	"net/http"

	errorvalues "github.com/limbo/cherries/internal/error_values"
	"go.uber.org/zap"
)

type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Auth       AuthenticatorI
	Logger     *zap.Logger
}

// Client is the gateway for every authenticated call. Each call asks the
// authenticator for a refresh first, and a 401 logs the user out.
type Client struct {
	transport
	auth AuthenticatorI
}

func New(cfg *ClientConfig) *Client {
	return &Client{
		transport: newTransport(cfg.BaseURL, cfg.HTTPClient, cfg.Logger),
		auth:      cfg.Auth,
	}
}

// Do executes an authenticated request. body is JSON-encoded when non-nil;
// a 200 or 201 body is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if err := c.auth.RefreshTokenIfNeeded(ctx); err != nil {
		c.logger.Debug("token refresh skipped", zap.Error(err))
	}
	token, ok := c.auth.AccessToken()
	if !ok {
		return errorvalues.Unauthorized(errorvalues.ReasonTokenExpired)
	}
	resp, err := c.send(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	switch resp.status {
	case http.StatusOK, http.StatusCreated:
		return decode(resp.body, out)
	case http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		c.logger.Info("unauthorized response, logging out", zap.String("path", path))
		c.auth.Logout(context.WithoutCancel(ctx))
		return errorvalues.Unauthorized(errorvalues.ReasonTokenExpired)
	default:
		return statusError(resp)
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}
