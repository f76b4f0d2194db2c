package api

import (
	"context"
)

type AuthenticatorI interface {
	// Refreshes the access token when the refresh policy says it is due. A failed refresh leaves the previous token in place
	RefreshTokenIfNeeded(ctx context.Context) error
	// Current access token, false when there is no session
	AccessToken() (string, bool)
	// Clears the session. Safe to call when already logged out
	Logout(ctx context.Context)
}
