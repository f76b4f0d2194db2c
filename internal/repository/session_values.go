package repository

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/entity"
)

const (
	KeyAccessToken    = "cherries_access_token"
	KeyRefreshToken   = "cherries_refresh_token"
	KeyTokenTimestamp = "cherries_token_timestamp"
	KeyUser           = "cherries_user"
)

// SessionKeys is the fixed key set every backend writes and clears together.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyTokenTimestamp, KeyUser}

// encodeSession returns the stored values in SessionKeys order.
func encodeSession(session *entity.Session) ([]string, error) {
	if session == nil || session.User == nil {
		return nil, errors.New("session without user can't be stored")
	}
	user, err := sonic.ConfigDefault.MarshalToString(session.User)
	if err != nil {
		return nil, errors.New("encoding user error: " + err.Error())
	}
	var issuedAt string
	if !session.IssuedAt.IsZero() {
		issuedAt = session.IssuedAt.UTC().Format(time.RFC3339Nano)
	}
	return []string{session.AccessToken, session.RefreshToken, issuedAt, user}, nil
}

func decodeSession(values map[string]string) (*entity.Session, error) {
	token, rawUser := values[KeyAccessToken], values[KeyUser]
	if token == "" || rawUser == "" {
		return nil, errorvalues.ErrSessionNotFound
	}
	var user entity.User
	if err := sonic.ConfigDefault.UnmarshalFromString(rawUser, &user); err != nil {
		return nil, errors.New("decoding stored user error: " + err.Error())
	}
	session := &entity.Session{
		AccessToken:  token,
		RefreshToken: values[KeyRefreshToken],
		User:         &user,
	}
	// An unreadable timestamp is treated as missing, which makes a refresh due.
	if ts, err := time.Parse(time.RFC3339Nano, values[KeyTokenTimestamp]); err == nil {
		session.IssuedAt = ts
	}
	return session, nil
}
