package service

import (
	"context"
	"errors"
	"sync"
	"time"

	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/internal/repository"
	"github.com/limbo/cherries/pkg/entity"
	jwtservice "github.com/limbo/cherries/pkg/jwt_service"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
)

// RefreshThreshold is the age after which an access token is refreshed
// before the next authenticated request.
const RefreshThreshold = 15 * time.Minute

type AuthState struct {
	User            *entity.User
	IsAuthenticated bool
	IsLoading       bool
}

type SignupRequest struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,max=50"`
	Password string `validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// SessionManager owns the authentication state and the persisted session.
//
// Refresh is lazy: the gateway calls RefreshTokenIfNeeded before every
// request. Concurrent callers are not serialized, so two requests may both
// refresh. Both outcomes leave a valid session and the last save wins.
// The mutex only guards the in-memory fields and is never held across I/O.
type SessionManager struct {
	auth   AuthServiceI
	store  repository.SessionStoreI
	logger *zap.Logger
	now    func() time.Time

	mu          sync.RWMutex
	session     *entity.Session
	user        *entity.User
	loading     int
	subscribers map[int]func(AuthState)
	nextSubID   int
}

type SessionManagerOption func(*SessionManager)

func WithClock(now func() time.Time) SessionManagerOption {
	return func(sm *SessionManager) {
		sm.now = now
	}
}

func WithLogger(l *zap.Logger) SessionManagerOption {
	return func(sm *SessionManager) {
		sm.logger = logger.OrNop(l)
	}
}

// NewSessionManager restores the stored session, if any. A store that can't
// be read leaves the manager logged out.
func NewSessionManager(ctx context.Context, auth AuthServiceI, store repository.SessionStoreI, opts ...SessionManagerOption) *SessionManager {
	sm := &SessionManager{
		auth:        auth,
		store:       store,
		logger:      zap.NewNop(),
		now:         time.Now,
		subscribers: make(map[int]func(AuthState)),
	}
	for _, opt := range opts {
		opt(sm)
	}
	session, err := store.Load(ctx)
	switch {
	case err == nil:
		if session.IssuedAt.IsZero() {
			if iat, ok := jwtservice.IssuedAt(session.AccessToken); ok {
				session.IssuedAt = iat
			}
		}
		sm.session = session
		sm.user = session.User
		sm.logger.Debug("session restored", zap.String("user_id", session.User.ID))
	case errors.Is(err, errorvalues.ErrSessionNotFound):
	default:
		sm.logger.Warn("stored session unreadable", zap.Error(err))
	}
	return sm
}

func (sm *SessionManager) Login(ctx context.Context, email, password string) error {
	if err := validateStruct(LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}
	sm.startLoading()
	defer sm.stopLoading()
	resp, err := sm.auth.Login(ctx, email, password)
	if err != nil {
		return errorvalues.Classify(err)
	}
	sm.saveSession(ctx, resp)
	sm.logger.Info("logged in", zap.String("user_id", resp.User.ID))
	return nil
}

func (sm *SessionManager) Signup(ctx context.Context, email, username, password string) error {
	if err := validateStruct(SignupRequest{Email: email, Username: username, Password: password}); err != nil {
		return err
	}
	sm.startLoading()
	defer sm.stopLoading()
	resp, err := sm.auth.Signup(ctx, email, username, password)
	if err != nil {
		return errorvalues.Classify(err)
	}
	sm.saveSession(ctx, resp)
	sm.logger.Info("signed up", zap.String("user_id", resp.User.ID))
	return nil
}

// Logout tries the remote logout and then clears local state no matter what.
func (sm *SessionManager) Logout(ctx context.Context) {
	sm.startLoading()
	defer sm.stopLoading()
	if token, ok := sm.AccessToken(); ok {
		if err := sm.auth.Logout(ctx, token); err != nil {
			sm.logger.Debug("remote logout failed", zap.Error(err))
		}
	}
	sm.clearSession(ctx)
}

// RefreshTokenIfNeeded refreshes the token pair when the session is older
// than RefreshThreshold. An unauthorized refresh logs the user out. Other
// failures keep the stale session and are returned for logging only.
func (sm *SessionManager) RefreshTokenIfNeeded(ctx context.Context) error {
	sm.mu.RLock()
	session := sm.session
	sm.mu.RUnlock()
	if session == nil || session.RefreshToken == "" || !sm.refreshDue(session) {
		return nil
	}
	resp, err := sm.auth.Refresh(ctx, session.RefreshToken)
	if err != nil {
		apiErr := errorvalues.Classify(err)
		if errorvalues.IsUnauthorized(apiErr) {
			sm.logger.Info("refresh rejected, logging out")
			sm.Logout(ctx)
		} else {
			sm.logger.Warn("refresh failed, keeping session", zap.Error(apiErr))
		}
		return apiErr
	}
	sm.saveSession(ctx, resp)
	sm.logger.Debug("token refreshed")
	return nil
}

// UpdateUser keeps the issuance timestamp of the active session, so a profile
// edit does not postpone the next refresh.
func (sm *SessionManager) UpdateUser(ctx context.Context, user *entity.User) error {
	sm.mu.Lock()
	sm.user = user
	var next *entity.Session
	if sm.session != nil {
		cp := *sm.session
		cp.User = user
		sm.session = &cp
		next = &cp
	}
	sm.mu.Unlock()
	sm.notify()
	if next == nil {
		return nil
	}
	if err := sm.store.Save(ctx, next); err != nil {
		sm.logger.Warn("persisting updated user failed", zap.Error(err))
		return errorvalues.Unknown(err)
	}
	return nil
}

// DeleteAccount removes the account remotely and then clears local state.
func (sm *SessionManager) DeleteAccount(ctx context.Context) error {
	if err := sm.RefreshTokenIfNeeded(ctx); err != nil {
		sm.logger.Debug("token refresh skipped", zap.Error(err))
	}
	token, ok := sm.AccessToken()
	if !ok {
		return errorvalues.Unauthorized(errorvalues.ReasonTokenExpired)
	}
	sm.startLoading()
	defer sm.stopLoading()
	if err := sm.auth.DeleteAccount(ctx, token); err != nil {
		apiErr := errorvalues.Classify(err)
		if errorvalues.IsUnauthorized(apiErr) {
			sm.clearSession(ctx)
		}
		return apiErr
	}
	sm.clearSession(ctx)
	sm.logger.Info("account deleted")
	return nil
}

func (sm *SessionManager) AccessToken() (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if sm.session == nil || sm.session.AccessToken == "" {
		return "", false
	}
	return sm.session.AccessToken, true
}

func (sm *SessionManager) CurrentUser() *entity.User {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.user
}

func (sm *SessionManager) IsAuthenticated() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.session != nil && sm.user != nil
}

func (sm *SessionManager) IsLoading() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.loading > 0
}

func (sm *SessionManager) State() AuthState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.stateLocked()
}

// Subscribe registers fn for every state change. fn runs on the goroutine
// that changed the state and must not block.
func (sm *SessionManager) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	sm.mu.Lock()
	id := sm.nextSubID
	sm.nextSubID++
	sm.subscribers[id] = fn
	sm.mu.Unlock()
	return func() {
		sm.mu.Lock()
		delete(sm.subscribers, id)
		sm.mu.Unlock()
	}
}

func (sm *SessionManager) refreshDue(session *entity.Session) bool {
	if session.IssuedAt.IsZero() {
		return true
	}
	return sm.now().Sub(session.IssuedAt) > RefreshThreshold
}

// saveSession installs the new session in memory first. A failed save is
// logged: the session stays usable until the process exits.
func (sm *SessionManager) saveSession(ctx context.Context, resp *entity.AuthResponse) {
	user := resp.User
	session := &entity.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		IssuedAt:     sm.now(),
		User:         &user,
	}
	sm.mu.Lock()
	sm.session = session
	sm.user = &user
	sm.mu.Unlock()
	sm.notify()
	if err := sm.store.Save(ctx, session); err != nil {
		sm.logger.Warn("persisting session failed", zap.Error(err))
	}
}

func (sm *SessionManager) clearSession(ctx context.Context) {
	sm.mu.Lock()
	sm.session = nil
	sm.user = nil
	sm.mu.Unlock()
	if err := sm.store.Clear(context.WithoutCancel(ctx)); err != nil {
		sm.logger.Warn("clearing stored session failed", zap.Error(err))
	}
	sm.notify()
}

func (sm *SessionManager) startLoading() {
	sm.mu.Lock()
	sm.loading++
	sm.mu.Unlock()
	sm.notify()
}

func (sm *SessionManager) stopLoading() {
	sm.mu.Lock()
	sm.loading--
	sm.mu.Unlock()
	sm.notify()
}

func (sm *SessionManager) stateLocked() AuthState {
	return AuthState{
		User:            sm.user,
		IsAuthenticated: sm.session != nil && sm.user != nil,
		IsLoading:       sm.loading > 0,
	}
}

func (sm *SessionManager) notify() {
	sm.mu.RLock()
	state := sm.stateLocked()
	subs := make([]func(AuthState), 0, len(sm.subscribers))
	for _, fn := range sm.subscribers {
		subs = append(subs, fn)
	}
	sm.mu.RUnlock()
	for _, fn := range subs {
		fn(state)
	}
}
