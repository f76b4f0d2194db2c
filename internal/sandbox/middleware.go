package sandbox

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/httputil"
	jwtservice "github.com/limbo/cherries/pkg/jwt_service"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDContextKey ctxKey = "Request-ID"
	uidContextKey       ctxKey = "User-ID"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps the caller's request id when it sends one.
func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		ctx := context.WithValue(r.Context(), requestIDContextKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.logger
		if reqID, ok := r.Context().Value(requestIDContextKey).(string); ok && reqID != "" {
			l = l.With(zap.String("request_id", reqID))
		}
		l = l.With(zap.String("from", r.RemoteAddr))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}

func (s *Server) LoggerExtensionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.loggerFrom(r.Context())
		if uid, ok := r.Context().Value(uidContextKey).(string); ok && uid != "" {
			l = l.With(zap.String("uid", uid))
		}
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}

func (s *Server) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.observe(r.Method, route, ww.Status(), time.Since(start))
	})
}

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.loggerFrom(r.Context())
		tokenString, ok := httputil.BearerToken(r)
		if !ok {
			l.Warn("auth failed: no bearer token")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		uid, status, detail := s.authenticate(r.Context(), tokenString)
		if status != 0 {
			l.Warn("auth failed", zap.String("reason", detail))
			httputil.WriteErrorResponse(w, status, detail)
			return
		}
		ctx := context.WithValue(r.Context(), uidContextKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate resolves an access token to a user id. A non-zero status
// means the token was rejected.
func (s *Server) authenticate(ctx context.Context, tokenString string) (string, int, string) {
	claims, err := s.jwtService.ParseToken(tokenString)
	if err != nil {
		if errors.Is(err, jwtservice.ErrInvalidToken) {
			return "", http.StatusUnauthorized, "Could not validate credentials"
		}
		return "", http.StatusInternalServerError, "error parsing token"
	}
	// Assuring the user still exists
	if _, err := s.store.UserByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return "", http.StatusUnauthorized, "User not found"
		}
		return "", http.StatusInternalServerError, "internal error while searching for user"
	}
	return claims.UserID, 0, ""
}

func (s *Server) loggerFrom(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}

func uidFromContext(r *http.Request) (string, bool) {
	uid, ok := r.Context().Value(uidContextKey).(string)
	return uid, ok && uid != ""
}
