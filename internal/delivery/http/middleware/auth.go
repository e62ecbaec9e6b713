package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"awguestbook/internal/delivery/http/helpers"
	"awguestbook/internal/domain"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "awg_session"

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Authenticate resolves the caller's identity and sets the user ID in the
// request context. The session cookie is checked first; a Bearer token is
// the fallback for non-browser clients. It never rejects the request:
// handlers that need identity check the context themselves, because some
// endpoints serve both authenticated and anonymous callers.
func Authenticate(sessions domain.SessionRepository, verifier domain.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				session, err := sessions.GetByToken(r.Context(), cookie.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), session.UserID)))
					return
				}
				if !errors.Is(err, domain.ErrNotFound) {
					logger.ErrorContext(r.Context(), "session lookup failed", "err", err)
				}
			}
			if token := bearerToken(r); token != "" {
				if userID, err := verifier.Verify(token); err == nil {
					next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth wraps a handler that must only run for authenticated callers.
// Use after Authenticate; without an identity in the context it responds
// 401 and does not call next.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			helpers.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
