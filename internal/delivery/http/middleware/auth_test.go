package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awguestbook/internal/domain"
)

type stubSessionRepo struct {
	sessions map[string]*domain.Session
	err      error
}

func (s *stubSessionRepo) Create(_ context.Context, _ *domain.Session) error { return nil }

func (s *stubSessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (s *stubSessionRepo) Delete(_ context.Context, _ string) error    { return nil }
func (s *stubSessionRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

type stubVerifier struct {
	userID int64
	err    error
}

func (v *stubVerifier) Verify(_ string) (int64, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.userID, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func identityCapture(gotID *int64, gotOK *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotID, *gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	sessions := &stubSessionRepo{sessions: map[string]*domain.Session{
		"live": {Token: "live", UserID: 3, ExpiresAt: time.Now().Add(time.Hour)},
	}}

	t.Run("valid session cookie", func(t *testing.T) {
		var gotID int64
		var gotOK bool
		handler := Authenticate(sessions, &stubVerifier{err: errors.New("unused")}, quietLogger())(identityCapture(&gotID, &gotOK))

		req := httptest.NewRequest(http.MethodGet, "/api/guests", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "live"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, gotOK)
		assert.Equal(t, int64(3), gotID)
	})

	t.Run("unknown cookie falls through to bearer token", func(t *testing.T) {
		var gotID int64
		var gotOK bool
		handler := Authenticate(sessions, &stubVerifier{userID: 7}, quietLogger())(identityCapture(&gotID, &gotOK))

		req := httptest.NewRequest(http.MethodGet, "/api/guests", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
		req.Header.Set("Authorization", "Bearer some-jwt")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, gotOK)
		assert.Equal(t, int64(7), gotID)
	})

	t.Run("valid bearer token alone", func(t *testing.T) {
		var gotID int64
		var gotOK bool
		handler := Authenticate(sessions, &stubVerifier{userID: 7}, quietLogger())(identityCapture(&gotID, &gotOK))

		req := httptest.NewRequest(http.MethodGet, "/api/guests", nil)
		req.Header.Set("Authorization", "Bearer some-jwt")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.True(t, gotOK)
		assert.Equal(t, int64(7), gotID)
	})

	t.Run("no credentials still reaches the handler", func(t *testing.T) {
		var gotID int64
		var gotOK bool
		handler := Authenticate(sessions, &stubVerifier{err: errors.New("no token")}, quietLogger())(identityCapture(&gotID, &gotOK))

		req := httptest.NewRequest(http.MethodGet, "/api/guests?action=verify&code=AWDG-7-abc", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotOK)
		assert.Zero(t, gotID)
	})

	t.Run("invalid bearer token leaves the request anonymous", func(t *testing.T) {
		var gotID int64
		var gotOK bool
		handler := Authenticate(sessions, &stubVerifier{err: errors.New("bad signature")}, quietLogger())(identityCapture(&gotID, &gotOK))

		req := httptest.NewRequest(http.MethodGet, "/api/guests", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotOK)
	})

	t.Run("session store failure falls through to bearer token", func(t *testing.T) {
		var gotID int64
		var gotOK bool
		broken := &stubSessionRepo{err: errors.New("connection refused")}
		handler := Authenticate(broken, &stubVerifier{userID: 7}, quietLogger())(identityCapture(&gotID, &gotOK))

		req := httptest.NewRequest(http.MethodGet, "/api/guests", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "live"})
		req.Header.Set("Authorization", "Bearer some-jwt")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.True(t, gotOK)
		assert.Equal(t, int64(7), gotID)
	})
}

func TestRequireAuth(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("rejects anonymous callers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		rr := httptest.NewRecorder()
		RequireAuth(next)(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("passes authenticated callers through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req = req.WithContext(SetUserID(req.Context(), 3))
		rr := httptest.NewRecorder()
		RequireAuth(next)(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", bearerToken(req))
}
