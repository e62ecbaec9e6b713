package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"awguestbook/internal/delivery/http/helpers"
	"awguestbook/internal/delivery/http/middleware"
	"awguestbook/internal/domain"
)

// writeServiceError maps domain errors to envelope responses. Anything
// unrecognized is logged and reported as 500 without leaking the cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if verr, ok := domain.AsValidationError(err); ok {
		helpers.WriteValidationErrors(w, verr.Fields)
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteError(w, http.StatusConflict, "duplicate record")
	case errors.Is(err, domain.ErrNoEventSelected):
		helpers.WriteError(w, http.StatusBadRequest, "no event selected")
	case errors.Is(err, domain.ErrInvalidCredentials):
		helpers.WriteError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, domain.ErrInvalidResetToken):
		helpers.WriteError(w, http.StatusBadRequest, "invalid or expired reset token")
	case errors.Is(err, domain.ErrInvalidCode):
		helpers.WriteError(w, http.StatusBadRequest, "invalid code format")
	case errors.Is(err, domain.ErrNotRegistered):
		helpers.WriteError(w, http.StatusNotFound, "code not registered")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUser reads the authenticated user ID from the request context.
// Without one it writes 401 and returns false.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return userID, true
}

// queryID parses an int64 query parameter; missing or invalid is 0.
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
