package http

import (
	"database/sql"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"awguestbook/internal/delivery/http/controllers"
	"awguestbook/internal/delivery/http/helpers"
)

// NewRouter initializes the HTTP router with all application routes.
// Identity resolution happens in middleware wrapped around the returned
// mux; handlers enforce it where required.
func NewRouter(
	db *sql.DB,
	authController *controllers.AuthController,
	guestController *controllers.GuestController,
	eventController *controllers.EventController,
	exportController *controllers.ExportController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("GET /api/auth", authController.Get)
	mux.HandleFunc("POST /api/auth", authController.Post)

	// Guests and check-in
	mux.HandleFunc("GET /api/guests", guestController.Get)
	mux.HandleFunc("POST /api/guests", guestController.Post)
	mux.HandleFunc("PUT /api/guests", guestController.Put)
	mux.HandleFunc("DELETE /api/guests", guestController.Delete)

	// Events
	mux.HandleFunc("GET /api/events", eventController.Get)
	mux.HandleFunc("POST /api/events", eventController.Post)
	mux.HandleFunc("PUT /api/events", eventController.Put)
	mux.HandleFunc("DELETE /api/events", eventController.Delete)

	// Export
	mux.HandleFunc("GET /api/export", exportController.Get)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			helpers.WriteError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		helpers.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
