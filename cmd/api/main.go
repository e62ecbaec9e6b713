package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"awguestbook/config"
	authadapter "awguestbook/internal/adapters/auth"
	emailadapter "awguestbook/internal/adapters/email"
	httpdelivery "awguestbook/internal/delivery/http"
	"awguestbook/internal/delivery/http/controllers"
	"awguestbook/internal/delivery/http/middleware"
	"awguestbook/internal/repository/postgres"
	"awguestbook/internal/services"
)

const (
	bcryptCost     = 12
	apiTokenExpiry = 24 * time.Hour
)

// @title Guestbook API
// @version 1.0
// @description Event guestbook with QR check-in. Users own events, events own guests; scanned codes mark attendance.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	hasher := authadapter.NewBcryptHasher(bcryptCost)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	authService := services.NewAuthService(
		userRepo, eventRepo, sessionRepo,
		hasher, tokenIssuer, apiTokenExpiry, cfg.SessionTTL,
		emailService, cfg.AppBaseURL,
	)
	eventService := services.NewEventService(eventRepo)
	guestService := services.NewGuestService(guestRepo, eventRepo)
	checkinService := services.NewCheckinService(guestRepo)

	secureCookies := cfg.Environment == "production"
	authController := controllers.NewAuthController(logger, authService, secureCookies)
	guestController := controllers.NewGuestController(logger, guestService, checkinService)
	eventController := controllers.NewEventController(logger, eventService)
	exportController := controllers.NewExportController(logger, guestService, eventService)

	mux := httpdelivery.NewRouter(db, authController, guestController, eventController, exportController)

	var handler http.Handler = mux
	handler = middleware.Authenticate(sessionRepo, tokenVerifier, logger)(handler)
	handler = middleware.Logging(logger, handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Lookups already filter on expires_at, so stale rows are only clutter;
	// one sweep per boot keeps the table from growing without a timer.
	sweepCtx, cancelSweep := context.WithTimeout(context.Background(), 10*time.Second)
	n, err := sessionRepo.DeleteExpired(sweepCtx)
	cancelSweep()
	if err != nil {
		logger.Warn("expired session sweep failed", "err", err)
	} else if n > 0 {
		logger.Info("expired sessions removed", "count", n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
