// Command server starts the conference central HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencecentral/config"
	_ "conferencecentral/docs"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/queue"
	delivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/migrate"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -d ../.. -g cmd/server/main.go -o ../../docs

// @title Conference Central API
// @version 1.0
// @description Conference management backend: conferences, sessions, speakers, registrations and wishlists.
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
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	if err := migrate.Up(ctx, db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)

	// Adapters
	announcementCache, closeCache, err := cache.New(cache.Config{
		Provider: cfg.CacheProvider,
		Path:     cfg.CachePath,
	})
	if err != nil {
		logger.Error("failed to open cache", "err", err)
		os.Exit(1)
	}
	defer func() { _ = closeCache() }()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	taskQueue := queue.NewPostgresQueue(db)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Services
	profileService := services.NewProfileService(profileRepo)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, taskQueue)
	attendeeService := services.NewAttendeeService(conferenceRepo, profileRepo, registrationRepo)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, speakerRepo, profileRepo, wishlistRepo, taskQueue)
	speakerService := services.NewSpeakerService(speakerRepo, profileRepo)
	announcementService := services.NewAnnouncementService(conferenceRepo, sessionRepo, speakerRepo, announcementCache)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Background workers
	dispatcher := queue.NewDispatcher(db, services.NewTaskHandlers(emailService, announcementService), logger, cfg.TaskPollInterval)
	go dispatcher.Run(ctx)
	go refreshAnnouncements(ctx, announcementService, logger, cfg.AnnouncementRefreshInterval)

	// Controllers
	conferenceController := controllers.NewConferenceController(logger, conferenceService, attendeeService)
	profileController := controllers.NewProfileController(logger, profileService)
	sessionController := controllers.NewSessionController(logger, sessionService)
	speakerController := controllers.NewSpeakerController(logger, speakerService)
	announcementController := controllers.NewAnnouncementController(logger, announcementService)

	mux := delivery.NewRouter(
		logger,
		verifier,
		conferenceController,
		profileController,
		sessionController,
		speakerController,
		announcementController,
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}

// refreshAnnouncements recomputes the nearly-sold-out announcement once at
// startup and then on every tick.
func refreshAnnouncements(ctx context.Context, svc domain.AnnouncementService, logger *slog.Logger, interval time.Duration) {
	refresh := func() {
		if _, err := svc.RefreshAnnouncement(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("announcement refresh failed", "err", err)
		}
	}
	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
