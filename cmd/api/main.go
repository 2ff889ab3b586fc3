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
	"golang.org/x/crypto/bcrypt"

	"eventosia/config"
	"eventosia/internal/adapters/auth"
	"eventosia/internal/adapters/email"
	httpdelivery "eventosia/internal/delivery/http"
	"eventosia/internal/delivery/http/controllers"
	"eventosia/internal/delivery/http/middleware"
	"eventosia/internal/repository/memory"
	"eventosia/internal/repository/postgres"
	"eventosia/internal/services"
)

// @title EventosIA API
// @version 1.0
// @description Event management backend: invitations, participants, and auth.
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

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	invitationStore := memory.NewInvitationStore()

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer, tokenVerifier := auth.NewJWTSessionCodec(cfg.JWTSecret)
	inviteCodec := auth.NewJWTInviteCodec(cfg.JWTSecret)
	mailer, err := email.NewMailer(cfg.Mailer)
	if err != nil {
		logger.Error("failed to configure mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, hasher, tokenIssuer)
	participantService := services.NewParticipantService(participantRepo)
	invitationService := services.NewInvitationService(
		inviteCodec, invitationStore,
		userRepo, eventRepo, participantRepo,
		hasher, emailService,
		cfg.BaseURL, logger,
	)

	// Controllers
	authController := controllers.NewAuthController(logger, userService)
	invitationController := controllers.NewInvitationController(logger, invitationService)
	participantController := controllers.NewParticipantController(logger, participantService)

	mux := httpdelivery.NewRouter(logger, tokenVerifier, authController, invitationController, participantController)

	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
	}
}
