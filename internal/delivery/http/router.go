package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventosia/internal/delivery/http/controllers"
	"eventosia/internal/delivery/http/middleware"
	"eventosia/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	invitationController *controllers.InvitationController,
	participantController *controllers.ParticipantController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /api/usuarios", authController.Register)
	mux.HandleFunc("POST /api/login", authController.Login)

	// Invitations. Sending requires a session; the token endpoints are
	// public because the invitee may not have an account yet.
	mux.HandleFunc("POST /api/invitacion", auth(invitationController.SendInvitation))
	mux.HandleFunc("POST /api/invitacion/externa", auth(invitationController.SendExternalInvitation))
	mux.HandleFunc("GET /api/invitacion/{token}", invitationController.ValidateInvitation)
	mux.HandleFunc("GET /api/invitacion/rechazar/{token}", invitationController.RejectInvitation)
	mux.HandleFunc("GET /api/procesar-invitacion/{token}", invitationController.ProcessInvitation)

	// Participants
	mux.HandleFunc("GET /api/participants", auth(participantController.List))
	mux.HandleFunc("POST /api/participants", auth(participantController.Create))
	mux.HandleFunc("GET /api/participants/{id}", auth(participantController.Get))
	mux.HandleFunc("PUT /api/participants/{id}", auth(participantController.Update))
	mux.HandleFunc("DELETE /api/participants/{id}", auth(participantController.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
