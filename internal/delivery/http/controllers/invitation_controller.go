package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventosia/internal/delivery/http/helpers"
	"eventosia/internal/delivery/http/middleware"
	"eventosia/internal/domain"
)

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{Logger: logger, Service: svc}
}

// SendInvitationRequest is the request body for POST /api/invitacion.
type SendInvitationRequest struct {
	EventID int64 `json:"id_event"`
	UserID  int64 `json:"id_user"`
}

// Validate implements helpers.Validator.
func (r *SendInvitationRequest) Validate() []string {
	var errs []string
	if r.EventID <= 0 {
		errs = append(errs, "id_event is required")
	}
	if r.UserID <= 0 {
		errs = append(errs, "id_user is required")
	}
	return errs
}

// SendInvitationResponse is the success body for the send endpoints.
type SendInvitationResponse struct {
	Mensaje        string `json:"mensaje"`
	InvitationLink string `json:"invitationLink"`
}

// SendInvitation godoc
// @Summary Send an event invitation to a registered user
// @Description Mints a 7-day invitation token, registers the user as a participant in status invited, and emails the invitation link. Only admins and event managers may call this.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SendInvitationRequest true "Target event and user"
// @Success 200 {object} controllers.SendInvitationResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "user or event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/invitacion [post]
func (c *InvitationController) SendInvitation(w http.ResponseWriter, r *http.Request) {
	var req SendInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	link, err := c.Service.Send(r.Context(), req.EventID, req.UserID, role)
	if err != nil {
		c.writeSendError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, SendInvitationResponse{
		Mensaje:        "Invitación enviada y participante registrado con éxito.",
		InvitationLink: link,
	})
}

// SendExternalInvitationRequest is the request body for POST /api/invitacion/externa.
type SendExternalInvitationRequest struct {
	EventID  int64  `json:"id_event"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// Validate implements helpers.Validator.
func (r *SendExternalInvitationRequest) Validate() []string {
	var errs []string
	if r.EventID <= 0 {
		errs = append(errs, "id_event is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SendExternalInvitation godoc
// @Summary Send an event invitation to an unregistered person
// @Description Mints a 7-day invitation token carrying the invitee's profile data and emails the processing link. The user and participant records are created when the invitee follows the link.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SendExternalInvitationRequest true "Target event and invitee profile"
// @Success 200 {object} controllers.SendInvitationResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/invitacion/externa [post]
func (c *InvitationController) SendExternalInvitation(w http.ResponseWriter, r *http.Request) {
	var req SendExternalInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	link, err := c.Service.SendNewUser(r.Context(), req.EventID, req.Email, req.Name, req.LastName, role)
	if err != nil {
		c.writeSendError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, SendInvitationResponse{
		Mensaje:        "Invitación enviada con éxito.",
		InvitationLink: link,
	})
}

// MessageResponse is the success body for the accept and reject endpoints.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

// ValidateInvitation godoc
// @Summary Accept an invitation
// @Description Consumes the invitation token and confirms the participant. A second call with the same token fails with 404.
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} controllers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse "invalid, expired, or already used token"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/invitacion/{token} [get]
func (c *InvitationController) ValidateInvitation(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusNotFound, "Invitación no válida o expirada.")
		return
	}

	if _, err := c.Service.Accept(r.Context(), token); err != nil {
		c.writeTokenError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, MessageResponse{Mensaje: "Confirmacion aceptada para el evento"})
}

// RejectInvitation godoc
// @Summary Reject an invitation
// @Description Consumes the invitation token and cancels the participant.
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} controllers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/invitacion/rechazar/{token} [get]
func (c *InvitationController) RejectInvitation(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusNotFound, "Invitación no válida o expirada.")
		return
	}

	if _, err := c.Service.Reject(r.Context(), token); err != nil {
		c.writeTokenError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, MessageResponse{Mensaje: "Has rechazado la invitación al evento."})
}

// ProcessInvitationResponse is the success body for GET /api/procesar-invitacion/{token}.
type ProcessInvitationResponse struct {
	Mensaje      string              `json:"mensaje"`
	Usuario      *domain.User        `json:"usuario"`
	Participante *domain.Participant `json:"participante"`
}

// ProcessInvitation godoc
// @Summary Process a new-user invitation
// @Description Consumes a new-user invitation token, registering the invitee (with a temporary password and verified email) if no account exists, and enrolls them in the event.
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} controllers.ProcessInvitationResponse
// @Failure 400 {object} helpers.ErrorResponse "already registered for the event"
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/procesar-invitacion/{token} [get]
func (c *InvitationController) ProcessInvitation(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusNotFound, "Invitación no válida o expirada.")
		return
	}

	result, err := c.Service.ProcessNew(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			helpers.WriteJSONError(w, http.StatusBadRequest, "El usuario ya está registrado en este evento.")
			return
		}
		c.writeTokenError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ProcessInvitationResponse{
		Mensaje:      "Invitación aceptada y usuario registrado en el evento.",
		Usuario:      result.User,
		Participante: result.Participant,
	})
}

func (c *InvitationController) writeSendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, "No tienes permisos para generar invitaciones.")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "Usuario no encontrado.")
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "Evento no encontrado.")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, "El usuario ya está registrado en este evento.")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, "Datos de invitación inválidos.")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Error al enviar la invitación.")
	}
}

func (c *InvitationController) writeTokenError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvitationNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "Invitación no válida o expirada.")
	case errors.Is(err, domain.ErrParticipantNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "Participante no encontrado.")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Error al procesar la invitación.")
	}
}
