package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventosia/internal/delivery/http/helpers"
	"eventosia/internal/delivery/http/middleware"
	"eventosia/internal/domain"
)

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{Logger: logger, Service: svc}
}

// CreateParticipantRequest is the request body for POST /api/participants.
type CreateParticipantRequest struct {
	UserID   int64                    `json:"user_id"`
	EventID  int64                    `json:"event_id"`
	StatusID domain.ParticipantStatus `json:"participant_status_id"`
}

// Validate implements helpers.Validator.
func (r *CreateParticipantRequest) Validate() []string {
	var errs []string
	if r.UserID <= 0 {
		errs = append(errs, "user_id is required")
	}
	if r.EventID <= 0 {
		errs = append(errs, "event_id is required")
	}
	if !r.StatusID.Valid() {
		errs = append(errs, "participant_status_id is invalid")
	}
	return errs
}

// UpdateParticipantRequest is the request body for PUT /api/participants/{id}.
type UpdateParticipantRequest struct {
	StatusID domain.ParticipantStatus `json:"participant_status_id"`
}

// Validate implements helpers.Validator.
func (r *UpdateParticipantRequest) Validate() []string {
	if !r.StatusID.Valid() {
		return []string{"participant_status_id is invalid"}
	}
	return nil
}

// List godoc
// @Summary List all participants
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ParticipantDetail
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/participants [get]
func (c *ParticipantController) List(w http.ResponseWriter, r *http.Request) {
	details, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, details)
}

// Create godoc
// @Summary Register a participant in an event
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateParticipantRequest true "Participant data"
// @Success 201 {object} domain.Participant
// @Failure 400 {object} helpers.ErrorResponse "invalid status or already registered"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/participants [post]
func (c *ParticipantController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	p, err := c.Service.Create(r.Context(), req.UserID, req.EventID, req.StatusID, role)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, p)
}

// Get godoc
// @Summary Get a participant by id
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant id"
// @Success 200 {object} domain.Participant
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/participants/{id} [get]
func (c *ParticipantController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	p, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

// Update godoc
// @Summary Update a participant's status
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant id"
// @Param body body controllers.UpdateParticipantRequest true "New status"
// @Success 200 {object} domain.Participant
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/participants/{id} [put]
func (c *ParticipantController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	role, roleOK := middleware.RoleFromContext(r.Context())
	if !roleOK {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	p, err := c.Service.UpdateByID(r.Context(), id, req.StatusID, role)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

// Delete godoc
// @Summary Remove a participant
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant id"
// @Success 200 {object} domain.Participant
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/participants/{id} [delete]
func (c *ParticipantController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	role, roleOK := middleware.RoleFromContext(r.Context())
	if !roleOK {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	p, err := c.Service.DeleteByID(r.Context(), id, role)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

func (c *ParticipantController) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Identificador de participante inválido.")
		return 0, false
	}
	return id, true
}

func (c *ParticipantController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, "No tienes permisos para gestionar participantes.")
	case errors.Is(err, domain.ErrParticipantNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "Participante no encontrado.")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, "El usuario ya está registrado en este evento.")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, "Datos de participante inválidos.")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Error al procesar la solicitud.")
	}
}
