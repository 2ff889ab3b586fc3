package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventosia/internal/delivery/http/helpers"
	"eventosia/internal/domain"
)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// RegisterRequest is the request body for POST /api/usuarios.
type RegisterRequest struct {
	Name     string      `json:"name"`
	LastName string      `json:"last_name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	RoleID   domain.Role `json:"id_role"`
}

// Validate implements helpers.Validator.
func (r *RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if r.RoleID <= 0 {
		errs = append(errs, "id_role is required")
	}
	return errs
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.RegisterRequest true "New user data"
// @Success 201 {object} domain.User
// @Failure 400 {object} helpers.ErrorResponse "invalid input or duplicate email"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/usuarios [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.Service.Register(r.Context(), req.Name, req.LastName, req.Email, req.Password, req.RoleID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, "El correo ya está registrado.")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Datos de registro inválidos.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Error al registrar el usuario.")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, user)
}

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (r *LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the success body for POST /api/login.
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario *domain.User `json:"usuario"`
}

// Login godoc
// @Summary Authenticate a user and issue a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse "bad credentials or unverified email"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			helpers.WriteJSONError(w, http.StatusUnauthorized, "Credenciales inválidas.")
		case errors.Is(err, domain.ErrEmailNotVerified):
			helpers.WriteJSONError(w, http.StatusUnauthorized, "El correo no ha sido verificado.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Error al iniciar sesión.")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, Usuario: user})
}
