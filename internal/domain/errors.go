package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound   = errors.New("user not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvitationNotFound covers missing, tampered, and expired tokens
	// uniformly so callers cannot tell which check failed.
	ErrInvitationNotFound  = errors.New("invitation not valid or expired")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyRegistered   = errors.New("user already registered for this event")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)
