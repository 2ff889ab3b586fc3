package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventosia/internal/domain"
)

const (
	invitationTTL     = 7 * 24 * time.Hour
	invitationTTLDays = 7
)

type invitationService struct {
	codec        domain.InvitationTokenCodec
	store        domain.InvitationStore
	userRepo     domain.UserRepository
	eventRepo    domain.EventRepository
	partRepo     domain.ParticipantRepository
	hasher       domain.PasswordHasher
	emailService domain.EmailService
	baseURL      string
	logger       *slog.Logger
}

// NewInvitationService creates an InvitationService. baseURL is the public
// base used to build invitation links.
func NewInvitationService(
	codec domain.InvitationTokenCodec,
	store domain.InvitationStore,
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	partRepo domain.ParticipantRepository,
	hasher domain.PasswordHasher,
	emailService domain.EmailService,
	baseURL string,
	logger *slog.Logger,
) domain.InvitationService {
	return &invitationService{
		codec:        codec,
		store:        store,
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		partRepo:     partRepo,
		hasher:       hasher,
		emailService: emailService,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		logger:       logger,
	}
}

func (s *invitationService) acceptLink(token string) string {
	return s.baseURL + "/api/invitacion/" + token
}

func (s *invitationService) rejectLink(token string) string {
	return s.baseURL + "/api/invitacion/rechazar/" + token
}

func (s *invitationService) processLink(token string) string {
	return s.baseURL + "/api/procesar-invitacion/" + token
}

func (s *invitationService) Send(ctx context.Context, eventID, userID int64, actor domain.Role) (string, error) {
	if !actor.Can(domain.PermSendInvitations) {
		return "", domain.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return "", domain.ErrEventNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}

	token, err := s.codec.Mint(domain.ExistingUserInvite(eventID, userID), invitationTTL)
	if err != nil {
		return "", fmt.Errorf("mint invitation token: %w", err)
	}
	if err := s.store.Put(ctx, token, domain.ExistingUserInvite(eventID, userID)); err != nil {
		return "", fmt.Errorf("store invitation: %w", err)
	}

	// Re-sending to a participant still in Invited reuses the existing row;
	// any other status means the invitation was already resolved.
	existing, err := s.partRepo.GetByEventAndUser(ctx, eventID, userID)
	switch {
	case err == nil:
		if existing.Status != domain.StatusInvited {
			return "", domain.ErrAlreadyRegistered
		}
	case errors.Is(err, domain.ErrNotFound):
		if _, err := s.partRepo.Create(ctx, userID, eventID, domain.StatusInvited); err != nil {
			return "", fmt.Errorf("create participant: %w", err)
		}
	default:
		return "", fmt.Errorf("get participant: %w", err)
	}

	link := s.acceptLink(token)
	s.sendInvitationEmail(ctx, user.Email, event.Name, link, s.rejectLink(token))
	return link, nil
}

func (s *invitationService) SendNewUser(ctx context.Context, eventID int64, email, name, lastName string, actor domain.Role) (string, error) {
	if !actor.Can(domain.PermSendInvitations) {
		return "", domain.ErrForbidden
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return "", domain.ErrEventNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}

	payload := domain.NewUserInvite(eventID, email, name, lastName)
	token, err := s.codec.Mint(payload, invitationTTL)
	if err != nil {
		return "", fmt.Errorf("mint invitation token: %w", err)
	}
	if err := s.store.Put(ctx, token, payload); err != nil {
		return "", fmt.Errorf("store invitation: %w", err)
	}

	// No participant row yet; ProcessNew creates the user and the row when
	// the invitee follows the link.
	link := s.processLink(token)
	s.sendInvitationEmail(ctx, email, event.Name, link, s.rejectLink(token))
	return link, nil
}

func (s *invitationService) Accept(ctx context.Context, token string) (*domain.Participant, error) {
	payload, err := s.take(ctx, token)
	if err != nil {
		return nil, err
	}
	if payload.Kind != domain.InviteExistingUser {
		s.restore(ctx, token, payload)
		return nil, domain.ErrInvitationNotFound
	}
	return s.transition(ctx, token, payload, domain.StatusConfirmed)
}

func (s *invitationService) Reject(ctx context.Context, token string) (*domain.Participant, error) {
	payload, err := s.take(ctx, token)
	if err != nil {
		return nil, err
	}
	if payload.Kind != domain.InviteExistingUser {
		s.restore(ctx, token, payload)
		return nil, domain.ErrInvitationNotFound
	}
	return s.transition(ctx, token, payload, domain.StatusCancelled)
}

func (s *invitationService) ProcessNew(ctx context.Context, token string) (*domain.ProcessedInvitation, error) {
	payload, err := s.take(ctx, token)
	if err != nil {
		return nil, err
	}
	if payload.Kind != domain.InviteNewUser {
		s.restore(ctx, token, payload)
		return nil, domain.ErrInvitationNotFound
	}

	user, err := s.userRepo.GetByEmail(ctx, payload.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.registerInvitee(ctx, payload)
	}
	if err != nil {
		s.restore(ctx, token, payload)
		return nil, fmt.Errorf("resolve invitee: %w", err)
	}

	if _, err := s.partRepo.GetByEventAndUser(ctx, payload.EventID, user.ID); err == nil {
		s.restore(ctx, token, payload)
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.restore(ctx, token, payload)
		return nil, fmt.Errorf("get participant: %w", err)
	}

	participant, err := s.partRepo.Create(ctx, user.ID, payload.EventID, domain.StatusActive)
	if err != nil {
		s.restore(ctx, token, payload)
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	return &domain.ProcessedInvitation{User: user, Participant: participant}, nil
}

// take verifies the token signature and expiry, then atomically removes it
// from the store. Any failure is reported uniformly as
// ErrInvitationNotFound so callers cannot tell which check failed.
func (s *invitationService) take(ctx context.Context, token string) (domain.InvitationPayload, error) {
	if _, err := s.codec.Verify(token); err != nil {
		return domain.InvitationPayload{}, domain.ErrInvitationNotFound
	}
	payload, err := s.store.Take(ctx, token)
	if err != nil {
		return domain.InvitationPayload{}, domain.ErrInvitationNotFound
	}
	return payload, nil
}

// restore puts a taken token back so the legitimate invitee can retry
// after a downstream failure.
func (s *invitationService) restore(ctx context.Context, token string, payload domain.InvitationPayload) {
	if err := s.store.Put(ctx, token, payload); err != nil {
		s.logger.Error("failed to restore invitation token", "err", err)
	}
}

func (s *invitationService) transition(ctx context.Context, token string, payload domain.InvitationPayload, status domain.ParticipantStatus) (*domain.Participant, error) {
	if _, err := s.partRepo.GetByEventAndUser(ctx, payload.EventID, payload.UserID); err != nil {
		s.restore(ctx, token, payload)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	updated, err := s.partRepo.UpdateStatus(ctx, payload.EventID, payload.UserID, status)
	if err != nil {
		s.restore(ctx, token, payload)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("update participant status: %w", err)
	}
	return updated, nil
}

func (s *invitationService) registerInvitee(ctx context.Context, payload domain.InvitationPayload) (*domain.User, error) {
	tempPassword := uuid.NewString()
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	user := domain.NewUser(payload.Email, payload.Name, payload.LastName, domain.RoleAttendee)
	// Possession of a valid invitation token establishes ownership of the
	// email address, so the account starts verified.
	user.EmailVerified = true
	user.PasswordHash = hash
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.emailService.SendCredentials(ctx, &domain.CredentialsEmailData{
		Email:        user.Email,
		Name:         user.Name,
		TempPassword: tempPassword,
	}); err != nil {
		s.logger.Error("failed to send credentials email", "email", user.Email, "err", err)
	}
	return user, nil
}

// sendInvitationEmail is fire and forget: delivery problems are logged and
// never fail the request.
func (s *invitationService) sendInvitationEmail(ctx context.Context, to, eventName, acceptLink, rejectLink string) {
	err := s.emailService.SendInvitation(ctx, &domain.InvitationEmailData{
		Email:      to,
		EventName:  eventName,
		AcceptLink: acceptLink,
		RejectLink: rejectLink,
		ExpiryDays: invitationTTLDays,
	})
	if err != nil {
		s.logger.Error("failed to send invitation email", "email", to, "err", err)
	}
}
