package services

import (
	"context"
	"errors"
	"fmt"

	"eventosia/internal/domain"
)

type participantService struct {
	partRepo domain.ParticipantRepository
}

// NewParticipantService creates the administrative ParticipantService.
func NewParticipantService(partRepo domain.ParticipantRepository) domain.ParticipantService {
	return &participantService{partRepo: partRepo}
}

func (s *participantService) Create(ctx context.Context, userID, eventID int64, status domain.ParticipantStatus, actor domain.Role) (*domain.Participant, error) {
	if !actor.Can(domain.PermManageParticipants) {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.partRepo.Create(ctx, userID, eventID, status)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return p, nil
}

func (s *participantService) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	p, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

// UpdateByID is the administrative status update path; unlike the
// invitation protocol it may set any valid status directly.
func (s *participantService) UpdateByID(ctx context.Context, id int64, status domain.ParticipantStatus, actor domain.Role) (*domain.Participant, error) {
	if !actor.Can(domain.PermManageParticipants) {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.partRepo.UpdateByID(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("update participant: %w", err)
	}
	return p, nil
}

func (s *participantService) DeleteByID(ctx context.Context, id int64, actor domain.Role) (*domain.Participant, error) {
	if !actor.Can(domain.PermManageParticipants) {
		return nil, domain.ErrForbidden
	}
	p, err := s.partRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("delete participant: %w", err)
	}
	return p, nil
}

func (s *participantService) ListAll(ctx context.Context) ([]*domain.ParticipantDetail, error) {
	details, err := s.partRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return details, nil
}
