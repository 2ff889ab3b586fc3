package memory

import (
	"context"
	"sync"
	"time"

	"eventosia/internal/domain"
)

type invitationEntry struct {
	payload   domain.InvitationPayload
	createdAt time.Time
}

// InvitationStore is an in-process token -> payload map guarded by a
// single mutex. Entries are lost on restart; the authoritative expiry
// lives inside the signed token itself, so the store never re-validates.
type InvitationStore struct {
	mu      sync.Mutex
	entries map[string]invitationEntry
	now     func() time.Time
}

// NewInvitationStore returns an empty InvitationStore. Construct one at
// startup and inject it into the invitation service.
func NewInvitationStore() *InvitationStore {
	return &InvitationStore{
		entries: make(map[string]invitationEntry),
		now:     time.Now,
	}
}

// Put inserts or overwrites the payload for the token.
func (s *InvitationStore) Put(_ context.Context, token string, payload domain.InvitationPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = invitationEntry{payload: payload, createdAt: s.now()}
	return nil
}

// Get returns the payload for the token or ErrNotFound.
func (s *InvitationStore) Get(_ context.Context, token string) (domain.InvitationPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return domain.InvitationPayload{}, domain.ErrNotFound
	}
	return entry.payload, nil
}

// Take removes the token and returns its payload. Under concurrent calls
// on the same token exactly one caller wins; the rest get ErrNotFound.
func (s *InvitationStore) Take(_ context.Context, token string) (domain.InvitationPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return domain.InvitationPayload{}, domain.ErrNotFound
	}
	delete(s.entries, token)
	return entry.payload, nil
}

// Delete removes the token. Deleting an absent token is a no-op.
func (s *InvitationStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// Len returns the number of stored invitations.
func (s *InvitationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
