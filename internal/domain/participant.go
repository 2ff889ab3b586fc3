package domain

import "context"

// ParticipantStatus enumerates the lifecycle states of a participant.
// The numeric values are stored in the database and exposed on the wire.
type ParticipantStatus int

const (
	StatusInvited   ParticipantStatus = 1
	StatusConfirmed ParticipantStatus = 2
	// StatusActive is the default status for direct registrations.
	StatusActive    ParticipantStatus = 3
	StatusCancelled ParticipantStatus = 4
)

// Valid reports whether s is one of the defined statuses.
func (s ParticipantStatus) Valid() bool {
	return s >= StatusInvited && s <= StatusCancelled
}

func (s ParticipantStatus) String() string {
	switch s {
	case StatusInvited:
		return "invited"
	case StatusConfirmed:
		return "confirmed"
	case StatusActive:
		return "active"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Participant represents a user's relationship to an event. At most one
// row exists per (event_id, user_id) pair; the surrogate id is incidental.
// swagger:model Participant
type Participant struct {
	ID      int64             `json:"id_participants"`
	UserID  int64             `json:"user_id"`
	EventID int64             `json:"event_id"`
	Status  ParticipantStatus `json:"participant_status_id"`
}

// ParticipantDetail is a participant joined with user, event, and status
// names, as returned by the administrative listing.
type ParticipantDetail struct {
	ID           int64  `json:"id_participants"`
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	UserLastName string `json:"user_last_name"`
	EventID      int64  `json:"event_id"`
	EventName    string `json:"event_name"`
	StatusName   string `json:"status_name"`
}

// ParticipantRepository defines storage operations for participants.
type ParticipantRepository interface {
	// Create inserts a participant row. A duplicate (event_id, user_id)
	// pair fails with ErrAlreadyRegistered.
	Create(ctx context.Context, userID, eventID int64, status ParticipantStatus) (*Participant, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Participant, error)
	// UpdateStatus updates the status for the (event_id, user_id) pair and
	// returns ErrNotFound if no row matches.
	UpdateStatus(ctx context.Context, eventID, userID int64, status ParticipantStatus) (*Participant, error)

	// Administrative operations, not exercised by the invitation flow.
	GetByID(ctx context.Context, id int64) (*Participant, error)
	UpdateByID(ctx context.Context, id int64, status ParticipantStatus) (*Participant, error)
	DeleteByID(ctx context.Context, id int64) (*Participant, error)
	ListAll(ctx context.Context) ([]*ParticipantDetail, error)
}

// ParticipantService defines the administrative participant operations.
type ParticipantService interface {
	Create(ctx context.Context, userID, eventID int64, status ParticipantStatus, actor Role) (*Participant, error)
	GetByID(ctx context.Context, id int64) (*Participant, error)
	UpdateByID(ctx context.Context, id int64, status ParticipantStatus, actor Role) (*Participant, error)
	DeleteByID(ctx context.Context, id int64, actor Role) (*Participant, error)
	ListAll(ctx context.Context) ([]*ParticipantDetail, error)
}
