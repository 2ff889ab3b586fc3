package domain

import (
	"context"
	"time"
)

// InvitationKind tags the two invitation payload variants.
type InvitationKind int

const (
	// InviteExistingUser targets a registered user by id.
	InviteExistingUser InvitationKind = iota + 1
	// InviteNewUser carries profile data for a not-yet-registered invitee.
	InviteNewUser
)

// InvitationPayload is the signed content of an invitation token.
// For InviteExistingUser only EventID and UserID are set; for
// InviteNewUser the profile fields substitute for the user id.
type InvitationPayload struct {
	Kind     InvitationKind
	EventID  int64
	UserID   int64
	Email    string
	Name     string
	LastName string
}

// ExistingUserInvite builds the payload for a registered invitee.
func ExistingUserInvite(eventID, userID int64) InvitationPayload {
	return InvitationPayload{Kind: InviteExistingUser, EventID: eventID, UserID: userID}
}

// NewUserInvite builds the payload for a first-time invitee.
func NewUserInvite(eventID int64, email, name, lastName string) InvitationPayload {
	return InvitationPayload{Kind: InviteNewUser, EventID: eventID, Email: email, Name: name, LastName: lastName}
}

// InvitationTokenCodec mints and verifies signed, expiring invitation
// tokens. It is a pure function of its inputs and a process-wide secret.
type InvitationTokenCodec interface {
	Mint(payload InvitationPayload, ttl time.Duration) (string, error)
	// Verify returns the payload on success, ErrInvalidToken if the
	// signature does not match, and ErrExpiredToken if the embedded
	// expiry is in the past.
	Verify(token string) (InvitationPayload, error)
}

// InvitationStore maps a token to its payload for the token's lifetime.
// The in-memory implementation is volatile: a process restart invalidates
// all pending invitations, which is acceptable because tokens are
// re-derivable by re-sending and each token embeds its own expiry.
type InvitationStore interface {
	Put(ctx context.Context, token string, payload InvitationPayload) error
	Get(ctx context.Context, token string) (InvitationPayload, error)
	// Take atomically removes and returns the payload. Of two concurrent
	// calls on the same token at most one succeeds; the loser gets
	// ErrNotFound. This is the single replay gate for accept/reject.
	Take(ctx context.Context, token string) (InvitationPayload, error)
	// Delete removes the token; deleting an absent token is a no-op.
	Delete(ctx context.Context, token string) error
}

// ProcessedInvitation bundles the records produced by processing a
// new-user invitation.
type ProcessedInvitation struct {
	User        *User        `json:"usuario"`
	Participant *Participant `json:"participante"`
}

// InvitationService orchestrates the invitation lifecycle:
// NoInvitation -> Invited -> {Confirmed | Cancelled}.
type InvitationService interface {
	// Send invites a registered user to an event and returns the accept
	// link. Only actors with PermSendInvitations may call it.
	Send(ctx context.Context, eventID, userID int64, actor Role) (link string, err error)
	// SendNewUser invites an unregistered person by email and returns the
	// processing link.
	SendNewUser(ctx context.Context, eventID int64, email, name, lastName string, actor Role) (link string, err error)
	// Accept consumes the token and confirms the participant.
	Accept(ctx context.Context, token string) (*Participant, error)
	// Reject consumes the token and cancels the participant.
	Reject(ctx context.Context, token string) (*Participant, error)
	// ProcessNew consumes a new-user token, registering the user first if
	// needed.
	ProcessNew(ctx context.Context, token string) (*ProcessedInvitation, error)
}
