package domain

import (
	"context"
	"time"
)

// Role identifies an application role. The numeric values are part of the
// wire contract (role ids in the database and in session tokens).
type Role int

const (
	RoleAdmin        Role = 1
	RoleEventManager Role = 2
	RoleAttendee     Role = 3
)

// Permission is a capability granted to roles. Authorization checks go
// through Role.Can instead of comparing raw role ids.
type Permission int

const (
	PermSendInvitations Permission = iota + 1
	PermManageParticipants
)

var rolePermissions = map[Role]map[Permission]struct{}{
	RoleAdmin: {
		PermSendInvitations:    {},
		PermManageParticipants: {},
	},
	RoleEventManager: {
		PermSendInvitations:    {},
		PermManageParticipants: {},
	},
	RoleAttendee: {},
}

// Can reports whether the role holds the given permission.
func (r Role) Can(p Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	_, ok = perms[p]
	return ok
}

// User represents a registered user
// swagger:model User
type User struct {
	ID            int64     `json:"id_user"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	LastName      string    `json:"last_name"`
	EmailVerified bool      `json:"email_verified"`
	Role          Role      `json:"id_role"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, name, lastName string, role Role) *User {
	return &User{
		Email:    email,
		Name:     name,
		LastName: lastName,
		Role:     role,
	}
}

// PasswordHasher handles one-way password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated
// user id and role.
type TokenVerifier interface {
	Verify(token string) (userID int64, role Role, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByEmailWithPassword returns the user including the stored password
	// hash, for credential checks only.
	GetByEmailWithPassword(ctx context.Context, email string) (*User, error)
}

// UserService defines registration and authentication business logic.
type UserService interface {
	Register(ctx context.Context, name, lastName, email, password string, role Role) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
