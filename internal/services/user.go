package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventosia/internal/domain"
)

const sessionExpiry = 24 * time.Hour

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo    domain.UserRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
}

// NewUserService creates a UserService with the given repository and auth ports.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer) domain.UserService {
	return &userService{
		userRepo:    userRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
	}
}

func (s *userService) Register(ctx context.Context, name, lastName, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", domain.ErrInvalidInput)
	}
	if role == 0 {
		return nil, fmt.Errorf("%w: missing role", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(email, name, lastName, role)
	user.PasswordHash = hash
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if !user.EmailVerified {
		return "", nil, domain.ErrEmailNotVerified
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, sessionExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	user.PasswordHash = ""
	return token, user, nil
}
