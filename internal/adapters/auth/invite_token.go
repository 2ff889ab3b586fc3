package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventosia/internal/domain"
)

type inviteClaims struct {
	jwt.RegisteredClaims
	EventID  int64  `json:"id_event"`
	UserID   int64  `json:"id_user,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	LastName string `json:"last_name,omitempty"`
}

type jwtInviteCodec struct {
	secret []byte
}

// NewJWTInviteCodec returns an InvitationTokenCodec that signs invitation
// payloads as HS256 JWTs with the TTL embedded as the expiry claim. The
// resulting token is URL-safe and can sit verbatim in a path segment.
func NewJWTInviteCodec(secret string) domain.InvitationTokenCodec {
	return &jwtInviteCodec{secret: []byte(secret)}
}

func (c *jwtInviteCodec) Mint(payload domain.InvitationPayload, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := inviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		EventID: payload.EventID,
	}
	switch payload.Kind {
	case domain.InviteExistingUser:
		claims.UserID = payload.UserID
	case domain.InviteNewUser:
		claims.Email = payload.Email
		claims.Name = payload.Name
		claims.LastName = payload.LastName
	default:
		return "", fmt.Errorf("unknown invitation kind: %d", payload.Kind)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign invitation token: %w", err)
	}
	return tokenString, nil
}

func (c *jwtInviteCodec) Verify(tokenString string) (domain.InvitationPayload, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &inviteClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.InvitationPayload{}, domain.ErrExpiredToken
		}
		return domain.InvitationPayload{}, domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*inviteClaims)
	if !ok || !parsed.Valid {
		return domain.InvitationPayload{}, domain.ErrInvalidToken
	}
	if claims.Email != "" {
		return domain.NewUserInvite(claims.EventID, claims.Email, claims.Name, claims.LastName), nil
	}
	return domain.ExistingUserInvite(claims.EventID, claims.UserID), nil
}
