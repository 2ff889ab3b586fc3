package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventosia/internal/domain"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	RoleID int    `json:"id_role"`
}

type jwtSessionCodec struct {
	secret []byte
}

// NewJWTSessionCodec returns a TokenIssuer/TokenVerifier pair that signs
// session JWTs with HS256 using the given secret.
func NewJWTSessionCodec(secret string) (domain.TokenIssuer, domain.TokenVerifier) {
	c := &jwtSessionCodec{secret: []byte(secret)}
	return c, c
}

func (c *jwtSessionCodec) Issue(userID int64, email string, role domain.Role, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:  email,
		RoleID: int(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (c *jwtSessionCodec) Verify(tokenString string) (int64, domain.Role, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, 0, domain.ErrExpiredToken
		}
		return 0, 0, domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return 0, 0, domain.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, 0, domain.ErrInvalidToken
	}
	return userID, domain.Role(claims.RoleID), nil
}
