package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventosia/internal/domain"
)

func TestJWTInviteCodec_MintAndVerify_ExistingUser(t *testing.T) {
	codec := NewJWTInviteCodec("test-secret")

	token, err := codec.Mint(domain.ExistingUserInvite(5, 9), 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.InviteExistingUser, payload.Kind)
	assert.Equal(t, int64(5), payload.EventID)
	assert.Equal(t, int64(9), payload.UserID)
}

func TestJWTInviteCodec_MintAndVerify_NewUser(t *testing.T) {
	codec := NewJWTInviteCodec("test-secret")

	token, err := codec.Mint(domain.NewUserInvite(7, "ana@example.com", "Ana", "García"), 7*24*time.Hour)
	require.NoError(t, err)

	payload, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.InviteNewUser, payload.Kind)
	assert.Equal(t, int64(7), payload.EventID)
	assert.Equal(t, "ana@example.com", payload.Email)
	assert.Equal(t, "Ana", payload.Name)
	assert.Equal(t, "García", payload.LastName)
}

func TestJWTInviteCodec_Verify_Expired(t *testing.T) {
	codec := NewJWTInviteCodec("test-secret")

	token, err := codec.Mint(domain.ExistingUserInvite(1, 2), -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTInviteCodec_Verify_Tampered(t *testing.T) {
	codec := NewJWTInviteCodec("test-secret")

	token, err := codec.Mint(domain.ExistingUserInvite(5, 9), time.Hour)
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	b := []byte(token)
	b[len(b)-1] ^= 0x01
	_, err = codec.Verify(string(b))
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	// Flip a byte in the payload segment.
	b = []byte(token)
	b[len(b)/2] ^= 0x01
	_, err = codec.Verify(string(b))
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTInviteCodec_Verify_WrongSecret(t *testing.T) {
	token, err := NewJWTInviteCodec("secret-a").Mint(domain.ExistingUserInvite(5, 9), time.Hour)
	require.NoError(t, err)

	_, err = NewJWTInviteCodec("secret-b").Verify(token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTInviteCodec_Mint_UnknownKind(t *testing.T) {
	codec := NewJWTInviteCodec("test-secret")

	_, err := codec.Mint(domain.InvitationPayload{EventID: 1}, time.Hour)
	require.Error(t, err)
}
