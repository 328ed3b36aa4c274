package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hawk5760/calmora-well/internal/config"
)

func newTestService() *Service {
	return New(config.TokenConfig{
		Secret:    "test-secret-please-rotate",
		Issuer:    "calmora",
		AccessTTL: 15 * time.Minute,
	})
}

func TestMintAndValidate(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	signed, exp, err := svc.MintAccessToken(userID, "sam@example.com", []string{"user"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := svc.ValidateAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "sam@example.com", claims.Email)
	assert.Equal(t, []string{"user"}, claims.Scope)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := New(config.TokenConfig{Secret: "a-different-secret", Issuer: "calmora", AccessTTL: 15 * time.Minute})

	signed, _, err := other.MintAccessToken(uuid.New(), "", nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := New(config.TokenConfig{Secret: "test-secret-please-rotate", Issuer: "calmora", AccessTTL: -time.Minute})

	signed, _, err := svc.MintAccessToken(uuid.New(), "", nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMissingExpiry(t *testing.T) {
	svc := newTestService()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	})
	signed, err := tok.SignedString([]byte("test-secret-please-rotate"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongAlgorithm(t *testing.T) {
	svc := newTestService()
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	svc := newTestService()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString([]byte("test-secret-please-rotate"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
