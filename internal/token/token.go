package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Hawk5760/calmora-well/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the subset of JWT claims the service relies on.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email,omitempty"`
	Scope []string `json:"scope,omitempty"`
}

// Service validates HS256 access tokens minted by the identity provider.
// MintAccessToken exists for tooling and tests; production tokens come from
// the provider using the same shared secret.
type Service struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

func New(cfg config.TokenConfig) *Service {
	return &Service{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		accessTTL: cfg.AccessTTL,
	}
}

// ValidateAccessToken parses and verifies a bearer token string.
func (s *Service) ValidateAccessToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// MintAccessToken issues a signed access token for the given identity.
func (s *Service) MintAccessToken(userID uuid.UUID, email string, scopes []string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(s.accessTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
		Scope: scopes,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}
