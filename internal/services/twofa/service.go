package twofa

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/crypto"
)

// Service orchestrates the two-factor enrollment lifecycle:
// disabled -> pending verification -> enabled -> disabled. The persisted
// record is the single source of truth; every state-changing write is a
// compare-and-set against the expected prior state.
type Service struct {
	store  Store
	cipher *crypto.Cipher
	issuer string
	logger *zap.Logger
}

func New(store Store, cipher *crypto.Cipher, issuer string, logger *zap.Logger) *Service {
	return &Service{store: store, cipher: cipher, issuer: issuer, logger: logger}
}

// Enrollment is returned once from StartEnrollment for display to the user.
type Enrollment struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

// StartEnrollment generates a fresh secret and persists it unverified.
// Allowed while disabled or pending; restarting enrollment overwrites the
// previous unverified secret (last writer wins, no protection is active
// yet). Rejected once two-factor is enabled.
func (s *Service) StartEnrollment(ctx context.Context, userID uuid.UUID, accountName string) (*Enrollment, error) {
	rec, err := s.store.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if statusOf(rec) == StatusEnabled {
		return nil, fmt.Errorf("%w: already enabled", ErrInvalidState)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountName,
		Period:      codePeriod,
		SecretSize:  20,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp key: %w", err)
	}

	encSecret, err := s.cipher.Encrypt(key.Secret())
	if err != nil {
		return nil, fmt.Errorf("encrypt secret: %w", err)
	}
	if err := s.store.SavePending(ctx, userID, encSecret); err != nil {
		return nil, err
	}
	s.logger.Info("two-factor enrollment started", zap.String("user_id", userID.String()))
	return &Enrollment{Secret: key.Secret(), ProvisioningURI: key.URL()}, nil
}

// ConfirmEnrollment verifies the submitted code against the pending secret
// at the given time. On success it enables protection, persists freshly
// generated backup codes and returns their plaintext exactly once; the
// codes are not retrievable afterwards.
func (s *Service) ConfirmEnrollment(ctx context.Context, userID uuid.UUID, code string, now time.Time) ([]string, error) {
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: no pending enrollment", ErrInvalidState)
		}
		return nil, err
	}
	if statusOf(rec) != StatusPending {
		return nil, fmt.Errorf("%w: no pending enrollment", ErrInvalidState)
	}

	secret, err := s.cipher.Decrypt(rec.Secret)
	if err != nil {
		return nil, fmt.Errorf("decrypt secret: %w", err)
	}
	if !verifyCode(secret, code, now) {
		return nil, ErrVerificationFailed
	}

	codes, err := generateBackupCodes(backupCodeCount)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, len(codes))
	for i, c := range codes {
		hashes[i] = hashBackupCode(c)
	}
	if err := s.store.Enable(ctx, userID, hashes); err != nil {
		return nil, err
	}
	s.logger.Info("two-factor enabled", zap.String("user_id", userID.String()))
	return codes, nil
}

// Disable turns protection off and purges the secret and backup codes, so
// re-enabling requires a fresh enrollment.
func (s *Service) Disable(ctx context.Context, userID uuid.UUID) error {
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: not enabled", ErrInvalidState)
		}
		return err
	}
	if statusOf(rec) != StatusEnabled {
		return fmt.Errorf("%w: not enabled", ErrInvalidState)
	}
	if err := s.store.Disable(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("two-factor disabled", zap.String("user_id", userID.String()))
	return nil
}

// Status derives the lifecycle state from the persisted record. Storage
// failures are surfaced, never mistaken for a disabled state.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (EnrollmentStatus, error) {
	rec, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return StatusDisabled, nil
	}
	if err != nil {
		return "", err
	}
	return statusOf(rec), nil
}

// VerifyLoginCode checks a TOTP code for an enabled record. Pure check: no
// state is mutated and no backup code is consumed.
func (s *Service) VerifyLoginCode(ctx context.Context, userID uuid.UUID, code string, now time.Time) error {
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: not enabled", ErrInvalidState)
		}
		return err
	}
	if statusOf(rec) != StatusEnabled {
		return fmt.Errorf("%w: not enabled", ErrInvalidState)
	}
	secret, err := s.cipher.Decrypt(rec.Secret)
	if err != nil {
		return fmt.Errorf("decrypt secret: %w", err)
	}
	if !verifyCode(secret, code, now) {
		return ErrVerificationFailed
	}
	return nil
}

// ConsumeBackupCode redeems a single-use recovery code for an enabled
// record. A consumed code is never accepted again.
func (s *Service) ConsumeBackupCode(ctx context.Context, userID uuid.UUID, code string) error {
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: not enabled", ErrInvalidState)
		}
		return err
	}
	if statusOf(rec) != StatusEnabled {
		return fmt.Errorf("%w: not enabled", ErrInvalidState)
	}
	ok, err := s.store.ConsumeBackupCode(ctx, userID, hashBackupCode(code))
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerificationFailed
	}
	s.logger.Info("backup code consumed", zap.String("user_id", userID.String()))
	return nil
}

// ProvisioningURI rebuilds the otpauth URI for a pending enrollment so the
// display surface can render it as a scannable image.
func (s *Service) ProvisioningURI(ctx context.Context, userID uuid.UUID, accountName string) (string, error) {
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("%w: no pending enrollment", ErrInvalidState)
		}
		return "", err
	}
	if statusOf(rec) != StatusPending {
		return "", fmt.Errorf("%w: no pending enrollment", ErrInvalidState)
	}
	secret, err := s.cipher.Decrypt(rec.Secret)
	if err != nil {
		return "", fmt.Errorf("decrypt secret: %w", err)
	}

	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", s.issuer)
	q.Set("algorithm", "SHA1")
	q.Set("digits", "6")
	q.Set("period", strconv.Itoa(codePeriod))
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + s.issuer + ":" + accountName,
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}
