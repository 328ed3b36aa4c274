package twofa

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	backupCodeCount = 8
	codePeriod      = 30
	codeSkew        = 1
)

// backup codes use an unambiguous uppercase alphabet (no 0/O, 1/I/L).
const backupAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateBackupCodes returns n unique recovery codes in XXXXX-XXXXX form,
// drawn from a cryptographically secure source.
func generateBackupCodes(n int) ([]string, error) {
	codes := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(codes) < n {
		buf := make([]byte, 10)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate backup code: %w", err)
		}
		raw := make([]byte, 10)
		for i, b := range buf {
			raw[i] = backupAlphabet[int(b)%len(backupAlphabet)]
		}
		code := string(raw[:5]) + "-" + string(raw[5:])
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// hashBackupCode digests a code for storage; plaintext is never persisted.
func hashBackupCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// verifyCode checks a submitted TOTP code against the secret at the given
// time, accepting one step of clock skew on either side. Pure function:
// callers pass the clock in so tests stay deterministic.
func verifyCode(secret, code string, now time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, now, totp.ValidateOpts{
		Period:    codePeriod,
		Skew:      codeSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
