package twofa

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBackupCodesShape(t *testing.T) {
	codes, err := generateBackupCodes(backupCodeCount)
	require.NoError(t, err)
	require.Len(t, codes, 8)

	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		assert.Len(t, code, 11)
		parts := strings.Split(code, "-")
		require.Len(t, parts, 2)
		for _, part := range parts {
			assert.Len(t, part, 5)
			for _, r := range part {
				assert.Contains(t, backupAlphabet, string(r))
			}
		}
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 8)
}

func TestGenerateBackupCodesUnpredictable(t *testing.T) {
	a, err := generateBackupCodes(backupCodeCount)
	require.NoError(t, err)
	b, err := generateBackupCodes(backupCodeCount)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashBackupCodeStable(t *testing.T) {
	h := hashBackupCode("ABCDE-FGHJK")
	assert.Equal(t, h, hashBackupCode("ABCDE-FGHJK"))
	assert.NotEqual(t, h, hashBackupCode("ABCDE-FGHJM"))
	assert.Len(t, h, 64)
}

func TestVerifyCode(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Calmora",
		AccountName: "u1@example.com",
		SecretSize:  20,
	})
	require.NoError(t, err)
	secret := key.Secret()

	now := time.Unix(1700000010, 0).UTC()
	code, err := totp.GenerateCodeCustom(secret, now, totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)

	assert.True(t, verifyCode(secret, code, now))
	assert.True(t, verifyCode(secret, code, now.Add(30*time.Second)))
	assert.True(t, verifyCode(secret, code, now.Add(-30*time.Second)))
	assert.False(t, verifyCode(secret, code, now.Add(90*time.Second)))
	assert.False(t, verifyCode(secret, "not-a-code", now))
	assert.False(t, verifyCode(secret, "", now))
}
