package handlers_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/config"
	"github.com/Hawk5760/calmora-well/internal/crypto"
	"github.com/Hawk5760/calmora-well/internal/httpapi"
	"github.com/Hawk5760/calmora-well/internal/httpapi/handlers"
	"github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/services/twofa"
	"github.com/Hawk5760/calmora-well/internal/token"
)

func newTestServer(t *testing.T) (*httptest.Server, *token.Service) {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	cipher, err := crypto.NewCipher(hex.EncodeToString(key))
	require.NoError(t, err)

	logger := zap.NewNop()
	tokens := token.New(config.TokenConfig{
		Secret:    "handler-test-secret",
		Issuer:    "calmora",
		AccessTTL: time.Hour,
	})
	twofaSvc := twofa.New(twofa.NewMemStore(), cipher, "Calmora", logger)

	router := httpapi.NewRouter(httpapi.Handlers{
		TwoFA: handlers.NewTwoFAHandler(twofaSvc, logger),
	}, middleware.NewAuth(tokens, nil), middleware.NewRateLimiter(nil, ""), logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, tokens
}

func doJSON(t *testing.T, method, url, bearer string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestTwoFARequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/2fa/enroll", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTwoFAEnrollmentFlow(t *testing.T) {
	srv, tokens := newTestServer(t)
	bearer, _, err := tokens.MintAccessToken(uuid.New(), "sam@example.com", nil)
	require.NoError(t, err)

	// Fresh accounts report disabled.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/2fa/status", bearer, nil)
	var status map[string]string
	decodeBody(t, resp, &status)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "disabled", status["status"])

	// Start enrollment.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/enroll", bearer, nil)
	var enr struct {
		Secret          string `json:"secret"`
		ProvisioningURI string `json:"provisioning_uri"`
	}
	decodeBody(t, resp, &enr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, enr.Secret)
	assert.Contains(t, enr.ProvisioningURI, "otpauth://totp/")

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/2fa/status", bearer, nil)
	decodeBody(t, resp, &status)
	assert.Equal(t, "pending_verification", status["status"])

	// A wrong code is rejected and protection stays off.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/confirm", bearer, map[string]string{"code": "000000"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	code, err := totp.GenerateCodeCustom(enr.Secret, time.Now(), totp.ValidateOpts{
		Period: 30, Skew: 1, Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/confirm", bearer, map[string]string{"code": code})
	var confirm struct {
		BackupCodes []string `json:"backup_codes"`
	}
	decodeBody(t, resp, &confirm)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, confirm.BackupCodes, 8)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/2fa/status", bearer, nil)
	decodeBody(t, resp, &status)
	assert.Equal(t, "enabled", status["status"])

	// Enrolling again while enabled is rejected.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/enroll", bearer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Backup codes work exactly once.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/backup", bearer, map[string]string{"code": confirm.BackupCodes[0]})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/backup", bearer, map[string]string{"code": confirm.BackupCodes[0]})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Disable purges everything.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/2fa/", bearer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/2fa/status", bearer, nil)
	decodeBody(t, resp, &status)
	assert.Equal(t, "disabled", status["status"])
}

func TestTwoFAQRPendingOnly(t *testing.T) {
	srv, tokens := newTestServer(t)
	bearer, _, err := tokens.MintAccessToken(uuid.New(), "sam@example.com", nil)
	require.NoError(t, err)

	// No enrollment yet: nothing to render.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/2fa/qr", bearer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/enroll", bearer, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/2fa/qr", bearer, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestTwoFAConfirmRequiresCode(t *testing.T) {
	srv, tokens := newTestServer(t)
	bearer, _, err := tokens.MintAccessToken(uuid.New(), "", nil)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/confirm", bearer, map[string]string{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTwoFAVerifyAfterEnable(t *testing.T) {
	srv, tokens := newTestServer(t)
	bearer, _, err := tokens.MintAccessToken(uuid.New(), "sam@example.com", nil)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/enroll", bearer, nil)
	var enr struct {
		Secret string `json:"secret"`
	}
	decodeBody(t, resp, &enr)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	opts := totp.ValidateOpts{Period: 30, Skew: 1, Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1}
	code, err := totp.GenerateCodeCustom(enr.Secret, time.Now(), opts)
	require.NoError(t, err)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/confirm", bearer, map[string]string{"code": code})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	code, err = totp.GenerateCodeCustom(enr.Secret, time.Now(), opts)
	require.NoError(t, err)
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/verify", bearer, map[string]string{"code": code})
	var verify map[string]bool
	decodeBody(t, resp, &verify)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, verify["valid"])

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/2fa/verify", bearer, map[string]string{"code": "123456"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
