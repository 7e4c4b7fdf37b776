package token

import (
	"testing"
	"time"

	"budget-app-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, secret string, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(config.SecurityConfig{
		SecretKey: secret,
		Algorithm: "HS256",
		TokenTTL:  ttl,
	})
	require.NoError(t, err)
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t, "test-secret", time.Hour)

	signed, err := m.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestManager(t, "test-secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := newTestManager(t, "secret-a", time.Hour)
	verifier := newTestManager(t, "secret-b", time.Hour)

	signed, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	m := newTestManager(t, "test-secret", time.Hour)

	for _, value := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(value)
		assert.ErrorIs(t, err, ErrInvalidToken, "value %q", value)
	}
}

func TestNewManagerRejectsMissingSecret(t *testing.T) {
	_, err := NewManager(config.SecurityConfig{Algorithm: "HS256", TokenTTL: time.Hour})
	assert.ErrorIs(t, err, config.ErrMissingSecretKey)
}

func TestNewManagerRejectsNonHMACAlgorithm(t *testing.T) {
	_, err := NewManager(config.SecurityConfig{SecretKey: "s", Algorithm: "RS256", TokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.SecurityConfig{SecretKey: "s", Algorithm: "bogus", TokenTTL: time.Hour})
	assert.Error(t, err)
}
