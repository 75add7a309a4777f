package jwtutil

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes-long")

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	signer := NewSigner(testSecret, "", 30*time.Minute)

	token, err := signer.Issue("alice", 7, "admin", signer.TTL())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	require.NotNil(t, claims.UserID)
	assert.Equal(t, uint(7), *claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestIssue_ExpirationIsNowPlusTTL(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	signer := NewSigner(testSecret, "", 30*time.Minute).WithClock(fixedClock(now))

	token, err := signer.Issue("alice", 1, "user", 30*time.Minute)
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestIssue_WireClaims(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	token, err := signer.Issue("alice", 42, "user", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Contains(t, string(header), `"alg":"HS256"`)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Equal(t, "alice", raw["sub"])
	assert.EqualValues(t, 42, raw["id"])
	assert.Equal(t, "user", raw["role"])
	assert.Contains(t, raw, "exp")
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	past := NewSigner(testSecret, "", 30*time.Minute).WithClock(fixedClock(issuedAt))
	token, err := past.Issue("alice", 1, "user", 30*time.Minute)
	require.NoError(t, err)

	_, err = NewSigner(testSecret, "", 30*time.Minute).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_NegativeTTL(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	token, err := signer.Issue("alice", 1, "user", -time.Second)
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Tampered(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	token, err := signer.Issue("alice", 1, "user", time.Minute)
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	t.Run("payload swapped", func(t *testing.T) {
		forged := signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "alice", "id": 1, "role": "admin", "exp": time.Now().Add(time.Minute).Unix(),
		}, []byte("other-secret"))
		forgedParts := strings.Split(forged, ".")
		tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

		_, err := signer.Verify(tampered)
		assert.ErrorIs(t, err, ErrTokenSignature)
	})

	t.Run("signed with another key", func(t *testing.T) {
		other := NewSigner([]byte("another-secret-key-of-decent-length"), "", time.Minute)
		foreign, err := other.Issue("alice", 1, "user", time.Minute)
		require.NoError(t, err)

		_, err = signer.Verify(foreign)
		assert.ErrorIs(t, err, ErrTokenSignature)
	})

	t.Run("signature stripped", func(t *testing.T) {
		_, err := signer.Verify(parts[0] + "." + parts[1] + ".")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	token := signRaw(t, jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice", "id": 1, "role": "user", "exp": time.Now().Add(time.Minute).Unix(),
	}, testSecret)

	_, err := signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice", "id": 1, "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = signer.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_IncompleteClaims(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	exp := time.Now().Add(time.Minute).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   error
	}{
		{"missing id", jwt.MapClaims{"sub": "alice", "role": "user", "exp": exp}, ErrClaimsIncomplete},
		{"missing sub", jwt.MapClaims{"id": 3, "role": "user", "exp": exp}, ErrClaimsIncomplete},
		{"missing exp", jwt.MapClaims{"sub": "alice", "id": 3}, ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Verify(signRaw(t, jwt.SigningMethodHS256, tt.claims, testSecret))
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_Malformed(t *testing.T) {
	signer := NewSigner(testSecret, "", time.Minute)
	for _, in := range []string{"", "not-a-token", "a.b.c", "Bearer x.y.z"} {
		_, err := signer.Verify(in)
		assert.ErrorIs(t, err, ErrInvalidToken, in)
	}
}

func TestVerify_Issuer(t *testing.T) {
	signer := NewSigner(testSecret, "todo-guard", time.Minute)
	token, err := NewSigner(testSecret, "someone-else", time.Minute).Issue("alice", 1, "user", time.Minute)
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	own, err := signer.Issue("alice", 1, "user", time.Minute)
	require.NoError(t, err)
	_, err = signer.Verify(own)
	assert.NoError(t, err)
}

func TestIssue_SameInstantBothVerify(t *testing.T) {
	now := time.Now()
	signer := NewSigner(testSecret, "", time.Minute).WithClock(fixedClock(now))

	a, err := signer.Issue("alice", 1, "user", time.Minute)
	require.NoError(t, err)
	b, err := signer.Issue("alice", 1, "user", time.Minute)
	require.NoError(t, err)

	ca, err := signer.Verify(a)
	require.NoError(t, err)
	cb, err := signer.Verify(b)
	require.NoError(t, err)
	assert.Equal(t, ca.Subject, cb.Subject)
	assert.Equal(t, *ca.UserID, *cb.UserID)
	assert.Equal(t, ca.ExpiresAt.Unix(), cb.ExpiresAt.Unix())
}

func TestNewSigner_CopiesSecret(t *testing.T) {
	secret := []byte("mutable-secret-key-0123456789abcdef")
	signer := NewSigner(secret, "", time.Minute)
	token, err := signer.Issue("alice", 1, "user", time.Minute)
	require.NoError(t, err)

	secret[0] = 'X'
	_, err = signer.Verify(token)
	assert.NoError(t, err)
}
