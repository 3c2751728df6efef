package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestJWT_IssueAndParse(t *testing.T) {
	m := NewJWTManager(secret, "slot-swapper", time.Hour)

	token, err := m.Issue(42, "alice@example.com")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.ID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWT_Rejects(t *testing.T) {
	m := NewJWTManager(secret, "slot-swapper", time.Hour)
	valid, err := m.Issue(42, "")
	require.NoError(t, err)

	expired := NewJWTManager(secret, "slot-swapper", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(42, "")
	require.NoError(t, err)

	otherIssuer, err := NewJWTManager(secret, "someone-else", time.Hour).Issue(42, "")
	require.NoError(t, err)

	otherSecret, err := NewJWTManager("ffffffffffffffffffffffffffffffff", "slot-swapper", time.Hour).Issue(42, "")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: 42}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	zeroID, err := m.Issue(0, "")
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"tampered":     valid + "x",
		"expired":      expiredToken,
		"other issuer": otherIssuer,
		"other secret": otherSecret,
		"alg none":     noneToken,
		"zero id":      zeroID,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
