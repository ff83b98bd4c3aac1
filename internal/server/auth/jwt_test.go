package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(123, secret, time.Hour)
	require.NoError(t, err)

	got, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(123), got)
}

func TestGenerateToken_ExpiryIsReadableWithoutSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(7, []byte("k"), time.Hour)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	assert.Equal(t, "7", claims.Subject)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, secret, -time.Second)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetUserIDFromToken_Invalid(t *testing.T) {
	t.Parallel()

	good, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "2"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: good, secret: "wrong-secret"},
		{name: "malformed", token: "not.a.jwt", secret: "k"},
		{name: "alg none", token: unsigned, secret: "k"},
		{name: "missing subject", token: noSubject, secret: "k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetUserIDFromToken(tt.token, []byte(tt.secret))
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}
