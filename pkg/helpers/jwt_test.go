package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestJWT_GenerateAndParse(t *testing.T) {
	t.Parallel()
	m := NewJWTManager("super-secret")

	tok, exp, err := m.Generate("user-123", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWT_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	m := &JWTManager{Secret: []byte("k"), Now: clock.Now}

	tok, _, err := m.Generate("u1", time.Hour)
	require.NoError(t, err)

	clock.t = issued.Add(59 * time.Minute)
	_, err = m.Parse(tok)
	require.NoError(t, err, "token must be accepted before expiry")

	clock.t = issued.Add(61 * time.Minute)
	_, err = m.Parse(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	t.Parallel()
	tok, _, err := (&JWTManager{Secret: []byte("right")}).Generate("u2", time.Hour)
	require.NoError(t, err)

	_, err = (&JWTManager{Secret: []byte("wrong")}).Parse(tok)
	assert.Error(t, err)
}

func TestJWT_Malformed(t *testing.T) {
	t.Parallel()
	_, err := (&JWTManager{Secret: []byte("k")}).Parse("not.a.jwt")
	assert.Error(t, err)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()
	claims := &Claims{UserID: "u3", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = (&JWTManager{Secret: []byte("k")}).Parse(tok)
	assert.Error(t, err)
}
