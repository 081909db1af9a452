package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userID     string
		email      string
		expiration time.Duration
	}{
		{"basic user", "65f0c2a1b3d4e5f601234567", "user@example.com", time.Hour},
		{"user with special email", "42", "user+tag@example.com", time.Hour},
		{"uuid id", "5b0f8a8e-1c2d-4e3f-9a8b-7c6d5e4f3a2b", "test@test.com", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", tt.expiration)
			tokenStr, c, err := gen.GenerateToken(tt.userID, tt.email)
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)

			token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid)

			claims := token.Claims.(jwt.MapClaims)
			assert.Equal(t, tt.userID, claims["sub"])
			assert.Equal(t, tt.email, claims["email"])
			assert.Equal(t, c.SessionID, claims["jti"])
			assert.NotEmpty(t, c.SessionID)
			assert.Equal(t, c.ExpiresAt.Unix(), int64(claims["exp"].(float64)))
			assert.Equal(t, c.IssuedAt.Unix(), int64(claims["iat"].(float64)))
			assert.WithinDuration(t, time.Now().Add(tt.expiration), c.ExpiresAt, 2*time.Second)
		})
	}
}

func TestGenerator_GenerateToken_SigningMethod(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	tokenStr, _, err := gen.GenerateToken("1", "test@example.com")
	require.NoError(t, err)

	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), token.Method.Alg())
}

func TestGenerator_GenerateToken_UniqueSessionIDs(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	_, c1, err := gen.GenerateToken("1", "user1@example.com")
	require.NoError(t, err)
	_, c2, err := gen.GenerateToken("1", "user1@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, c1.SessionID, c2.SessionID)
}

func TestGenerator_Parse(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	tokenStr, issued, err := gen.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)

	got, err := gen.Parse(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, issued.SessionID, got.SessionID)
	assert.Equal(t, issued.ExpiresAt.Unix(), got.ExpiresAt.Unix())
}

func TestGenerator_Parse_Rejects(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	gen := NewGenerator(secret, time.Hour)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "jti": "s", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", signClaims(t, "wrong-secret", jwt.MapClaims{"sub": "1", "jti": "s", "exp": time.Now().Add(time.Hour).Unix()})},
		{"expired token", signClaims(t, secret, jwt.MapClaims{"sub": "1", "jti": "s", "exp": time.Now().Add(-time.Hour).Unix()})},
		{"missing exp", signClaims(t, secret, jwt.MapClaims{"sub": "1", "jti": "s"})},
		{"missing jti", signClaims(t, secret, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(time.Hour).Unix()})},
		{"numeric sub", signClaims(t, secret, jwt.MapClaims{"sub": 1, "jti": "s", "exp": time.Now().Add(time.Hour).Unix()})},
		{"none algorithm", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := gen.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}
