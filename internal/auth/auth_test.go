package auth

import (
	"testing"
	"time"

	"urban-luxury/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T, password string) *Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewAuthenticator(string(hash), "test-secret", time.Hour, zerolog.Nop())
	require.NoError(t, err)
	return a
}

func TestAuthenticator_Login(t *testing.T) {
	a := newTestAuthenticator(t, "s3cret")

	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "Correct password", password: "s3cret"},
		{name: "Wrong password", password: "nope", expectedErr: model.ErrInvalidCredentials},
		{name: "Empty password", password: "", expectedErr: model.ErrMissingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Login(tt.password)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			assert.Equal(t, User{Name: "Admin", Role: RoleAdmin}, result.User)
		})
	}
}

func TestAuthenticator_TokenClaims(t *testing.T) {
	a := newTestAuthenticator(t, "s3cret")
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }

	result, err := a.Login("s3cret")
	require.NoError(t, err)

	claims, err := a.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestAuthenticator_Verify(t *testing.T) {
	a := newTestAuthenticator(t, "s3cret")
	issued := time.Now()
	a.now = func() time.Time { return issued }

	result, err := a.Login("s3cret")
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}
	customer := valid
	customer.Role = "customer"
	noExpiry := Claims{Role: RoleAdmin}

	tests := []struct {
		name    string
		token   string
		at      time.Time
		wantErr bool
	}{
		{name: "Fresh token", token: result.Token, at: issued},
		{name: "Expired token", token: result.Token, at: issued.Add(61 * time.Minute), wantErr: true},
		{name: "Wrong secret", token: sign(jwt.SigningMethodHS256, []byte("other"), valid), at: issued, wantErr: true},
		{name: "Wrong algorithm", token: sign(jwt.SigningMethodHS512, []byte("test-secret"), valid), at: issued, wantErr: true},
		{name: "Non-admin role", token: sign(jwt.SigningMethodHS256, []byte("test-secret"), customer), at: issued, wantErr: true},
		{name: "Missing expiry", token: sign(jwt.SigningMethodHS256, []byte("test-secret"), noExpiry), at: issued, wantErr: true},
		{name: "Garbage", token: "not.a.jwt", at: issued, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.now = func() time.Time { return tt.at }
			claims, err := a.Verify(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, RoleAdmin, claims.Role)
		})
	}
}

func TestNewAuthenticator(t *testing.T) {
	t.Run("Missing secret", func(t *testing.T) {
		_, err := NewAuthenticator("", "", time.Hour, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("Malformed hash", func(t *testing.T) {
		_, err := NewAuthenticator("plaintext", "secret", time.Hour, zerolog.Nop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid admin password hash")
	})

	t.Run("Empty hash uses development password", func(t *testing.T) {
		a, err := NewAuthenticator("", "secret", time.Hour, zerolog.Nop())
		require.NoError(t, err)

		_, err = a.Login(DevPassword)
		assert.NoError(t, err)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
