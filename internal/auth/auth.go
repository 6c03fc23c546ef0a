// Package auth implements the admin password login and token verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"urban-luxury/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the role carried by admin tokens.
const RoleAdmin = "admin"

// DevPassword is the admin password used when no hash is configured.
const DevPassword = "nizmeh123"

// ErrInvalidToken is returned by Verify for any token that is not a valid admin token.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims issued to the admin.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// User describes the authenticated principal in the login response.
type User struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticator checks the admin password and issues signed tokens.
type Authenticator struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewAuthenticator returns an Authenticator for the given bcrypt hash and signing secret.
// An empty hash falls back to a hash of DevPassword.
func NewAuthenticator(passwordHash, secret string, ttl time.Duration, logger zerolog.Logger) (*Authenticator, error) {
	logger = logger.With().Str("component", "auth").Logger()

	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}

	hash := []byte(passwordHash)
	if passwordHash == "" {
		logger.Warn().Msg("ADMIN_PASSWORD_HASH not set, using the development default password")
		h, err := HashPassword(DevPassword)
		if err != nil {
			return nil, err
		}
		hash = []byte(h)
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	return &Authenticator{
		hash:   hash,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Login checks password against the admin hash and returns a signed token.
func (a *Authenticator) Login(password string) (*LoginResult, error) {
	if password == "" {
		return nil, model.ErrMissingPassword
	}

	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		a.logger.Info().Msg("admin login rejected")
		return nil, model.ErrInvalidCredentials
	}

	now := a.now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	a.logger.Info().Msg("admin logged in")

	return &LoginResult{
		Token: token,
		User:  User{Name: "Admin", Role: RoleAdmin},
	}, nil
}

// Verify parses token and checks its signature, expiry and role.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}

	return claims, nil
}

// HashPassword returns the bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
