// Package auth issues and verifies the signed, time-limited admin token.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role the service issues.
const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing admin token")
	ErrTokenExpired       = errors.New("admin session expired")
	ErrInvalidToken       = errors.New("invalid admin token")
	ErrForbidden          = errors.New("admin role required")
)

// Config holds the admin account and token settings.
type Config struct {
	Secret string
	Email  string
	// Password may be plain text or a bcrypt hash.
	Password string
	TTL      time.Duration
}

// Claims is the admin token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service checks admin credentials and signs HS256 tokens.
type Service struct {
	secret []byte
	email  string
	hash   []byte
	ttl    time.Duration
	now    func() time.Time
}

// New hashes the configured password once so logins compare against bcrypt.
func New(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if cfg.Email == "" || cfg.Password == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TTL)
	}

	hash := []byte(cfg.Password)
	if _, err := bcrypt.Cost(hash); err != nil {
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}

	return &Service{
		secret: []byte(cfg.Secret),
		email:  normalizeEmail(cfg.Email),
		hash:   hash,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// TTL reports how long issued tokens stay valid.
func (s *Service) TTL() time.Duration { return s.ttl }

// Login checks the credentials and returns a signed admin token.
func (s *Service) Login(email, password string) (string, error) {
	emailOK := normalizeEmail(email) == s.email
	// Always run bcrypt so a wrong email costs the same as a wrong password.
	pwErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !emailOK || pwErr != nil {
		return "", ErrInvalidCredentials
	}
	return s.Issue(RoleAdmin)
}

// Issue signs a token for role.
func (s *Service) Issue(role string) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return token, nil
}

// Verify parses an admin token. It returns ErrMissingToken, ErrTokenExpired,
// ErrInvalidToken or ErrForbidden on failure.
func (s *Service) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil || !parsed.Valid:
		return nil, ErrInvalidToken
	}

	if claims.Role != RoleAdmin {
		return nil, ErrForbidden
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" unless the header uses the Bearer scheme.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
