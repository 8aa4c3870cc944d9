package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := New(Config{
		Secret:   "test-secret",
		Email:    "Admin@CogniWise.ai",
		Password: "Admin@123",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	return s
}

func TestLoginAndVerify(t *testing.T) {
	s := newService(t)

	token, err := s.Login("  admin@cogniwise.AI ", "Admin@123")
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@cogniwise.ai", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newService(t)

	_, err := s.Login("admin@cogniwise.ai", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("someone@else.ai", "Admin@123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewAcceptsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	s, err := New(Config{Secret: "k", Email: "a@b.c", Password: string(hash), TTL: time.Minute})
	require.NoError(t, err)

	_, err = s.Login("a@b.c", "s3cret")
	assert.NoError(t, err)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Email: "a@b.c", Password: "p", TTL: time.Minute})
	assert.Error(t, err)
	_, err = New(Config{Secret: "k", Password: "p", TTL: time.Minute})
	assert.Error(t, err)
	_, err = New(Config{Secret: "k", Email: "a@b.c", Password: "p"})
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	s := newService(t)
	issued := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Issue(RoleAdmin)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = s.Verify(token)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyFailures(t *testing.T) {
	s := newService(t)

	_, err := s.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := New(Config{Secret: "other-secret", Email: "admin@cogniwise.ai", Password: "x", TTL: time.Hour})
	require.NoError(t, err)
	forged, err := other.Issue(RoleAdmin)
	require.NoError(t, err)
	_, err = s.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	viewer, err := s.Issue("viewer")
	require.NoError(t, err)
	_, err = s.Verify(viewer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	s := newService(t)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	s := newService(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: RoleAdmin}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "", BearerToken("Bearer "))
}
