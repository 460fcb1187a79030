package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T, clock *fakeClock) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret", WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService("")
	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	token, err := svc.IssueToken(42, model.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, model.RoleAdmin, identity.Role)
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{name: "accepted at T+59m", elapsed: 59 * time.Minute},
		{name: "rejected at T+61m", elapsed: 61 * time.Minute, wantErr: apperrors.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: issuedAt}
			svc := newTestService(t, clock)

			token, err := svc.IssueToken(7, model.RoleUser)
			require.NoError(t, err)

			clock.t = issuedAt.Add(tt.elapsed)
			identity, err := svc.VerifyToken(token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, apperrors.ErrTokenInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(7), identity.UserID)
		})
	}
}

func TestJWTService_InvalidTokens(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	valid, err := svc.IssueToken(1, model.RoleUser)
	require.NoError(t, err)

	other, err := NewJWTService("another-secret", WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.IssueToken(1, model.RoleUser)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: model.RoleUser})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	elevated, err := svc.IssueToken(2, model.RoleAdmin)
	require.NoError(t, err)
	// Payload of one token with the signature of another.
	validParts := strings.Split(valid, ".")
	tampered := validParts[0] + "." + strings.Split(elevated, ".")[1] + "." + validParts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "empty", token: ""},
		{name: "tampered signature", token: tampered},
		{name: "signed with another secret", token: foreign},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyToken(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
			assert.NotErrorIs(t, err, apperrors.ErrTokenExpired)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("password124", hash))

	again, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}
