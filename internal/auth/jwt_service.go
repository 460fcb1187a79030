package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/model"
)

// AccessTokenExpiry is the duration for which access tokens are valid.
const AccessTokenExpiry = time.Hour

// Claims represents JWT claims.
type Claims struct {
	UserID uint       `json:"userId"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller decoded from a verified token.
type Identity struct {
	UserID uint
	Role   model.Role
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string, opts ...Option) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	s := &JWTService{
		secret: []byte(secret),
		now:    time.Now,
		// Time based claims are checked against s.now in VerifyToken.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueToken signs a token carrying the user id and role, valid for AccessTokenExpiry.
func (s *JWTService) IssueToken(userID uint, role model.Role) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the embedded identity.
// Failures wrap either errors.ErrTokenExpired or errors.ErrTokenInvalid.
func (s *JWTService) VerifyToken(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return Identity{}, apperrors.ErrTokenInvalid
	}

	now := s.now()
	if !claims.VerifyExpiresAt(now, true) {
		return Identity{}, apperrors.ErrTokenExpired
	}
	if !claims.VerifyNotBefore(now, false) {
		return Identity{}, fmt.Errorf("%w: token used before nbf", apperrors.ErrTokenInvalid)
	}
	if claims.UserID == 0 {
		return Identity{}, fmt.Errorf("%w: missing userId claim", apperrors.ErrTokenInvalid)
	}

	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
