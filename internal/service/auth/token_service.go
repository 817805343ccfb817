package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/planner-api/internal/config"
	"github.com/phrazzld/planner-api/internal/platform/logger"
)

// TokenService issues and verifies signed, expiring bearer tokens.
type TokenService interface {
	// Issue creates a signed access token for userID, expiring after the
	// configured lifetime.
	Issue(ctx context.Context, userID string) (Token, error)

	// Verify checks the signature, structure and expiry of tokenString and
	// returns its claims. Every failure matches ErrInvalidToken.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a signed access token and its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Claims are the verified contents of an access token. ID is the token's
// jti, used to correlate log lines about a single token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
	ID        string
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// hmacTokenService is a TokenService using an HMAC-SHA signing method.
type hmacTokenService struct {
	signingKey    []byte
	method        *jwt.SigningMethodHMAC
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed drift when checking exp/nbf/iat
}

var _ TokenService = (*hmacTokenService)(nil)

// Option customises a token service.
type Option func(*hmacTokenService)

// WithTimeFunc replaces the clock used for issuing and verifying.
func WithTimeFunc(now func() time.Time) Option {
	return func(s *hmacTokenService) { s.timeFunc = now }
}

// WithClockSkew allows verification to tolerate the given clock drift.
func WithClockSkew(d time.Duration) Option {
	return func(s *hmacTokenService) { s.clockSkew = d }
}

// signingMethods are the accepted symmetric algorithms.
var signingMethods = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Name: jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Name: jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Name: jwt.SigningMethodHS512,
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg config.AuthConfig, opts ...Option) (TokenService, error) {
	if len(cfg.SecretKey) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	method, ok := signingMethods[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.AccessTokenExpireMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	s := &hmacTokenService{
		signingKey:    []byte(cfg.SecretKey),
		method:        method,
		tokenLifetime: time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		timeFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates a signed JWT with the user id as subject.
func (s *hmacTokenService) Issue(ctx context.Context, userID string) (Token, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()
	expiresAt := now.Add(s.tokenLifetime)

	claims := jwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign access token",
			"error", err,
			"user_id", userID,
			"signing_method", s.method.Name)
		return Token{}, fmt.Errorf("failed to sign access token with %s: %w", s.method.Name, err)
	}

	return Token{Value: signed, ExpiresAt: time.Unix(expiresAt.Unix(), 0).UTC()}, nil
}

// Verify parses and validates tokenString.
func (s *hmacTokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.method.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err)
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		log.Debug("token validation failed: no subject")
		return nil, ErrInvalidToken
	}

	out := &Claims{
		UserID: userID,
		ID:     claims.ID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
