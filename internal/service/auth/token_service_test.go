package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/planner-api/internal/config"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:                testSecret,
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
		BcryptCost:               4,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(t *testing.T, cfg config.AuthConfig, now time.Time) TokenService {
	t.Helper()
	svc, err := NewTokenService(cfg, WithTimeFunc(fixedClock(now)))
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{"short secret", func(c *config.AuthConfig) { c.SecretKey = "short" }},
		{"asymmetric algorithm", func(c *config.AuthConfig) { c.Algorithm = "RS256" }},
		{"none algorithm", func(c *config.AuthConfig) { c.Algorithm = "none" }},
		{"zero lifetime", func(c *config.AuthConfig) { c.AccessTokenExpireMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			svc, err := NewTokenService(cfg)
			assert.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := "65f1c0ffee0000000000abcd"

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			cfg := testConfig()
			cfg.Algorithm = alg
			svc := newTestService(t, cfg, fixedTime)

			token, err := svc.Issue(context.Background(), userID)
			require.NoError(t, err)
			require.NotEmpty(t, token.Value)
			assert.Equal(t, fixedTime.Add(time.Hour), token.ExpiresAt)

			claims, err := svc.Verify(context.Background(), token.Value)
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
			assert.NotEmpty(t, claims.ID)
		})
	}
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := "65f1c0ffee0000000000abcd"
	issuer := newTestService(t, testConfig(), issuedAt)
	token, err := issuer.Issue(context.Background(), userID)
	require.NoError(t, err)

	wrongKeyCfg := testConfig()
	wrongKeyCfg.SecretKey = "wrong-secret-that-is-long-enough-for-testing"

	hs512Cfg := testConfig()
	hs512Cfg.Algorithm = "HS512"

	tampered := token.Value[:len(token.Value)-2] + flip(token.Value[len(token.Value)-2:])

	tests := []struct {
		name    string
		svc     TokenService
		token   string
		wantErr error
	}{
		{"within ttl", newTestService(t, testConfig(), issuedAt.Add(59*time.Minute)), token.Value, nil},
		{"past ttl", newTestService(t, testConfig(), issuedAt.Add(61*time.Minute)), token.Value, ErrExpiredToken},
		{"wrong key", newTestService(t, wrongKeyCfg, issuedAt), token.Value, ErrInvalidToken},
		{"algorithm not configured", newTestService(t, hs512Cfg, issuedAt), token.Value, ErrInvalidToken},
		{"tampered signature", newTestService(t, testConfig(), issuedAt), tampered, ErrInvalidToken},
		{"garbage", newTestService(t, testConfig(), issuedAt), "not.a.jwt", ErrInvalidToken},
		{"empty", newTestService(t, testConfig(), issuedAt), "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.svc.Verify(context.Background(), tt.token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, userID, claims.UserID)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testConfig(), now)

	token, err := svc.Issue(context.Background(), "65f1c0ffee0000000000abcd")
	require.NoError(t, err)

	other, err := svc.Issue(context.Background(), "65f1c0ffee0000000000ffff")
	require.NoError(t, err)

	// Header and payload from one token, signature from the other.
	a := strings.Split(token.Value, ".")
	b := strings.Split(other.Value, ".")
	forged := a[0] + "." + b[1] + "." + a[2]

	_, err = svc.Verify(context.Background(), forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testConfig(), now)

	claims := jwtCustomClaims{
		UserID: "65f1c0ffee0000000000abcd",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "65f1c0ffee0000000000abcd",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testConfig(), now)

	claims := jwtCustomClaims{UserID: "65f1c0ffee0000000000abcd"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClockSkew(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := newTestService(t, testConfig(), issuedAt).Issue(context.Background(), "u")
	require.NoError(t, err)

	lenient, err := NewTokenService(testConfig(),
		WithTimeFunc(fixedClock(issuedAt.Add(61*time.Minute))),
		WithClockSkew(2*time.Minute))
	require.NoError(t, err)

	_, err = lenient.Verify(context.Background(), token.Value)
	assert.NoError(t, err)
}

func flip(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
	}
	return string(b)
}
