package mocks

import (
	"context"

	"github.com/phrazzld/planner-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueFn allows test cases to mock the Issue behavior
	IssueFn func(ctx context.Context, userID string) (auth.Token, error)

	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     auth.Token
	Err       error
	Claims    *auth.Claims
	VerifyErr error

	// IssuedFor records the user IDs passed to Issue
	IssuedFor []string
}

var _ auth.TokenService = (*MockTokenService)(nil)

// Issue implements the auth.TokenService interface
func (m *MockTokenService) Issue(ctx context.Context, userID string) (auth.Token, error) {
	m.IssuedFor = append(m.IssuedFor, userID)
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	return m.Token, m.Err
}

// Verify implements the auth.TokenService interface
func (m *MockTokenService) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, tokenString)
	}
	return m.Claims, m.VerifyErr
}
