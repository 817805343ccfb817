package mocks

import (
	"github.com/phrazzld/planner-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing. By
// default Hash prefixes the password with "hashed:" and Compare accepts
// exactly that digest.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(digest, password string) error

	// CompareCalledWith stores the arguments of the last Compare call
	CompareCalledWith struct {
		Digest   string
		Password string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(digest, password string) error {
	m.CompareCalledWith.Digest = digest
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(digest, password)
	}
	if digest != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
