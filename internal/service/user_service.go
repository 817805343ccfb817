package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/platform/logger"
	"github.com/phrazzld/planner-api/internal/redact"
	"github.com/phrazzld/planner-api/internal/service/auth"
	"github.com/phrazzld/planner-api/internal/store"
)

// EmailTakenMessage is the client-facing message for a duplicate email.
const EmailTakenMessage = "Email already registered"

// fallbackDummyDigest is a well-formed cost-10 bcrypt digest compared against
// when no dummy digest can be produced by the configured hasher.
const fallbackDummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService manages accounts. Passwords are hashed before they are stored
// and re-hashed whenever an update includes one.
type UserService struct {
	*Resource[domain.User, *domain.User]
	hasher auth.PasswordHasher
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService creates the user resource over coll.
func NewUserService(coll store.Collection[domain.User], hasher auth.PasswordHasher, logger *slog.Logger) *UserService {
	if logger == nil {
		panic("logger cannot be nil for UserService")
	}
	s := &UserService{hasher: hasher, logger: logger.With(slog.String("component", "user_service"))}
	s.Resource = NewResource[domain.User](coll, ResourceConfig[domain.User]{
		Entity:      "User",
		SearchField: "username",
		Unique: &Unique[domain.User]{
			Field:   "email",
			Value:   func(u *domain.User) string { return u.Email },
			Message: EmailTakenMessage,
		},
		BeforeCreate: s.hashOnCreate,
		BeforeUpdate: s.hashOnUpdate,
	}, logger)
	return s
}

func (s *UserService) hashOnCreate(_ context.Context, u *domain.User) error {
	digest, err := s.hasher.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = digest
	return nil
}

func (s *UserService) hashOnUpdate(_ context.Context, fields store.Fields) error {
	pw, ok := fields["password"].(string)
	if !ok {
		return nil
	}
	digest, err := s.hasher.Hash(pw)
	if err != nil {
		return err
	}
	fields["password"] = digest
	return nil
}

// FindByEmail returns the user whose email matches ignoring case.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.FindOne(ctx, store.Filter{EqualFold: map[string]string{"email": email}})
}

// Authenticate returns the user identified by email and password. Unknown
// emails and wrong passwords both fail with auth.ErrInvalidCredentials, and
// an unknown email still pays for one bcrypt comparison so response timing
// does not reveal whether the account exists.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		_ = s.hasher.Compare(s.dummyDigest(), password)
		log.Debug("login attempt for unknown email")
		return nil, auth.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}

// dummyDigest returns a digest from the configured hasher so unknown-email
// logins cost the same as real ones. If hashing fails the static fallback
// is used instead.
func (s *UserService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("timing-equalization-password")
		if err != nil {
			s.logger.Error("failed to hash dummy password, using fallback digest", redact.ErrorAttr(err))
			digest = fallbackDummyDigest
		}
		s.dummyHash = digest
	})
	return s.dummyHash
}
