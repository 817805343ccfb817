package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/platform/logger"
	"github.com/phrazzld/planner-api/internal/redact"
	"github.com/phrazzld/planner-api/internal/service/auth"
	"github.com/phrazzld/planner-api/internal/store"
)

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware authenticates bearer tokens and resolves their subject.
type AuthMiddleware struct {
	tokens auth.TokenService
	users  UserLookup
	logger *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService, users UserLookup, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		panic("logger cannot be nil for AuthMiddleware")
	}
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		logger: logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate requires a valid bearer token whose subject still exists and
// stores that user in the request context. Every failure is a 401 with a
// WWW-Authenticate challenge, including a user deleted after the token was
// issued.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		token, err := ExtractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			shared.SetChallenge(w, false)
			shared.RespondWithError(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
				"Authorization header must use the Bearer scheme")
			return
		}

		claims, err := m.tokens.Verify(r.Context(), token)
		if err != nil {
			shared.SetChallenge(w, true)
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized, message, err)
			return
		}

		user, err := m.users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, domain.ErrInvalidID) {
				log.Debug("token subject no longer resolves",
					"user_id", claims.UserID,
					"token_id", claims.ID,
					"token_expires_at", claims.ExpiresAt)
				shared.SetChallenge(w, true)
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
					"Invalid token", auth.ErrUserNotFound)
				return
			}
			log.Error("failed to resolve token subject", "token_id", claims.ID, redact.ErrorAttr(err))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.KindInternal,
				shared.GenericErrorMessage, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// ExtractBearerToken returns the token of an Authorization header value in
// the form "Bearer <token>". The scheme is matched case-insensitively.
func ExtractBearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", auth.ErrMalformedHeader
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", auth.ErrMalformedHeader
	}
	return token, nil
}

// WithUser returns ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, shared.UserContextKey, user)
}

// GetUser returns the authenticated user of the request.
func GetUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	return user, ok && user != nil
}
