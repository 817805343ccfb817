package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/planner-api/internal/api/middleware"
	"github.com/phrazzld/planner-api/internal/api/shared"
	"github.com/phrazzld/planner-api/internal/domain"
	"github.com/phrazzld/planner-api/internal/redact"
	"github.com/phrazzld/planner-api/internal/service"
	"github.com/phrazzld/planner-api/internal/service/auth"
	"github.com/phrazzld/planner-api/internal/store"
)

// UserService is the user resource as seen by the handlers.
type UserService interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAll(ctx context.Context, params service.ListParams) (service.ListResult[domain.User], error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, fields store.Fields) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

var _ UserService = (*service.UserService)(nil)

// AuthHandler handles registration, login and the caller's profile.
type AuthHandler struct {
	users  UserService
	tokens auth.TokenService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users UserService, tokens auth.TokenService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	user, err := h.users.Create(r.Context(), req.toUser())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Login handles POST /auth/login. Unknown emails and wrong passwords get
// the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
				"Invalid credentials", err, shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to issue token", slog.String("user_id", user.ID), redact.ErrorAttr(err))
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken: token.Value,
		TokenType:   "bearer",
		ExpiresAt:   token.ExpiresAt.UTC().Format(time.RFC3339),
		User:        userToResponse(user),
	})
}

// Profile handles GET /auth/profile, returning the authenticated user.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrUserNotFound)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}
