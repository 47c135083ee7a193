package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/internal/platform/session"
	"github.com/goldguard-app/backend/internal/platform/user"
	"github.com/goldguard-app/backend/pkg/logger"
)

// UserService defines the user operations needed by AuthHandler
type UserService interface {
	Register(ctx context.Context, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (*user.User, error)
}

// TokenIssuer issues access tokens for authenticated identities
type TokenIssuer interface {
	Generate(id session.Identity) (string, error)
}

// ProfileWriter stores the display name chosen at registration
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, email string, update ledger.ProfileUpdate) (*ledger.Profile, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	users    UserService
	tokens   TokenIssuer
	profiles ProfileWriter
	log      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users UserService, tokens TokenIssuer, profiles ProfileWriter, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		tokens:   tokens,
		profiles: profiles,
		log:      log,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo represents user information without sensitive data
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	registered, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyInUse):
			respondError(w, http.StatusConflict, "email is already in use")
		case errors.Is(err, user.ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, user.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "invalid email address")
		default:
			respondError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	if req.Name != "" {
		// Best effort; the account itself is already created.
		_, err := h.profiles.UpdateProfile(r.Context(), registered.ID, registered.Email, ledger.ProfileUpdate{Name: &req.Name})
		if err != nil {
			h.log.WithError(err).Warn("failed to store registration name", "user_id", registered.ID.String())
		}
	}

	h.respondWithToken(w, registered, http.StatusCreated)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	authenticated, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidPassword) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.respondWithToken(w, authenticated, http.StatusOK)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, u *user.User, statusCode int) {
	token, err := h.tokens.Generate(session.Identity{ID: u.ID, Email: u.Email})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, statusCode, AuthResponse{
		Token: token,
		User: &UserInfo{
			ID:    u.ID.String(),
			Email: u.Email,
		},
	})
}
