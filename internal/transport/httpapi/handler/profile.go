package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/internal/transport/httpapi/middleware"
)

// ProfileService defines the profile operations needed by ProfileHandler
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID, email string) (*ledger.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, email string, update ledger.ProfileUpdate) (*ledger.Profile, error)
}

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profiles ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// UpdateProfileRequest represents a partial profile update. Absent fields
// stay unchanged. Age is string-encoded; an empty string clears it. A
// negative avatar index clears the selection.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Age         *string `json:"age,omitempty"`
	AvatarIndex *int    `json:"avatar_index,omitempty"`
}

// ProfileResponse represents the profile in API responses
type ProfileResponse struct {
	Name        string `json:"name"`
	Age         *int   `json:"age,omitempty"`
	Email       string `json:"email"`
	AvatarIndex *int   `json:"avatar_index,omitempty"`
	Avatar      string `json:"avatar"`
}

func toProfileResponse(p *ledger.Profile) ProfileResponse {
	return ProfileResponse{
		Name:        p.Name,
		Age:         p.Age,
		Email:       p.Email,
		AvatarIndex: p.AvatarIndex,
		Avatar:      p.Avatar(),
	}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.profiles.GetProfile(r.Context(), id.ID, id.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, toProfileResponse(p))
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.profiles.UpdateProfile(r.Context(), id.ID, id.Email, ledger.ProfileUpdate{
		Name:        req.Name,
		Age:         req.Age,
		AvatarIndex: req.AvatarIndex,
	})
	if err != nil {
		if ledger.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, toProfileResponse(p))
}

// AvatarsResponse lists the fixed avatar set
type AvatarsResponse struct {
	Avatars      []string `json:"avatars"`
	DefaultIndex int      `json:"default_index"`
}

// GetAvatars handles GET /avatars
func (h *ProfileHandler) GetAvatars(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, AvatarsResponse{
		Avatars:      ledger.Avatars(),
		DefaultIndex: ledger.DefaultAvatarIndex,
	})
}
