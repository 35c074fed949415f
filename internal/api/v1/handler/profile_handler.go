package handler

import (
	"encoding/json"
	"net/http"

	"tunegen/internal/api/v1/dto"
	"tunegen/internal/apperror"
	"tunegen/internal/middleware"
	"tunegen/internal/model"
	"tunegen/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	userSvc  service.UserService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewProfileHandler(userSvc service.UserService, v *validator.Validate, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		userSvc:  userSvc,
		validate: v,
		logger:   logger.With().Str("handler", "ProfileHandler").Logger(),
	}
}

func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/api/profile", authMw(http.HandlerFunc(h.handleProfile)))
}

func (h *ProfileHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r)
	case http.MethodPatch:
		h.updateProfile(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}

	user, err := h.userSvc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// updateProfile applies the mutable fields. The DTO schema only knows
// display_name, so identity, email and credit fields in the payload
// never reach the store.
func (h *ProfileHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}

	var req dto.ProfilePatchDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.Validation("invalid JSON payload: "+err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), userID, model.ProfilePatch{
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserResponse(user))
}
