package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"tunegen/internal/api/v1/dto"
	"tunegen/internal/apperror"
	"tunegen/internal/middleware"
	"tunegen/internal/model"
	"tunegen/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TrackHandler serves track CRUD and the social endpoints around it.
type TrackHandler struct {
	trackSvc service.TrackService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewTrackHandler(trackSvc service.TrackService, v *validator.Validate, logger zerolog.Logger) *TrackHandler {
	return &TrackHandler{
		trackSvc: trackSvc,
		validate: v,
		logger:   logger.With().Str("handler", "TrackHandler").Logger(),
	}
}

// RegisterRoutes mounts the track routes. The feed is public; all
// other routes require auth.
func (h *TrackHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/api/tracks", authMw(http.HandlerFunc(h.handleTracks)))
	mux.Handle("/api/tracks/", authMw(http.HandlerFunc(h.handleTrack)))
	mux.Handle("/api/feed", http.HandlerFunc(h.feed))
}

func (h *TrackHandler) handleTracks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createTrack(w, r)
	case http.MethodGet:
		h.listTracks(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TrackHandler) handleTrack(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tracks/")
	switch {
	case r.Method == http.MethodDelete && !strings.Contains(rest, "/"):
		h.deleteTrack(w, r, rest)
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/publish"):
		h.publishTrack(w, r, strings.TrimSuffix(rest, "/publish"))
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/like"):
		h.likeTrack(w, r, strings.TrimSuffix(rest, "/like"))
	default:
		http.NotFound(w, r)
	}
}

func (h *TrackHandler) createTrack(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}

	var req dto.TrackCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.Validation("invalid JSON payload: "+err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}

	created, err := h.trackSvc.Save(r.Context(), &model.Track{
		UserID:   userID,
		Title:    req.Title,
		Genre:    req.Genre,
		Mood:     req.Mood,
		Prompt:   req.Prompt,
		Duration: req.Duration,
		AudioURL: req.AudioURL,
		ImageURL: req.ImageURL,
		TaskID:   req.TaskID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewTrackResponse(created))
}

func (h *TrackHandler) listTracks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}

	tracks, err := h.trackSvc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]dto.TrackResponseDTO, 0, len(tracks))
	for i := range tracks {
		resp = append(resp, dto.NewTrackResponse(&tracks[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TrackHandler) deleteTrack(w http.ResponseWriter, r *http.Request, trackID string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}
	if err := h.trackSvc.Delete(r.Context(), trackID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TrackHandler) publishTrack(w http.ResponseWriter, r *http.Request, trackID string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}
	if err := h.trackSvc.Publish(r.Context(), trackID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true, "published": true})
}

func (h *TrackHandler) likeTrack(w http.ResponseWriter, r *http.Request, trackID string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}
	liked, likes, err := h.trackSvc.ToggleLike(r.Context(), trackID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LikeResponseDTO{Liked: liked, Likes: likes})
}

func (h *TrackHandler) feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	items, err := h.trackSvc.Feed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]dto.FeedItemDTO, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.NewFeedItem(it))
	}
	writeJSON(w, http.StatusOK, resp)
}
