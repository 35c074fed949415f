package handler

import (
	"net/http"

	"tunegen/internal/config"
)

// HealthHandler serves liveness and the root service descriptor.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/", h.root)
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"config": map[string]bool{
			"identity_provider": h.cfg.IdentityURL != "" && h.cfg.IdentityKey != "",
			"music_api":         h.cfg.MusicAPIKey != "",
			"database":          h.cfg.DBConnectionString != "",
		},
	})
}

func (h *HealthHandler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "tunegen",
		"routes": []string{
			"GET /health",
			"POST /api/generate-music",
			"GET /api/task/{taskId}",
			"POST /api/tracks",
			"GET /api/tracks",
			"GET /api/profile",
			"PATCH /api/profile",
			"GET /api/feed",
			"POST /api/tracks/{trackId}/publish",
			"POST /api/tracks/{trackId}/like",
			"DELETE /api/tracks/{trackId}",
		},
	})
}
