package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tunegen/internal/api/v1/dto"
	"tunegen/internal/apperror"
	"tunegen/internal/middleware"
	"tunegen/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// GenerationHandler serves the generation and task-status endpoints.
type GenerationHandler struct {
	genSvc   service.GenerationService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewGenerationHandler(genSvc service.GenerationService, v *validator.Validate, logger zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{
		genSvc:   genSvc,
		validate: v,
		logger:   logger.With().Str("handler", "GenerationHandler").Logger(),
	}
}

// RegisterRoutes mounts the generation routes.
func (h *GenerationHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/api/generate-music", authMw(http.HandlerFunc(h.generate)))
	mux.Handle("/api/task/", authMw(http.HandlerFunc(h.taskStatus)))
}

func (h *GenerationHandler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no user in context"))
		return
	}

	var req dto.GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.Validation("invalid JSON payload: "+err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}

	result, err := h.genSvc.Generate(r.Context(), userID, service.GenerateParams{
		Genre:        req.Genre,
		Mood:         req.Mood,
		Prompt:       req.Prompt,
		Duration:     req.Duration,
		Instrumental: req.Instrumental,
		CustomLyrics: req.CustomLyrics,
	})
	if err != nil {
		var quotaErr *service.QuotaExceededError
		if errors.As(err, &quotaErr) {
			writeJSON(w, http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "daily limit reached",
				Limit:   quotaErr.Limit,
				Used:    quotaErr.Used,
			})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GenerateResponseDTO{
		Success:          true,
		TaskID:           result.TaskID,
		RemainingCredits: result.RemainingCredits,
	})
}

func (h *GenerationHandler) taskStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	taskID := strings.TrimPrefix(r.URL.Path, "/api/task/")
	if taskID == "" || strings.Contains(taskID, "/") {
		writeError(w, apperror.Validation("task id missing"))
		return
	}

	record, err := h.genSvc.TaskStatus(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTaskStatusResponse(record))
}
