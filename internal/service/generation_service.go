package service

import (
	"context"
	"fmt"
	"strings"

	"tunegen/internal/apperror"
	"tunegen/internal/model"
	"tunegen/internal/musicgen"
	"tunegen/internal/repository"

	"github.com/rs/zerolog"
)

// QuotaExceededError reports a daily-limit rejection with the numbers
// the client shows to the user.
type QuotaExceededError struct {
	Limit int
	Used  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit reached: %d of %d generations used", e.Used, e.Limit)
}

func (e *QuotaExceededError) Unwrap() error {
	return apperror.ErrForbidden
}

// GenerateParams are the caller-supplied generation inputs.
type GenerateParams struct {
	Genre        string
	Mood         string
	Prompt       string
	Duration     int
	Instrumental bool
	CustomLyrics string
}

// GenerateResult is what a successful generation returns to the client.
// RemainingCredits is computed from the balance read before the debit,
// never re-read from the store.
type GenerateResult struct {
	TaskID           string
	RemainingCredits int
}

// GenerationService gates vendor generation calls behind the user's
// daily quota and credit balance.
type GenerationService interface {
	Generate(ctx context.Context, userID string, p GenerateParams) (*GenerateResult, error)
	TaskStatus(ctx context.Context, taskID string) (*musicgen.TaskRecord, error)
}

type generationService struct {
	userRepo repository.UserRepository
	vendor   musicgen.API
	logger   zerolog.Logger
}

func NewGenerationService(userRepo repository.UserRepository, vendor musicgen.API, logger zerolog.Logger) GenerationService {
	return &generationService{
		userRepo: userRepo,
		vendor:   vendor,
		logger:   logger.With().Str("service", "GenerationService").Logger(),
	}
}

func (s *generationService) Generate(ctx context.Context, userID string, p GenerateParams) (*GenerateResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Upstream("loading user profile: %v", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user profile not found")
	}

	limit := model.DailyLimit(user.Plan)
	if user.PointsUsedToday >= limit {
		return nil, &QuotaExceededError{Limit: limit, Used: user.PointsUsedToday}
	}
	if user.TotalPoints <= 0 {
		return nil, apperror.Forbidden("no credits remaining")
	}

	taskID, err := s.vendor.Generate(ctx, buildVendorRequest(p))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Vendor generation call failed")
		return nil, apperror.Upstream("%v", err)
	}

	// The debit charges task creation, not task success. A failed debit
	// is logged and the client still gets the task id; the reported
	// balance is the pre-debit read minus one either way.
	if err := s.userRepo.DebitGeneration(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("task_id", taskID).
			Msg("Failed to debit credits after generation; balance will drift")
	}

	return &GenerateResult{
		TaskID:           taskID,
		RemainingCredits: user.TotalPoints - 1,
	}, nil
}

// TaskStatus looks up a vendor task. Task ids are opaque vendor handles
// and no task row exists locally until a track is saved, so there is
// nothing to check ownership against; any authenticated user may poll
// any task id.
func (s *generationService) TaskStatus(ctx context.Context, taskID string) (*musicgen.TaskRecord, error) {
	record, err := s.vendor.Record(ctx, taskID)
	if err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("Vendor task lookup failed")
		return nil, apperror.Upstream("%v", err)
	}
	return record, nil
}

// buildVendorRequest composes the vendor prompt. Custom lyrics go
// through verbatim and switch the vendor into custom mode; otherwise
// the prompt is the genre/mood pair plus any freeform text.
func buildVendorRequest(p GenerateParams) musicgen.GenerateRequest {
	style := strings.TrimSpace(strings.Join(nonEmpty(p.Genre, p.Mood), ", "))
	title := strings.TrimSpace(strings.Join(nonEmpty(p.Genre, p.Mood), " "))
	if title == "" {
		title = "Untitled"
	}

	if p.CustomLyrics != "" {
		return musicgen.GenerateRequest{
			Prompt:       p.CustomLyrics,
			Style:        style,
			Title:        title,
			CustomMode:   true,
			Instrumental: p.Instrumental,
		}
	}

	prompt := strings.TrimSpace(strings.Join(nonEmpty(p.Genre, p.Mood, p.Prompt), " "))
	return musicgen.GenerateRequest{
		Prompt:       prompt,
		Style:        style,
		Title:        title,
		Instrumental: p.Instrumental,
	}
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}
