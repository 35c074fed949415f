package service

import (
	"context"
	"strings"

	"tunegen/internal/apperror"
	"tunegen/internal/model"
	"tunegen/internal/repository"

	"github.com/rs/zerolog"
)

// TrackService owns track persistence and the social operations around
// it. Mutations are owner-only except the like toggle.
type TrackService interface {
	Save(ctx context.Context, t *model.Track) (*model.Track, error)
	List(ctx context.Context, userID string) ([]model.Track, error)
	Delete(ctx context.Context, trackID, userID string) error
	Publish(ctx context.Context, trackID, userID string) error
	ToggleLike(ctx context.Context, trackID, userID string) (bool, int, error)
	Feed(ctx context.Context) ([]model.FeedItem, error)
}

type trackService struct {
	trackRepo repository.TrackRepository
	logger    zerolog.Logger
}

func NewTrackService(trackRepo repository.TrackRepository, logger zerolog.Logger) TrackService {
	return &trackService{
		trackRepo: trackRepo,
		logger:    logger.With().Str("service", "TrackService").Logger(),
	}
}

func (s *trackService) Save(ctx context.Context, t *model.Track) (*model.Track, error) {
	t.Tags = deriveTags(t.Genre, t.Mood)
	created, err := s.trackRepo.Create(ctx, t)
	if err != nil {
		return nil, apperror.Upstream("saving track: %v", err)
	}
	return created, nil
}

func (s *trackService) List(ctx context.Context, userID string) ([]model.Track, error) {
	tracks, err := s.trackRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Upstream("listing tracks: %v", err)
	}
	return tracks, nil
}

func (s *trackService) Delete(ctx context.Context, trackID, userID string) error {
	if err := s.requireOwner(ctx, trackID, userID); err != nil {
		return err
	}
	if err := s.trackRepo.Delete(ctx, trackID); err != nil {
		return apperror.Upstream("deleting track: %v", err)
	}
	return nil
}

func (s *trackService) Publish(ctx context.Context, trackID, userID string) error {
	if err := s.requireOwner(ctx, trackID, userID); err != nil {
		return err
	}
	if err := s.trackRepo.Publish(ctx, trackID, userID); err != nil {
		return apperror.Upstream("publishing track: %v", err)
	}
	return nil
}

// ToggleLike flips the caller's like and returns the new state plus the
// track's updated counter.
func (s *trackService) ToggleLike(ctx context.Context, trackID, userID string) (bool, int, error) {
	track, err := s.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		return false, 0, apperror.Upstream("loading track: %v", err)
	}
	if track == nil {
		return false, 0, apperror.NotFound("track not found")
	}

	liked, err := s.trackRepo.ToggleLike(ctx, trackID, userID)
	if err != nil {
		return false, 0, apperror.Upstream("toggling like: %v", err)
	}

	likes := track.Likes
	if liked {
		likes++
	} else if likes > 0 {
		likes--
	}
	return liked, likes, nil
}

func (s *trackService) Feed(ctx context.Context) ([]model.FeedItem, error) {
	items, err := s.trackRepo.Feed(ctx)
	if err != nil {
		return nil, apperror.Upstream("loading feed: %v", err)
	}
	return items, nil
}

func (s *trackService) requireOwner(ctx context.Context, trackID, userID string) error {
	track, err := s.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		return apperror.Upstream("loading track: %v", err)
	}
	if track == nil {
		return apperror.NotFound("track not found")
	}
	if track.UserID != userID {
		return apperror.Forbidden("not your track")
	}
	return nil
}

// deriveTags lower-cases genre and mood into the track's tag set.
func deriveTags(genre, mood string) []string {
	var tags []string
	for _, v := range []string{genre, mood} {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}
