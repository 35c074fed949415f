package dto

import (
	"time"

	"tunegen/internal/model"
)

// TrackCreateDTO is the body of POST /api/tracks.
type TrackCreateDTO struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Genre    string  `json:"genre" validate:"required,max=100"`
	Mood     string  `json:"mood" validate:"required,max=100"`
	Prompt   string  `json:"prompt" validate:"max=5000"`
	Duration float64 `json:"duration" validate:"min=0"`
	AudioURL string  `json:"audio_url" validate:"required,url"`
	ImageURL string  `json:"image_url" validate:"omitempty,url"`
	TaskID   string  `json:"task_id" validate:"max=100"`
}

// TrackResponseDTO is the wire shape of a track.
type TrackResponseDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Mood        string    `json:"mood"`
	Prompt      string    `json:"prompt"`
	Duration    float64   `json:"duration"`
	AudioURL    string    `json:"audio_url"`
	ImageURL    string    `json:"image_url"`
	TaskID      string    `json:"task_id"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"is_published"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedItemDTO is a published track with its owner's display name.
type FeedItemDTO struct {
	TrackResponseDTO
	OwnerName   string    `json:"owner_name"`
	PublishedAt time.Time `json:"published_at"`
}

// LikeResponseDTO reports the like state after a toggle.
type LikeResponseDTO struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

func NewTrackResponse(t *model.Track) TrackResponseDTO {
	return TrackResponseDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Genre:       t.Genre,
		Mood:        t.Mood,
		Prompt:      t.Prompt,
		Duration:    t.Duration,
		AudioURL:    t.AudioURL,
		ImageURL:    t.ImageURL,
		TaskID:      t.TaskID,
		Tags:        t.Tags,
		IsPublished: t.IsPublished,
		Likes:       t.Likes,
		CreatedAt:   t.CreatedAt,
	}
}

func NewFeedItem(it model.FeedItem) FeedItemDTO {
	return FeedItemDTO{
		TrackResponseDTO: NewTrackResponse(&it.Track),
		OwnerName:        it.OwnerName,
		PublishedAt:      it.PublishedAt,
	}
}
