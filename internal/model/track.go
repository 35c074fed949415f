package model

import "time"

// Track is a saved generation result owned by a user.
type Track struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Genre       string    `db:"genre" json:"genre"`
	Mood        string    `db:"mood" json:"mood"`
	Prompt      string    `db:"prompt" json:"prompt"`
	Duration    float64   `db:"duration" json:"duration"`
	AudioURL    string    `db:"audio_url" json:"audio_url"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	TaskID      string    `db:"task_id" json:"task_id"`
	Tags        []string  `db:"tags" json:"tags"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	Likes       int       `db:"likes" json:"likes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FeedItem is a published track joined with its owner's display name.
type FeedItem struct {
	Track
	OwnerName   string    `db:"owner_name" json:"owner_name"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
}
