package repository

import (
	"context"
	"errors"
	"fmt"

	"tunegen/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const feedLimit = 25

// TrackRepository persists tracks and their publish/like state.
type TrackRepository interface {
	Create(ctx context.Context, t *model.Track) (*model.Track, error)
	GetByID(ctx context.Context, trackID string) (*model.Track, error)
	ListByUser(ctx context.Context, userID string) ([]model.Track, error)
	Delete(ctx context.Context, trackID string) error
	// Publish marks the track published and records the feed entry.
	Publish(ctx context.Context, trackID, userID string) error
	// Feed returns the newest published tracks with the owner's display
	// name, capped at feedLimit.
	Feed(ctx context.Context) ([]model.FeedItem, error)
	// ToggleLike flips the (user, track) like row and keeps the track's
	// counter in step within one transaction. Returns the new state.
	ToggleLike(ctx context.Context, trackID, userID string) (bool, error)
}

type trackRepo struct {
	pool *pgxpool.Pool
}

func NewTrackRepo(pool *pgxpool.Pool) TrackRepository {
	return &trackRepo{pool: pool}
}

func (r *trackRepo) Create(ctx context.Context, t *model.Track) (*model.Track, error) {
	const q = `
        INSERT INTO tracks (user_id, title, genre, mood, prompt, duration, audio_url, image_url, task_id, tags)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, user_id, title, genre, mood, prompt, duration, audio_url, image_url, task_id, tags, is_published, likes, created_at
    `
	var created model.Track
	err := r.pool.QueryRow(ctx, q,
		t.UserID, t.Title, t.Genre, t.Mood, t.Prompt, t.Duration, t.AudioURL, t.ImageURL, t.TaskID, t.Tags,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Title,
		&created.Genre,
		&created.Mood,
		&created.Prompt,
		&created.Duration,
		&created.AudioURL,
		&created.ImageURL,
		&created.TaskID,
		&created.Tags,
		&created.IsPublished,
		&created.Likes,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating track: %w", err)
	}
	return &created, nil
}

func (r *trackRepo) GetByID(ctx context.Context, trackID string) (*model.Track, error) {
	const q = `
        SELECT id, user_id, title, genre, mood, prompt, duration, audio_url, image_url, task_id, tags, is_published, likes, created_at
        FROM tracks
        WHERE id = $1
    `
	var t model.Track
	err := r.pool.QueryRow(ctx, q, trackID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Genre,
		&t.Mood,
		&t.Prompt,
		&t.Duration,
		&t.AudioURL,
		&t.ImageURL,
		&t.TaskID,
		&t.Tags,
		&t.IsPublished,
		&t.Likes,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching track %s: %w", trackID, err)
	}
	return &t, nil
}

func (r *trackRepo) ListByUser(ctx context.Context, userID string) ([]model.Track, error) {
	const q = `
        SELECT id, user_id, title, genre, mood, prompt, duration, audio_url, image_url, task_id, tags, is_published, likes, created_at
        FROM tracks
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tracks for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tracks []model.Track
	for rows.Next() {
		var t model.Track
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Genre,
			&t.Mood,
			&t.Prompt,
			&t.Duration,
			&t.AudioURL,
			&t.ImageURL,
			&t.TaskID,
			&t.Tags,
			&t.IsPublished,
			&t.Likes,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning track row: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating track rows: %w", err)
	}
	return tracks, nil
}

func (r *trackRepo) Delete(ctx context.Context, trackID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tracks WHERE id = $1`, trackID); err != nil {
		return fmt.Errorf("deleting track %s: %w", trackID, err)
	}
	return nil
}

func (r *trackRepo) Publish(ctx context.Context, trackID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting publish transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `UPDATE tracks SET is_published = TRUE WHERE id = $1`, trackID); err != nil {
		return fmt.Errorf("marking track %s published: %w", trackID, err)
	}
	const insertQ = `
        INSERT INTO published_tracks (track_id, user_id, published_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (track_id) DO NOTHING
    `
	if _, err := tx.Exec(ctx, insertQ, trackID, userID); err != nil {
		return fmt.Errorf("indexing published track %s: %w", trackID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing publish for track %s: %w", trackID, err)
	}
	return nil
}

func (r *trackRepo) Feed(ctx context.Context) ([]model.FeedItem, error) {
	const q = `
        SELECT t.id, t.user_id, t.title, t.genre, t.mood, t.prompt, t.duration,
               t.audio_url, t.image_url, t.task_id, t.tags, t.is_published, t.likes, t.created_at,
               u.display_name, p.published_at
        FROM published_tracks p
        JOIN tracks t ON t.id = p.track_id
        JOIN user_profiles u ON u.user_id = p.user_id
        ORDER BY p.published_at DESC
        LIMIT $1
    `
	rows, err := r.pool.Query(ctx, q, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("querying feed: %w", err)
	}
	defer rows.Close()

	var items []model.FeedItem
	for rows.Next() {
		var it model.FeedItem
		if err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.Title,
			&it.Genre,
			&it.Mood,
			&it.Prompt,
			&it.Duration,
			&it.AudioURL,
			&it.ImageURL,
			&it.TaskID,
			&it.Tags,
			&it.IsPublished,
			&it.Likes,
			&it.CreatedAt,
			&it.OwnerName,
			&it.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning feed row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feed rows: %w", err)
	}
	return items, nil
}

func (r *trackRepo) ToggleLike(ctx context.Context, trackID, userID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("starting like transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM track_likes WHERE track_id = $1 AND user_id = $2`, trackID, userID)
	if err != nil {
		return false, fmt.Errorf("removing like for track %s: %w", trackID, err)
	}

	liked := tag.RowsAffected() == 0
	if liked {
		if _, err := tx.Exec(ctx, `INSERT INTO track_likes (track_id, user_id) VALUES ($1, $2)`, trackID, userID); err != nil {
			return false, fmt.Errorf("recording like for track %s: %w", trackID, err)
		}
		if _, err := tx.Exec(ctx, `UPDATE tracks SET likes = likes + 1 WHERE id = $1`, trackID); err != nil {
			return false, fmt.Errorf("incrementing like count for track %s: %w", trackID, err)
		}
	} else {
		if _, err := tx.Exec(ctx, `UPDATE tracks SET likes = GREATEST(likes - 1, 0) WHERE id = $1`, trackID); err != nil {
			return false, fmt.Errorf("decrementing like count for track %s: %w", trackID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing like toggle for track %s: %w", trackID, err)
	}
	return liked, nil
}
