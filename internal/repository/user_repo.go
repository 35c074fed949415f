package repository

import (
	"context"
	"errors"
	"fmt"

	"tunegen/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository reads and mutates user profile rows.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
	// UpdateProfile applies the mutable profile fields only. Identity,
	// email and credit columns can never be touched through it.
	UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (*model.User, error)
	// DebitGeneration charges one generation in a single statement:
	// balance down, daily use and lifetime count up.
	DebitGeneration(ctx context.Context, userID string) error
}

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	const q = `
        SELECT user_id, display_name, plan, total_points, points_used_today, generation_count, created_at, updated_at
        FROM user_profiles
        WHERE user_id = $1
    `
	var u model.User
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&u.UserID,
		&u.DisplayName,
		&u.Plan,
		&u.TotalPoints,
		&u.PointsUsedToday,
		&u.GenerationCount,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	return &u, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (*model.User, error) {
	const q = `
        UPDATE user_profiles
        SET display_name = COALESCE($2, display_name),
            updated_at = NOW()
        WHERE user_id = $1
        RETURNING user_id, display_name, plan, total_points, points_used_today, generation_count, created_at, updated_at
    `
	var u model.User
	err := r.pool.QueryRow(ctx, q, userID, patch.DisplayName).Scan(
		&u.UserID,
		&u.DisplayName,
		&u.Plan,
		&u.TotalPoints,
		&u.PointsUsedToday,
		&u.GenerationCount,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating profile for user %s: %w", userID, err)
	}
	return &u, nil
}

func (r *userRepo) DebitGeneration(ctx context.Context, userID string) error {
	const q = `
        UPDATE user_profiles
        SET total_points = total_points - 1,
            points_used_today = points_used_today + 1,
            generation_count = generation_count + 1,
            updated_at = NOW()
        WHERE user_id = $1
    `
	if _, err := r.pool.Exec(ctx, q, userID); err != nil {
		return fmt.Errorf("debiting generation for user %s: %w", userID, err)
	}
	return nil
}
