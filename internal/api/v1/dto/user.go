package dto

import (
	"time"

	"tunegen/internal/model"
)

// ProfilePatchDTO is the body of PATCH /api/profile. Identity, email
// and credit fields are not part of the schema; anything else in the
// payload is dropped at decode time.
type ProfilePatchDTO struct {
	DisplayName *string `json:"display_name" validate:"omitnil,min=1,max=100"`
}

// UserResponseDTO is the wire shape of the caller's profile.
type UserResponseDTO struct {
	UserID          string    `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	Plan            string    `json:"plan"`
	TotalPoints     int       `json:"total_points"`
	PointsUsedToday int       `json:"points_used_today"`
	GenerationCount int       `json:"generation_count"`
	DailyLimit      int       `json:"daily_limit"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewUserResponse(u *model.User) UserResponseDTO {
	return UserResponseDTO{
		UserID:          u.UserID,
		DisplayName:     u.DisplayName,
		Plan:            u.Plan,
		TotalPoints:     u.TotalPoints,
		PointsUsedToday: u.PointsUsedToday,
		GenerationCount: u.GenerationCount,
		DailyLimit:      model.DailyLimit(u.Plan),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
