package model

import "time"

// Plan tiers and their daily generation limits. Unknown plans fall back
// to the free tier limit.
const (
	PlanFree      = "free"
	PlanStarter   = "starter"
	PlanPro       = "pro"
	PlanUnlimited = "unlimited"
)

// DailyLimit returns the number of generations a plan allows per day.
func DailyLimit(plan string) int {
	switch plan {
	case PlanStarter:
		return 10
	case PlanPro:
		return 25
	case PlanUnlimited:
		return 100
	default:
		return 2
	}
}

// User represents a user profile row. The row is created by the
// identity provider's signup flow; this gateway only reads it and
// mutates the credit counters and mutable profile fields.
type User struct {
	UserID          string    `db:"user_id" json:"user_id"`
	DisplayName     string    `db:"display_name" json:"display_name"`
	Plan            string    `db:"plan" json:"plan"`
	TotalPoints     int       `db:"total_points" json:"total_points"`
	PointsUsedToday int       `db:"points_used_today" json:"points_used_today"`
	GenerationCount int       `db:"generation_count" json:"generation_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ProfilePatch carries the only profile fields a client may change.
// Identity, email and credit columns are deliberately absent.
type ProfilePatch struct {
	DisplayName *string
}
