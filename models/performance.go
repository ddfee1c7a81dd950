package models

import "time"

// Performance is one recorded instance of a user doing a sport. Points are
// computed once at recording time and never recalculated: a later change to a
// sport's points_per_unit must not rewrite history.
type Performance struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	SportID      int       `json:"sport_id" db:"sport_id"`
	Value        float64   `json:"value" db:"value"`
	Points       float64   `json:"points" db:"points"`
	DateRecorded time.Time `json:"date_recorded" db:"date_recorded"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Joined from sports for history listings.
	SportName string `json:"sport_name,omitempty" db:"-"`
	SportUnit string `json:"sport_unit,omitempty" db:"-"`
}
