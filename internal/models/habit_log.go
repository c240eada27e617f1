package models

import (
	"time"

	"github.com/google/uuid"
)

// LogStatus represents the outcome recorded for a habit on a given day
type LogStatus string

const (
	LogStatusCompleted LogStatus = "completed"
	LogStatusPartial   LogStatus = "partial"
	LogStatusSkipped   LogStatus = "skipped"
	LogStatusFailed    LogStatus = "failed"
)

const (
	// MinRating is the lower bound for quality and mood ratings
	MinRating = 1
	// MaxRating is the upper bound for quality and mood ratings
	MaxRating = 10
)

// HabitLog represents one completion record per (habit, calendar day).
// Date is a caller-localized calendar day ("2006-01-02"); the engine never
// resolves timezones itself.
type HabitLog struct {
	ID      uuid.UUID `json:"id"`
	HabitID uuid.UUID `json:"habit_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Date    string    `json:"date"`
	Status  LogStatus `json:"status"`

	// CompletionCount and TargetCount are snapshotted at write time, so a later
	// habit edit does not change what "done" meant for a past day.
	CompletionCount int `json:"completion_count"`
	TargetCount     int `json:"target_count"`

	QualityRating *int    `json:"quality_rating,omitempty"`
	MoodBefore    *int    `json:"mood_before,omitempty"`
	MoodAfter     *int    `json:"mood_after,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Qualifies reports whether this log counts toward a streak
func (l *HabitLog) Qualifies() bool {
	return l.Status == LogStatusCompleted || l.Status == LogStatusPartial
}
