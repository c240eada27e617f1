package models

import (
	"time"

	"github.com/google/uuid"
)

// FrequencyType represents how often a habit recurs
type FrequencyType string

const (
	FrequencyDaily   FrequencyType = "daily"
	FrequencyWeekly  FrequencyType = "weekly"
	FrequencyMonthly FrequencyType = "monthly"
	// FrequencyCustom uses the same day arithmetic as daily but FrequencyValue
	// is an arbitrary interval rather than a multiple of a natural period.
	// Kept distinct so front-ends can display it differently.
	FrequencyCustom FrequencyType = "custom"
)

// Habit represents a tracked recurring activity
type Habit struct {
	ID             uuid.UUID     `json:"id"`
	OwnerID        uuid.UUID     `json:"owner_id"`
	Name           string        `json:"name"`
	FrequencyType  FrequencyType `json:"frequency_type"`
	FrequencyValue int           `json:"frequency_value"`
	TargetCount    int           `json:"target_count"`
	Color          string        `json:"color,omitempty"`

	// Derived fields cached from the log history. Written only through
	// HabitRepository.UpdateDerivedFields; never hand-edited.
	StreakCount      int `json:"streak_count"`
	BestStreak       int `json:"best_streak"`
	TotalCompletions int `json:"total_completions"`

	IsActive   bool       `json:"is_active"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
