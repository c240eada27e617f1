package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeStreakRepair recomputes one habit's derived fields from its log
	// history. Enqueued when the synchronous post-write recompute failed and
	// left the cached streak stale.
	JobTypeStreakRepair JobType = "streak_repair"
	// JobTypeOwnerRepair recomputes derived fields for every habit an owner has
	JobTypeOwnerRepair JobType = "owner_repair"
)

// Job represents a job in the queue
type Job struct {
	ID         uuid.UUID      `json:"id"`
	Type       JobType        `json:"type"`
	OwnerID    uuid.UUID      `json:"owner_id"`
	HabitID    *uuid.UUID     `json:"habit_id,omitempty"`   // nil for owner-wide repairs
	NotBefore  *time.Time     `json:"not_before,omitempty"` // earliest time to process (nil = immediate)
	NotAfter   *time.Time     `json:"not_after,omitempty"`  // latest time to process (nil = no expiration)
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	RetryCount int            `json:"retry_count"`
	MaxRetries int            `json:"max_retries"`
}

// NewJob creates a new job
func NewJob(jobType JobType, ownerID uuid.UUID, habitID *uuid.UUID) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       jobType,
		OwnerID:    ownerID,
		HabitID:    habitID,
		Metadata:   make(map[string]any),
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// ShouldProcess checks if the job should be processed now
func (j *Job) ShouldProcess() bool {
	now := time.Now()

	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}
	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}

	return true
}

// IsExpired checks if the job has expired
func (j *Job) IsExpired() bool {
	if j.NotAfter == nil {
		return false
	}
	return time.Now().After(*j.NotAfter)
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
