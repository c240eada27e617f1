// Package workers contains the streak repair worker. It consumes repair jobs
// and reconciles cached derived fields against the log history after a
// synchronous post-write recompute failed.
package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/habits"
	"github.com/habitkit/habit-api/internal/queue"
)

// baseRetryDelay seeds the exponential backoff for transient store failures
const baseRetryDelay = 30 * time.Second

// Recomputer is the slice of the engine the worker needs
type Recomputer interface {
	RecomputeHabit(ctx context.Context, habitID uuid.UUID) error
	RecomputeOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

// StreakRepairer processes streak repair jobs
type StreakRepairer struct {
	engine   Recomputer
	jobQueue queue.JobQueue // for re-enqueueing jobs with delays
}

// NewStreakRepairer creates a new streak repairer
func NewStreakRepairer(engine Recomputer, jobQueue queue.JobQueue) *StreakRepairer {
	return &StreakRepairer{
		engine:   engine,
		jobQueue: jobQueue,
	}
}

// ProcessStreakRepairJob recomputes one habit's derived fields
func (w *StreakRepairer) ProcessStreakRepairJob(ctx context.Context, job *queue.Job) error {
	if job.HabitID == nil {
		return fmt.Errorf("habit_id is required for streak repair job")
	}

	err := w.engine.RecomputeHabit(ctx, *job.HabitID)
	if errors.Is(err, habits.ErrNotFound) {
		// Habit was deleted between the failed write and the repair; there is
		// nothing left to reconcile.
		log.Printf("Habit %s no longer exists, dropping repair job %s", *job.HabitID, job.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to repair habit %s: %w", *job.HabitID, err)
	}

	log.Printf("Repaired derived fields for habit %s (job %s)", *job.HabitID, job.ID)
	return nil
}

// ProcessOwnerRepairJob recomputes derived fields for every habit an owner has
func (w *StreakRepairer) ProcessOwnerRepairJob(ctx context.Context, job *queue.Job) error {
	repaired, err := w.engine.RecomputeOwner(ctx, job.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to repair habits for owner %s (repaired %d): %w", job.OwnerID, repaired, err)
	}

	log.Printf("Repaired derived fields for %d habits of owner %s (job %s)", repaired, job.OwnerID, job.ID)
	return nil
}

// ProcessJob dispatches a message to the handler for its job type and settles
// the delivery
func (w *StreakRepairer) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	switch job.Type {
	case queue.JobTypeStreakRepair:
		if err := w.ProcessStreakRepairJob(ctx, job); err != nil {
			return w.handleJobError(ctx, msg, job, err)
		}

	case queue.JobTypeOwnerRepair:
		if err := w.ProcessOwnerRepairJob(ctx, job); err != nil {
			return w.handleJobError(ctx, msg, job, err)
		}

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			log.Printf("Failed to nack unknown job type: %v", nackErr)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}

	if ackErr := msg.Ack(); ackErr != nil {
		return fmt.Errorf("failed to ack job: %w", ackErr)
	}
	return nil
}

// handleJobError retries transient failures with a delayed re-enqueue and
// dead-letters jobs that exhausted their retries
func (w *StreakRepairer) handleJobError(ctx context.Context, msg queue.MessageInterface, job *queue.Job, err error) error {
	if !job.CanRetry() {
		log.Printf("Repair job %s failed after %d retries: %v, sending to DLQ", job.ID, job.MaxRetries, err)
		if nackErr := msg.Nack(false); nackErr != nil {
			log.Printf("Failed to nack job to DLQ: %v", nackErr)
		}
		return fmt.Errorf("job failed (max retries): %w", err)
	}

	// Back off before the next attempt so a struggling store is not hammered.
	retryDelay := baseRetryDelay << job.RetryCount
	if w.jobQueue != nil {
		notBefore := time.Now().Add(retryDelay)
		delayedJob := &queue.Job{
			ID:         job.ID,
			Type:       job.Type,
			OwnerID:    job.OwnerID,
			HabitID:    job.HabitID,
			NotBefore:  &notBefore,
			NotAfter:   job.NotAfter,
			Metadata:   job.Metadata,
			CreatedAt:  job.CreatedAt,
			RetryCount: job.RetryCount + 1,
			MaxRetries: job.MaxRetries,
		}

		if ackErr := msg.Ack(); ackErr != nil {
			log.Printf("Failed to ack job before re-enqueue: %v", ackErr)
		}

		if enqueueErr := w.jobQueue.Enqueue(ctx, delayedJob); enqueueErr != nil {
			log.Printf("Failed to re-enqueue repair job %s: %v", job.ID, enqueueErr)
			return fmt.Errorf("failed to re-enqueue after %v: %w", err, enqueueErr)
		}

		log.Printf("Re-enqueued repair job %s for retry at %v (attempt %d/%d)",
			job.ID, notBefore, delayedJob.RetryCount, job.MaxRetries)
		return nil
	}

	// No queue access: fall back to immediate nack-with-requeue.
	job.IncrementRetry()
	log.Printf("Repair job %s failed (attempt %d/%d): %v, will retry", job.ID, job.RetryCount, job.MaxRetries, err)
	if nackErr := msg.Nack(true); nackErr != nil {
		log.Printf("Failed to nack job: %v", nackErr)
	}
	return fmt.Errorf("job failed (will retry): %w", err)
}
