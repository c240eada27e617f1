package queue

import (
	"context"
	"time"
)

// MessageInterface defines the interface for queue messages.
// This enables better testability by allowing mock implementations.
type MessageInterface interface {
	Ack() error
	Nack(requeue bool) error
	GetJob() *Job
}

// JobQueue is the interface for job queues
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, job *Job) error

	// Consume returns a channel of messages from the queue.
	// Messages are delivered asynchronously as they arrive and must be
	// acknowledged by the caller. Prefetch controls how many unacknowledged
	// messages each consumer can hold. The returned channels are closed when
	// the context is cancelled or the connection fails.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	// Close closes the queue connection
	Close() error

	// HealthCheck verifies the queue connection is healthy
	HealthCheck(ctx context.Context) error
}

// Enqueuer is the narrow producer-side interface used by the engine service
type Enqueuer interface {
	Enqueue(ctx context.Context, job *Job) error
}

// DLQPurger is implemented by queues that support purging old dead letters
type DLQPurger interface {
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error)
}
