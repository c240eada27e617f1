package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/models"
)

// HabitRepositoryInterface defines the interface for habit registry operations.
// This interface enables better testability by allowing mock implementations.
type HabitRepositoryInterface interface {
	Create(ctx context.Context, habit *models.Habit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Habit, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.Habit, error)
	GetByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, includeArchived bool, page, pageSize int) ([]*models.Habit, int, error)
	Update(ctx context.Context, habit *models.Habit) error
	UpdateDerivedFields(ctx context.Context, id uuid.UUID, streak, bestStreak, totalCompletions int) error
	Archive(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// HabitLogRepositoryInterface defines the interface for log store operations
type HabitLogRepositoryInterface interface {
	Upsert(ctx context.Context, log *models.HabitLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.HabitLog, error)
	GetForDay(ctx context.Context, habitID uuid.UUID, date string) (*models.HabitLog, error)
	GetByHabit(ctx context.Context, habitID uuid.UUID, startDate, endDate *string, status *models.LogStatus) ([]*models.HabitLog, error)
	GetByOwnerRange(ctx context.Context, ownerID uuid.UUID, startDate, endDate string) ([]*models.HabitLog, error)
	LastQualifyingDay(ctx context.Context, habitID uuid.UUID) (*string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Ensure concrete types implement the interfaces
var (
	_ HabitRepositoryInterface    = (*HabitRepository)(nil)
	_ HabitLogRepositoryInterface = (*HabitLogRepository)(nil)
)
