package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/models"
)

// HabitRepository handles habit database operations
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

const habitColumns = `id, owner_id, name, frequency_type, frequency_value, target_count, color,
	streak_count, best_streak, total_completions, is_active, archived_at, created_at, updated_at`

// Create creates a new habit
func (r *HabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	query := `
		INSERT INTO habits (id, owner_id, name, frequency_type, frequency_value, target_count, color,
			streak_count, best_streak, total_completions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, 0, TRUE, $8, $9)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		habit.ID,
		habit.OwnerID,
		habit.Name,
		habit.FrequencyType,
		habit.FrequencyValue,
		habit.TargetCount,
		habit.Color,
		now,
		now,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	habit.IsActive = true
	return nil
}

// GetByID retrieves a habit by ID. Ownership is checked by the caller.
func (r *HabitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	habit, err := scanHabit(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return habit, nil
}

// GetByOwner retrieves all habits for an owner, newest first.
// Archived habits are excluded unless includeArchived is set.
func (r *HabitRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE owner_id = $1`
	if !includeArchived {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habits: %w", err)
	}

	return habits, nil
}

// GetByOwnerPaginated retrieves a page of habits for an owner along with the total count
func (r *HabitRepository) GetByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, includeArchived bool, page, pageSize int) ([]*models.Habit, int, error) {
	countQuery := `SELECT COUNT(*) FROM habits WHERE owner_id = $1`
	if !includeArchived {
		countQuery += ` AND is_active = TRUE`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count habits: %w", err)
	}

	query := `SELECT ` + habitColumns + ` FROM habits WHERE owner_id = $1`
	if !includeArchived {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating habits: %w", err)
	}

	return habits, total, nil
}

// Update updates a habit's editable fields. Derived fields are untouched;
// only UpdateDerivedFields may write those.
func (r *HabitRepository) Update(ctx context.Context, habit *models.Habit) error {
	query := `
		UPDATE habits
		SET name = $2, frequency_type = $3, frequency_value = $4, target_count = $5, color = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		habit.ID,
		habit.Name,
		habit.FrequencyType,
		habit.FrequencyValue,
		habit.TargetCount,
		habit.Color,
		time.Now(),
	).Scan(&habit.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	return nil
}

// UpdateDerivedFields persists the recomputed streak cache. This is the only
// write path for streak_count, best_streak and total_completions.
func (r *HabitRepository) UpdateDerivedFields(ctx context.Context, id uuid.UUID, streak, bestStreak, totalCompletions int) error {
	query := `
		UPDATE habits
		SET streak_count = $2, best_streak = $3, total_completions = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, streak, bestStreak, totalCompletions, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update derived fields: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	return nil
}

// Archive soft-deletes a habit. Logs are preserved.
func (r *HabitRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return r.setActive(ctx, id, false)
}

// Restore reverses an archive
func (r *HabitRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.setActive(ctx, id, true)
}

func (r *HabitRepository) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	var query string
	if active {
		query = `UPDATE habits SET is_active = TRUE, archived_at = NULL, updated_at = $2 WHERE id = $1`
	} else {
		query = `UPDATE habits SET is_active = FALSE, archived_at = $2, updated_at = $2 WHERE id = $1`
	}

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to change habit active state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	return nil
}

// Delete permanently removes a habit. Logs cascade via the foreign key.
func (r *HabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteArchivedBefore hard-deletes habits archived before the cutoff.
// Used by the purge path in habitctl, never by the API.
func (r *HabitRepository) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM habits WHERE is_active = FALSE AND archived_at IS NOT NULL AND archived_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge archived habits: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(s scanner) (*models.Habit, error) {
	habit := &models.Habit{}
	var archivedAt sql.NullTime

	err := s.Scan(
		&habit.ID,
		&habit.OwnerID,
		&habit.Name,
		&habit.FrequencyType,
		&habit.FrequencyValue,
		&habit.TargetCount,
		&habit.Color,
		&habit.StreakCount,
		&habit.BestStreak,
		&habit.TotalCompletions,
		&habit.IsActive,
		&archivedAt,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if archivedAt.Valid {
		habit.ArchivedAt = &archivedAt.Time
	}

	return habit, nil
}
