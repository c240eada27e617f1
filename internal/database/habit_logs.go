package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/models"
)

// HabitLogRepository handles completion log database operations.
// The table carries a UNIQUE (habit_id, date) constraint, so Upsert is the
// only write path and last write wins for a day.
type HabitLogRepository struct {
	db *DB
}

// NewHabitLogRepository creates a new habit log repository
func NewHabitLogRepository(db *DB) *HabitLogRepository {
	return &HabitLogRepository{db: db}
}

const logColumns = `id, habit_id, owner_id, date, status, completion_count, target_count,
	quality_rating, mood_before, mood_after, notes, created_at, updated_at`

// Upsert creates the log for (habit, date) or overwrites the existing one.
// The surviving row keeps its original id and created_at; everything else is
// replaced by the new write. Streak recompute is deliberately NOT part of this
// call so bulk imports can defer it.
func (r *HabitLogRepository) Upsert(ctx context.Context, log *models.HabitLog) error {
	query := `
		INSERT INTO habit_logs (id, habit_id, owner_id, date, status, completion_count, target_count,
			quality_rating, mood_before, mood_after, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (habit_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			completion_count = EXCLUDED.completion_count,
			target_count = EXCLUDED.target_count,
			quality_rating = EXCLUDED.quality_rating,
			mood_before = EXCLUDED.mood_before,
			mood_after = EXCLUDED.mood_after,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		log.ID,
		log.HabitID,
		log.OwnerID,
		log.Date,
		log.Status,
		log.CompletionCount,
		log.TargetCount,
		log.QualityRating,
		log.MoodBefore,
		log.MoodAfter,
		log.Notes,
		time.Now(),
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert habit log: %w", err)
	}

	return nil
}

// GetByID retrieves a single log
func (r *HabitLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE id = $1`

	log, err := scanLog(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("habit log %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}

	return log, nil
}

// GetForDay retrieves the log for (habit, date), or nil if the day is unlogged
func (r *HabitLogRepository) GetForDay(ctx context.Context, habitID uuid.UUID, date string) (*models.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE habit_id = $1 AND date = $2`

	log, err := scanLog(r.db.QueryRowContext(ctx, query, habitID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit log for day: %w", err)
	}

	return log, nil
}

// GetByHabit retrieves logs for a habit, newest day first, optionally filtered
// by an inclusive date range and/or status.
func (r *HabitLogRepository) GetByHabit(ctx context.Context, habitID uuid.UUID, startDate, endDate *string, status *models.LogStatus) ([]*models.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE habit_id = $1`
	args := []any{habitID}
	argIndex := 2

	if startDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, *startDate)
		argIndex++
	}

	if endDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, *endDate)
		argIndex++
	}

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(*status))
		argIndex++
	}

	query += " ORDER BY date DESC"

	return r.queryLogs(ctx, query, args...)
}

// GetByOwnerRange retrieves all of an owner's logs in an inclusive date range,
// oldest day first. Used by the weekly summary aggregation.
func (r *HabitLogRepository) GetByOwnerRange(ctx context.Context, ownerID uuid.UUID, startDate, endDate string) ([]*models.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs
		WHERE owner_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	return r.queryLogs(ctx, query, ownerID, startDate, endDate)
}

// LastQualifyingDay returns the most recent completed/partial day for a habit,
// or nil if the habit has never been completed.
func (r *HabitLogRepository) LastQualifyingDay(ctx context.Context, habitID uuid.UUID) (*string, error) {
	query := `SELECT MAX(date) FROM habit_logs WHERE habit_id = $1 AND status IN ($2, $3)`

	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, query, habitID, models.LogStatusCompleted, models.LogStatusPartial).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to get last qualifying day: %w", err)
	}

	if !last.Valid {
		return nil, nil
	}
	day := dates.Format(last.Time)
	return &day, nil
}

// Delete hard-deletes a single day's log (the undo path)
func (r *HabitLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("habit log %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *HabitLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]*models.HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.HabitLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit logs: %w", err)
	}

	return logs, nil
}

func scanLog(s scanner) (*models.HabitLog, error) {
	log := &models.HabitLog{}
	var day time.Time
	var quality, moodBefore, moodAfter sql.NullInt64
	var notes sql.NullString

	err := s.Scan(
		&log.ID,
		&log.HabitID,
		&log.OwnerID,
		&day,
		&log.Status,
		&log.CompletionCount,
		&log.TargetCount,
		&quality,
		&moodBefore,
		&moodAfter,
		&notes,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	log.Date = dates.Format(day)
	if quality.Valid {
		v := int(quality.Int64)
		log.QualityRating = &v
	}
	if moodBefore.Valid {
		v := int(moodBefore.Int64)
		log.MoodBefore = &v
	}
	if moodAfter.Valid {
		v := int(moodAfter.Int64)
		log.MoodAfter = &v
	}
	if notes.Valid {
		log.Notes = &notes.String
	}

	return log, nil
}
