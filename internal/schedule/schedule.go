// Package schedule computes when a habit is next due from its frequency spec
// and the date it was last completed. Pure functions, no clock access beyond
// the fallback for never-completed habits.
package schedule

import (
	"time"

	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/models"
)

// NextDue returns the next calendar day on which the habit is expected.
// lastDate is the most recent qualifying completion day; nil means the habit
// has never been completed and is due immediately (at `now`).
func NextDue(habit *models.Habit, lastDate *time.Time, now time.Time) time.Time {
	if lastDate == nil {
		return dates.Truncate(now)
	}

	last := dates.Truncate(*lastDate)
	value := habit.FrequencyValue
	if value < 1 {
		value = 1
	}

	switch habit.FrequencyType {
	case models.FrequencyWeekly:
		return dates.AddDays(last, 7*value)
	case models.FrequencyMonthly:
		return dates.AddMonths(last, value)
	default:
		// daily and custom share the same day arithmetic
		return dates.AddDays(last, value)
	}
}

// IsDueToday reports whether the habit is due on `today`. Intentionally an
// inequality: a missed habit stays due until it is logged, rather than
// disappearing the day after its due date.
func IsDueToday(habit *models.Habit, lastDate *time.Time, today time.Time) bool {
	due := NextDue(habit, lastDate, today)
	return !dates.Truncate(today).Before(due)
}
