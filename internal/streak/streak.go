// Package streak derives consecutive-day streaks from a habit's log history.
// Everything here is a pure function over logs; persistence of the results is
// the caller's job.
package streak

import (
	"time"

	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/models"
)

// Current computes the streak of consecutive qualifying days ending at or
// before asOf. A day qualifies when it has a log with status completed or
// partial. The walk stops at the first missing or skipped/failed day.
//
// An unlogged asOf does not break an existing streak (the user has until the
// day's end to log), so the walk starts at asOf-1 in that case. A skipped or
// failed log on asOf resets the streak to 0 immediately.
func Current(logs []*models.HabitLog, asOf time.Time) int {
	byDay := make(map[string]models.LogStatus, len(logs))
	for _, l := range logs {
		byDay[l.Date] = l.Status
	}

	day := dates.Truncate(asOf)
	if status, logged := byDay[dates.Format(day)]; logged {
		if !qualifies(status) {
			return 0
		}
	} else {
		day = dates.AddDays(day, -1)
	}

	count := 0
	for {
		status, logged := byDay[dates.Format(day)]
		if !logged || !qualifies(status) {
			return count
		}
		count++
		day = dates.AddDays(day, -1)
	}
}

// Best returns the historical best streak given the previous best and a newly
// computed current streak. Monotonically non-decreasing.
func Best(previousBest, currentStreak int) int {
	if currentStreak > previousBest {
		return currentStreak
	}
	return previousBest
}

// TotalCompletions counts the qualifying (completed/partial) logs in a history
func TotalCompletions(logs []*models.HabitLog) int {
	n := 0
	for _, l := range logs {
		if l.Qualifies() {
			n++
		}
	}
	return n
}

func qualifies(s models.LogStatus) bool {
	return s == models.LogStatusCompleted || s == models.LogStatusPartial
}
