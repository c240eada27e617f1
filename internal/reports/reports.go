// Package reports builds read-only aggregation views over habits and their
// logs. Reports never mutate state; they read committed rows, so a write
// racing a report shows up in the next request rather than mid-view.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/database"
	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/habits"
	"github.com/habitkit/habit-api/internal/models"
	"github.com/habitkit/habit-api/internal/schedule"
)

// MaxRangeDays caps the weekly-summary range; anything longer belongs to a
// bulk export, not a dashboard view.
const MaxRangeDays = 92

// Service is the aggregation reporter
type Service struct {
	habits database.HabitRepositoryInterface
	logs   database.HabitLogRepositoryInterface
}

// NewService creates the reporter
func NewService(habitRepo database.HabitRepositoryInterface, logRepo database.HabitLogRepositoryInterface) *Service {
	return &Service{habits: habitRepo, logs: logRepo}
}

// TodayEntry is one active habit's slice of the today view
type TodayEntry struct {
	Habit       *models.Habit    `json:"habit"`
	Log         *models.HabitLog `json:"log,omitempty"`
	IsDueToday  bool             `json:"is_due_today"`
	NextDueDate string           `json:"next_due_date"`
}

// TodayReport partitions the owner's active habits by whether today is logged
type TodayReport struct {
	Date           string        `json:"date"`
	Logged         []*TodayEntry `json:"logged"`
	Unlogged       []*TodayEntry `json:"unlogged"`
	TotalActive    int           `json:"total_active"`
	CompletedCount int           `json:"completed_count"`
	CompletionRate float64       `json:"completion_rate"`
}

// DaySummary aggregates one calendar day of a weekly summary. Days with no
// logs still appear, with zero counts and absent averages.
type DaySummary struct {
	Date           string   `json:"date"`
	LoggedCount    int      `json:"logged_count"`
	CompletedCount int      `json:"completed_count"`
	CompletionRate float64  `json:"completion_rate"`
	AvgQuality     *float64 `json:"avg_quality,omitempty"`
	AvgMoodAfter   *float64 `json:"avg_mood_after,omitempty"`
}

// WeeklyReport is a dense per-day summary over an inclusive date range
type WeeklyReport struct {
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	ActiveHabits   int           `json:"active_habits"`
	TotalCompleted int           `json:"total_completed"`
	Days           []*DaySummary `json:"days"`
}

// TodayView builds the today report for an owner
func (s *Service) TodayView(ctx context.Context, ownerID uuid.UUID, today time.Time) (*TodayReport, error) {
	active, err := s.habits.GetByOwner(ctx, ownerID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits for today view: %w", err)
	}

	day := dates.Format(today)
	report := &TodayReport{
		Date:        day,
		Logged:      []*TodayEntry{},
		Unlogged:    []*TodayEntry{},
		TotalActive: len(active),
	}

	for _, habit := range active {
		log, err := s.logs.GetForDay(ctx, habit.ID, day)
		if err != nil {
			return nil, fmt.Errorf("failed to load today's log for habit %s: %w", habit.ID, err)
		}

		lastDay, err := s.logs.LastQualifyingDay(ctx, habit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load last qualifying day for habit %s: %w", habit.ID, err)
		}
		var last *time.Time
		if lastDay != nil {
			if d, err := dates.Parse(*lastDay); err == nil {
				last = &d
			}
		}

		entry := &TodayEntry{
			Habit:       habit,
			Log:         log,
			IsDueToday:  schedule.IsDueToday(habit, last, today),
			NextDueDate: dates.Format(schedule.NextDue(habit, last, today)),
		}

		if log != nil {
			report.Logged = append(report.Logged, entry)
			if log.Qualifies() {
				report.CompletedCount++
			}
		} else {
			report.Unlogged = append(report.Unlogged, entry)
		}
	}

	if report.TotalActive > 0 {
		report.CompletionRate = float64(len(report.Logged)) / float64(report.TotalActive)
	}

	return report, nil
}

// WeeklySummary builds the dense per-day summary over [startDate, endDate]
func (s *Service) WeeklySummary(ctx context.Context, ownerID uuid.UUID, startDate, endDate string) (*WeeklyReport, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", habits.ErrInvalidInput, err)
	}
	end, err := dates.Parse(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", habits.ErrInvalidInput, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date %s is before start_date %s", habits.ErrInvalidInput, endDate, startDate)
	}
	if dates.DaysBetween(start, end) >= MaxRangeDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", habits.ErrInvalidInput, MaxRangeDays)
	}

	active, err := s.habits.GetByOwner(ctx, ownerID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits for weekly summary: %w", err)
	}

	logs, err := s.logs.GetByOwnerRange(ctx, ownerID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for weekly summary: %w", err)
	}

	byDay := make(map[string][]*models.HabitLog)
	for _, log := range logs {
		byDay[log.Date] = append(byDay[log.Date], log)
	}

	report := &WeeklyReport{
		StartDate:    startDate,
		EndDate:      endDate,
		ActiveHabits: len(active),
	}

	for day := start; !day.After(end); day = dates.AddDays(day, 1) {
		summary := summarizeDay(dates.Format(day), byDay[dates.Format(day)], len(active))
		report.TotalCompleted += summary.CompletedCount
		report.Days = append(report.Days, summary)
	}

	return report, nil
}

func summarizeDay(date string, logs []*models.HabitLog, activeHabits int) *DaySummary {
	summary := &DaySummary{
		Date:        date,
		LoggedCount: len(logs),
	}

	qualitySum, qualityN := 0, 0
	moodSum, moodN := 0, 0
	for _, log := range logs {
		if log.Qualifies() {
			summary.CompletedCount++
		}
		if log.QualityRating != nil {
			qualitySum += *log.QualityRating
			qualityN++
		}
		if log.MoodAfter != nil {
			moodSum += *log.MoodAfter
			moodN++
		}
	}

	if activeHabits > 0 {
		summary.CompletionRate = float64(summary.CompletedCount) / float64(activeHabits)
	}
	if qualityN > 0 {
		avg := float64(qualitySum) / float64(qualityN)
		summary.AvgQuality = &avg
	}
	if moodN > 0 {
		avg := float64(moodSum) / float64(moodN)
		summary.AvgMoodAfter = &avg
	}

	return summary
}
