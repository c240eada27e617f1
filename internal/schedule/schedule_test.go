package schedule

import (
	"testing"
	"time"

	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func habit(ft models.FrequencyType, value int) *models.Habit {
	return &models.Habit{FrequencyType: ft, FrequencyValue: value}
}

func TestNextDue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		habit    *models.Habit
		lastDate string
		want     string
	}{
		{name: "daily every day", habit: habit(models.FrequencyDaily, 1), lastDate: "2024-03-10", want: "2024-03-11"},
		{name: "daily every third day", habit: habit(models.FrequencyDaily, 3), lastDate: "2024-03-10", want: "2024-03-13"},
		{name: "weekly", habit: habit(models.FrequencyWeekly, 1), lastDate: "2024-03-10", want: "2024-03-17"},
		{name: "biweekly", habit: habit(models.FrequencyWeekly, 2), lastDate: "2024-03-10", want: "2024-03-24"},
		{name: "monthly mid-month", habit: habit(models.FrequencyMonthly, 1), lastDate: "2024-03-15", want: "2024-04-15"},
		{name: "monthly jan 31 clamps to feb 29", habit: habit(models.FrequencyMonthly, 1), lastDate: "2024-01-31", want: "2024-02-29"},
		{name: "monthly jan 31 clamps to feb 28 off leap year", habit: habit(models.FrequencyMonthly, 1), lastDate: "2023-01-31", want: "2023-02-28"},
		{name: "quarterly clamp", habit: habit(models.FrequencyMonthly, 3), lastDate: "2024-01-31", want: "2024-04-30"},
		{name: "custom interval", habit: habit(models.FrequencyCustom, 10), lastDate: "2024-03-10", want: "2024-03-20"},
		{name: "custom behaves like daily arithmetic", habit: habit(models.FrequencyCustom, 1), lastDate: "2024-03-10", want: "2024-03-11"},
		{name: "zero value treated as one", habit: habit(models.FrequencyDaily, 0), lastDate: "2024-03-10", want: "2024-03-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			last := day(t, tt.lastDate)
			now := day(t, "2024-06-01")
			got := dates.Format(NextDue(tt.habit, &last, now))
			if got != tt.want {
				t.Errorf("NextDue(%s/%d, last=%s) = %s, want %s",
					tt.habit.FrequencyType, tt.habit.FrequencyValue, tt.lastDate, got, tt.want)
			}
		})
	}
}

func TestNextDue_NeverCompleted(t *testing.T) {
	t.Parallel()

	now := day(t, "2024-03-10")
	got := NextDue(habit(models.FrequencyWeekly, 2), nil, now)
	if !got.Equal(now) {
		t.Errorf("never-completed habit should be due now, got %s", dates.Format(got))
	}
}

func TestIsDueToday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		habit    *models.Habit
		lastDate *string
		today    string
		want     bool
	}{
		{name: "never completed is due", habit: habit(models.FrequencyDaily, 1), lastDate: nil, today: "2024-03-10", want: true},
		{name: "completed today not due", habit: habit(models.FrequencyDaily, 1), lastDate: strPtr("2024-03-10"), today: "2024-03-10", want: false},
		{name: "due again next day", habit: habit(models.FrequencyDaily, 1), lastDate: strPtr("2024-03-09"), today: "2024-03-10", want: true},
		{name: "missed habit stays due indefinitely", habit: habit(models.FrequencyDaily, 1), lastDate: strPtr("2024-02-01"), today: "2024-03-10", want: true},
		{name: "weekly not yet due", habit: habit(models.FrequencyWeekly, 1), lastDate: strPtr("2024-03-08"), today: "2024-03-10", want: false},
		{name: "weekly due on the seventh day", habit: habit(models.FrequencyWeekly, 1), lastDate: strPtr("2024-03-03"), today: "2024-03-10", want: true},
		{name: "monthly clamped due date honored", habit: habit(models.FrequencyMonthly, 1), lastDate: strPtr("2024-01-31"), today: "2024-02-29", want: true},
		{name: "monthly not due the day before the clamp", habit: habit(models.FrequencyMonthly, 1), lastDate: strPtr("2024-01-31"), today: "2024-02-28", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var last *time.Time
			if tt.lastDate != nil {
				d := day(t, *tt.lastDate)
				last = &d
			}
			got := IsDueToday(tt.habit, last, day(t, tt.today))
			if got != tt.want {
				t.Errorf("IsDueToday(last=%v, today=%s) = %v, want %v", tt.lastDate, tt.today, got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
