package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2024-03-15", wantErr: false},
		{name: "leap day", input: "2024-02-29", wantErr: false},
		{name: "invalid leap day", input: "2023-02-29", wantErr: true},
		{name: "month out of range", input: "2024-13-01", wantErr: true},
		{name: "day out of range", input: "2024-04-31", wantErr: true},
		{name: "wrong layout", input: "15/03/2024", wantErr: true},
		{name: "datetime not a day", input: "2024-03-15T10:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
				return
			}
			if Format(got) != tt.input {
				t.Errorf("Format(Parse(%q)) = %q, want round-trip", tt.input, Format(got))
			}
		})
	}
}

func TestAddMonthsClampsToShorterMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{name: "jan 31 plus one month clamps to feb 28", start: "2023-01-31", months: 1, want: "2023-02-28"},
		{name: "jan 31 plus one month in leap year clamps to feb 29", start: "2024-01-31", months: 1, want: "2024-02-29"},
		{name: "mar 31 plus one month clamps to apr 30", start: "2024-03-31", months: 1, want: "2024-04-30"},
		{name: "mid-month day is untouched", start: "2024-01-15", months: 1, want: "2024-02-15"},
		{name: "crosses year boundary", start: "2024-11-30", months: 3, want: "2025-02-28"},
		{name: "multiple months", start: "2024-01-31", months: 3, want: "2024-04-30"},
		{name: "zero months", start: "2024-05-10", months: 0, want: "2024-05-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, err := Parse(tt.start)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.start, err)
			}
			got := Format(AddMonths(start, tt.months))
			if got != tt.want {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	t.Parallel()

	start, _ := Parse("2024-12-30")
	got := Format(AddDays(start, 3))
	if got != "2025-01-02" {
		t.Errorf("AddDays across year boundary = %s, want 2025-01-02", got)
	}

	got = Format(AddDays(start, -1))
	if got != "2024-12-29" {
		t.Errorf("AddDays(-1) = %s, want 2024-12-29", got)
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	a, _ := Parse("2024-02-28")
	b, _ := Parse("2024-03-01")
	if d := DaysBetween(a, b); d != 2 {
		t.Errorf("DaysBetween leap feb = %d, want 2", d)
	}
	if d := DaysBetween(b, a); d != -2 {
		t.Errorf("DaysBetween reversed = %d, want -2", d)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 6, 1, 23, 59, 59, 999, time.UTC)
	got := Truncate(ts)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Truncate left time-of-day: %v", got)
	}
}
