package scoring

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	tests := []struct {
		name    string
		last    *time.Time
		today   time.Time
		current int
		want    int
	}{
		{name: "no prior study date", last: nil, today: today, current: 0, want: 1},
		{name: "same day holds", last: &today, today: today, current: 4, want: 4},
		{name: "yesterday increments", last: &yesterday, today: today, current: 4, want: 5},
		{name: "gap resets", last: &threeDaysAgo, today: today, current: 10, want: 1},
		{name: "same day with zero streak repairs to 1", last: &today, today: today, current: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.last, tt.today, tt.current)
			if got != tt.want {
				t.Errorf("NextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextStreakUsesCalendarDatesNotTimestamps(t *testing.T) {
	// 23:50 yesterday followed by 00:10 today is consecutive even though
	// less than 24 hours passed
	lateLastNight := time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC)
	earlyToday := time.Date(2026, 3, 10, 0, 10, 0, 0, time.UTC)

	if got := NextStreak(&lateLastNight, earlyToday, 2); got != 3 {
		t.Errorf("NextStreak() across midnight = %d, want 3", got)
	}

	// Two attempts 20 hours apart on the same calendar day hold the streak
	morning := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	if got := NextStreak(&morning, evening, 3); got != 3 {
		t.Errorf("NextStreak() same day = %d, want 3", got)
	}
}

func TestNextStreakNonUTCInput(t *testing.T) {
	// A local-time timestamp that is yesterday in UTC still increments
	loc := time.FixedZone("UTC+10", 10*3600)
	lastLocal := time.Date(2026, 3, 10, 8, 0, 0, 0, loc) // 2026-03-09 22:00 UTC
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := NextStreak(&lastLocal, today, 1); got != 2 {
		t.Errorf("NextStreak() with zoned input = %d, want 2", got)
	}
}

func TestSameStudyDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 23, 55, 0, 0, time.UTC)
	c := time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC)

	if !SameStudyDay(a, b) {
		t.Error("expected same study day")
	}
	if SameStudyDay(b, c) {
		t.Error("expected different study days")
	}
}
