package scoring

import "time"

// NextStreak decides the new study-streak value given the user's last study
// date and today's date. Comparison is by UTC calendar date, never by
// timestamp, so attempts near midnight cannot double-count or skip a day.
//
// Same day: unchanged. Yesterday: incremented by one. Any larger gap, or no
// prior study date: reset to 1.
func NextStreak(lastStudyDate *time.Time, today time.Time, currentStreak int) int {
	if lastStudyDate == nil {
		return 1
	}

	last := toUTCDate(*lastStudyDate)
	now := toUTCDate(today)

	switch {
	case last.Equal(now):
		if currentStreak < 1 {
			return 1
		}
		return currentStreak
	case last.Equal(now.AddDate(0, 0, -1)):
		return currentStreak + 1
	default:
		return 1
	}
}

// SameStudyDay reports whether two timestamps fall on the same UTC calendar
// day. Used to avoid re-updating streak state for repeat same-day attempts.
func SameStudyDay(a, b time.Time) bool {
	return toUTCDate(a).Equal(toUTCDate(b))
}

func toUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
