package models

import "time"

// LeaderboardEntry mirrors a user's profile per test-type category, used only
// for ranking display. Same mutation rules as Profile, scoped by category.
type LeaderboardEntry struct {
	ID        int64
	UserID    int64
	UserName  string // populated on reads, joined from users
	TestType  string
	TotalXP   int
	Level     int
	Streak    int
	UpdatedAt time.Time
}
