package models

import "time"

// UserProgress tracks cumulative results for one (user, unit, game type) key.
// Created on the first attempt for the key and updated on every one after.
type UserProgress struct {
	ID               int64
	UserID           int64
	UnitID           int64
	GameType         GameType
	BestScore        int
	Attempts         int
	TotalTimeSeconds int
	TotalXP          int
	Completed        bool
	UpdatedAt        time.Time
}

// Profile holds per-user derived state, recomputed after every attempt
type Profile struct {
	UserID        int64
	TotalXP       int
	Level         int
	LastStudyDate *time.Time // calendar date, UTC
	Streak        int
	UpdatedAt     time.Time
}

// StrugglingWord is a word a user keeps getting wrong
type StrugglingWord struct {
	Word       string
	UnitID     int64
	MissCount  int
	LastMissed time.Time
}

// UserStats is the per-user summary shown on the dashboard
type UserStats struct {
	TotalAttempts  int
	TotalCorrect   int
	TotalQuestions int
	Accuracy       float64
	TotalXP        int
	Level          int
	Streak         int
}
