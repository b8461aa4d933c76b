package models

import "time"

// Question represents one assessable item belonging to a unit. The correct
// answer text is server-held and never sent to clients alongside the options.
type Question struct {
	ID            int64
	UnitID        int64
	GameType      GameType
	Word          string
	Prompt        string
	Options       []string
	CorrectAnswer string
	CreatedAt     time.Time
}
