package models

import "time"

// GameType enumerates the mini-games a unit can be played as
type GameType string

const (
	GameReading     GameType = "reading"
	GameListening   GameType = "listening"
	GameWriting     GameType = "writing"
	GameSpeaking    GameType = "speaking"
	GameMatching    GameType = "matching"
	GameFlashcard   GameType = "flashcard"
	GameContextQuiz GameType = "context_quiz"
	GameIntuition   GameType = "intuition"
)

// AllGameTypes lists every known game type
var AllGameTypes = []GameType{
	GameReading,
	GameListening,
	GameWriting,
	GameSpeaking,
	GameMatching,
	GameFlashcard,
	GameContextQuiz,
	GameIntuition,
}

// Valid reports whether g is a known game type
func (g GameType) Valid() bool {
	for _, known := range AllGameTypes {
		if g == known {
			return true
		}
	}
	return false
}

// Attempt represents one completed play-through of one game type on one unit.
// Attempts are append-only: a row is inserted exactly once per submission and
// never mutated afterwards.
type Attempt struct {
	ID               int64
	UserID           int64
	UnitID           int64
	GameType         GameType
	Score            int // 0-100
	CorrectAnswers   int
	TotalQuestions   int
	TimeSpentSeconds int
	XPEarned         int
	Completed        bool
	CreatedAt        time.Time
}

// MissedAnswer associates an attempt with a question (or raw word for
// dictation-style games) the user answered incorrectly
type MissedAnswer struct {
	ID            int64
	AttemptID     int64
	QuestionID    *int64 // nil for free-text games that test raw words
	Word          string
	SubmittedText string
}
