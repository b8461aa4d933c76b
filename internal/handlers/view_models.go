package handlers

import (
	"time"

	"vocabquest/internal/models"
)

// Request payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type choiceAnswerRequest struct {
	QuestionID    int64 `json:"questionId"`
	SelectedIndex int   `json:"selectedIndex"`
}

type wordAnswerRequest struct {
	Word  string `json:"word"`
	Typed string `json:"typed"`
}

type submitAttemptRequest struct {
	UnitID         int64                 `json:"unitId"`
	GameType       string                `json:"gameType"`
	Answers        []choiceAnswerRequest `json:"answers,omitempty"`
	Words          []wordAnswerRequest   `json:"words,omitempty"`
	ElapsedSeconds int                   `json:"elapsedSeconds"`
}

// Response payloads

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type submitAttemptResponse struct {
	Success        bool `json:"success"`
	Score          int  `json:"score"`
	CorrectCount   int  `json:"correctCount"`
	TotalQuestions int  `json:"totalQuestions"`
	XPEarned       int  `json:"xpEarned"`
	IsPerfect      bool `json:"isPerfect"`
	TotalXP        int  `json:"totalXp"`
	Level          int  `json:"level"`
	Streak         int  `json:"streak"`
}

type unitResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// questionResponse deliberately omits the correct answer; scoring happens
// server-side only
type questionResponse struct {
	ID      int64    `json:"id"`
	Word    string   `json:"word"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type practiceSetResponse struct {
	Success bool     `json:"success"`
	UnitID  int64    `json:"unitId"`
	Words   []string `json:"words"`
}

type progressResponse struct {
	UnitID           int64  `json:"unitId"`
	GameType         string `json:"gameType"`
	BestScore        int    `json:"bestScore"`
	Attempts         int    `json:"attempts"`
	TotalTimeSeconds int    `json:"totalTimeSeconds"`
	TotalXP          int    `json:"totalXp"`
	Completed        bool   `json:"completed"`
}

type statsResponse struct {
	Success        bool    `json:"success"`
	TotalAttempts  int     `json:"totalAttempts"`
	TotalCorrect   int     `json:"totalCorrect"`
	TotalQuestions int     `json:"totalQuestions"`
	Accuracy       float64 `json:"accuracy"`
	TotalXP        int     `json:"totalXp"`
	Level          int     `json:"level"`
	Streak         int     `json:"streak"`
}

type attemptResponse struct {
	ID               int64     `json:"id"`
	UnitID           int64     `json:"unitId"`
	GameType         string    `json:"gameType"`
	Score            int       `json:"score"`
	CorrectAnswers   int       `json:"correctAnswers"`
	TotalQuestions   int       `json:"totalQuestions"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	XPEarned         int       `json:"xpEarned"`
	CreatedAt        time.Time `json:"createdAt"`
}

type strugglingWordResponse struct {
	Word       string    `json:"word"`
	UnitID     int64     `json:"unitId"`
	MissCount  int       `json:"missCount"`
	LastMissed time.Time `json:"lastMissed"`
}

type leaderboardEntryResponse struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	TotalXP  int    `json:"totalXp"`
	Level    int    `json:"level"`
	Streak   int    `json:"streak"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func toUnitResponses(units []models.Unit) []unitResponse {
	out := make([]unitResponse, len(units))
	for i, unit := range units {
		out[i] = unitResponse{ID: unit.ID, Title: unit.Title, Position: unit.Position}
	}
	return out
}

func toQuestionResponses(questions []models.Question) []questionResponse {
	out := make([]questionResponse, len(questions))
	for i, q := range questions {
		out[i] = questionResponse{ID: q.ID, Word: q.Word, Prompt: q.Prompt, Options: q.Options}
	}
	return out
}
