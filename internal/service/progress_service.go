package service

import (
	"fmt"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
	"vocabquest/internal/repository"
)

const (
	strugglingWordMinMisses = 3
	leaderboardLimit        = 50
	recentAttemptsLimit     = 20
)

// ProgressService exposes read models over recorded attempts: per-unit
// progress, profile stats, struggling words, and leaderboards
type ProgressService struct {
	db *database.DB
}

func NewProgressService(db *database.DB) *ProgressService {
	return &ProgressService{db: db}
}

// GetProgress returns every per-unit, per-game progress row for the user
func (s *ProgressService) GetProgress(userID int64) ([]models.UserProgress, error) {
	rows, err := repository.NewProgressRepository(s.db).ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rows, nil
}

// GetStats assembles the dashboard summary for one user
func (s *ProgressService) GetStats(userID int64) (*models.UserStats, error) {
	attempts, correct, questions, err := repository.NewAttemptRepository(s.db).GetAttemptTotals(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	profile, err := repository.NewProfileRepository(s.db).Get(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	stats := &models.UserStats{
		TotalAttempts:  attempts,
		TotalCorrect:   correct,
		TotalQuestions: questions,
	}
	if questions > 0 {
		stats.Accuracy = float64(correct) / float64(questions)
	}
	if profile != nil {
		stats.TotalXP = profile.TotalXP
		stats.Level = profile.Level
		stats.Streak = profile.Streak
	}
	return stats, nil
}

// GetRecentAttempts returns the user's latest recorded attempts, newest first
func (s *ProgressService) GetRecentAttempts(userID int64) ([]models.Attempt, error) {
	attempts, err := repository.NewAttemptRepository(s.db).GetRecentAttempts(userID, recentAttemptsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return attempts, nil
}

// GetStrugglingWords lists words the user has missed repeatedly
func (s *ProgressService) GetStrugglingWords(userID int64) ([]models.StrugglingWord, error) {
	words, err := repository.NewAttemptRepository(s.db).GetStrugglingWords(userID, strugglingWordMinMisses)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return words, nil
}

// GetLeaderboard returns the ranked entries for one test-type category
func (s *ProgressService) GetLeaderboard(testType string) ([]models.LeaderboardEntry, error) {
	entries, err := repository.NewLeaderboardRepository(s.db).ListByTestType(testType, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return entries, nil
}
