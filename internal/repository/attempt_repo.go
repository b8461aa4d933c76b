package repository

import (
	"time"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
)

// AttemptRepository handles the append-only attempt log, missed answers, and
// the single-attempt completion guard
type AttemptRepository struct {
	db database.DBTX
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db database.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// InsertAttempt records one completed attempt. Attempt rows are never updated.
func (r *AttemptRepository) InsertAttempt(attempt *models.Attempt) (int64, error) {
	query := `
		INSERT INTO attempts (user_id, unit_id, game_type, score, correct_answers,
		                      total_questions, time_spent_seconds, xp_earned, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return r.db.ExecReturningID(query,
		attempt.UserID,
		attempt.UnitID,
		attempt.GameType,
		attempt.Score,
		attempt.CorrectAnswers,
		attempt.TotalQuestions,
		attempt.TimeSpentSeconds,
		attempt.XPEarned,
		attempt.Completed,
	)
}

// InsertMissedAnswers records the incorrect answers for an attempt
func (r *AttemptRepository) InsertMissedAnswers(attemptID int64, missed []models.MissedAnswer) error {
	query := `
		INSERT INTO missed_answers (attempt_id, question_id, word, submitted_text)
		VALUES (?, ?, ?, ?)
	`

	for _, item := range missed {
		if _, err := r.db.Exec(query, attemptID, item.QuestionID, item.Word, item.SubmittedText); err != nil {
			return err
		}
	}
	return nil
}

// InsertTestCompletion claims the single-attempt slot for (user, unit, game).
// The table's primary key serializes concurrent submissions: the second
// insert fails with a unique violation, which the caller maps to a
// duplicate-attempt error.
func (r *AttemptRepository) InsertTestCompletion(userID, unitID int64, gameType models.GameType) error {
	query := `
		INSERT INTO test_completions (user_id, unit_id, game_type)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, userID, unitID, gameType)
	return err
}

// HasTestCompletion reports whether the user already completed a
// single-attempt game on this unit
func (r *AttemptRepository) HasTestCompletion(userID, unitID int64, gameType models.GameType) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM test_completions WHERE user_id = ? AND unit_id = ? AND game_type = ?"
	if err := r.db.QueryRow(query, userID, unitID, gameType).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMissedWords returns the distinct words a user answered incorrectly on a
// unit across all prior attempts. Feeds the adaptive word selector.
func (r *AttemptRepository) GetMissedWords(userID, unitID int64) ([]string, error) {
	query := `
		SELECT DISTINCT m.word
		FROM missed_answers m
		JOIN attempts a ON a.id = m.attempt_id
		WHERE a.user_id = ? AND a.unit_id = ? AND m.word != ''
	`

	rows, err := r.db.Query(query, userID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// GetStrugglingWords returns words the user has missed at least minMisses
// times, most-missed first
func (r *AttemptRepository) GetStrugglingWords(userID int64, minMisses int) ([]models.StrugglingWord, error) {
	query := `
		SELECT m.word, a.unit_id, COUNT(*) AS miss_count, MAX(a.created_at) AS last_missed
		FROM missed_answers m
		JOIN attempts a ON a.id = m.attempt_id
		WHERE a.user_id = ? AND m.word != ''
		GROUP BY m.word, a.unit_id
		HAVING COUNT(*) >= ?
		ORDER BY miss_count DESC, last_missed DESC
	`

	rows, err := r.db.Query(query, userID, minMisses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.StrugglingWord
	for rows.Next() {
		var word models.StrugglingWord
		var lastMissed time.Time
		if err := rows.Scan(&word.Word, &word.UnitID, &word.MissCount, &lastMissed); err != nil {
			return nil, err
		}
		word.LastMissed = lastMissed
		words = append(words, word)
	}

	return words, rows.Err()
}

// GetAttemptTotals aggregates a user's attempt counts for the stats summary
func (r *AttemptRepository) GetAttemptTotals(userID int64) (attempts, correct, questions int, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(correct_answers), 0), COALESCE(SUM(total_questions), 0)
		FROM attempts
		WHERE user_id = ?
	`
	err = r.db.QueryRow(query, userID).Scan(&attempts, &correct, &questions)
	return attempts, correct, questions, err
}

// GetRecentAttempts retrieves a user's most recent attempts
func (r *AttemptRepository) GetRecentAttempts(userID int64, limit int) ([]models.Attempt, error) {
	query := `
		SELECT id, user_id, unit_id, game_type, score, correct_answers,
		       total_questions, time_spent_seconds, xp_earned, completed, created_at
		FROM attempts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var attempt models.Attempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.UnitID,
			&attempt.GameType,
			&attempt.Score,
			&attempt.CorrectAnswers,
			&attempt.TotalQuestions,
			&attempt.TimeSpentSeconds,
			&attempt.XPEarned,
			&attempt.Completed,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}
