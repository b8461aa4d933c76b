package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
)

// QuestionRepository handles question database operations. Question rows hold
// the server-side answer key; client-supplied correct answers are never stored.
type QuestionRepository struct {
	db database.DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// InsertQuestions stores a batch of generated questions for a unit
func (r *QuestionRepository) InsertQuestions(questions []models.Question) error {
	query := `
		INSERT INTO questions (unit_id, game_type, word, prompt, options, correct_answer)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, question := range questions {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		_, err = r.db.Exec(query,
			question.UnitID,
			question.GameType,
			question.Word,
			question.Prompt,
			string(options),
			question.CorrectAnswer,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetQuestionsByUnitAndGame retrieves all questions for a unit and game type
func (r *QuestionRepository) GetQuestionsByUnitAndGame(unitID int64, gameType models.GameType) ([]models.Question, error) {
	query := `
		SELECT id, unit_id, game_type, word, prompt, options, correct_answer, created_at
		FROM questions
		WHERE unit_id = ? AND game_type = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, unitID, gameType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// GetQuestionsByIDs retrieves the answer key for a set of question IDs,
// keyed by ID. IDs that do not exist are simply absent from the result.
func (r *QuestionRepository) GetQuestionsByIDs(ids []int64) (map[int64]models.Question, error) {
	if len(ids) == 0 {
		return map[int64]models.Question{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT id, unit_id, game_type, word, prompt, options, correct_answer, created_at
		FROM questions
		WHERE id IN (%s)
	`, placeholders)

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	key := make(map[int64]models.Question, len(questions))
	for _, question := range questions {
		key[question.ID] = question
	}
	return key, nil
}

// CountByUnitAndGame returns how many questions exist for a unit and game type
func (r *QuestionRepository) CountByUnitAndGame(unitID int64, gameType models.GameType) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM questions WHERE unit_id = ? AND game_type = ?"
	err := r.db.QueryRow(query, unitID, gameType).Scan(&count)
	return count, err
}

type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanQuestions(rows rowScanner) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var question models.Question
		var options string
		err := rows.Scan(
			&question.ID,
			&question.UnitID,
			&question.GameType,
			&question.Word,
			&question.Prompt,
			&options,
			&question.CorrectAnswer,
			&question.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(options), &question.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", question.ID, err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}
