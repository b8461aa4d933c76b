package repository

import (
	"database/sql"
	"time"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
)

// ProgressRepository handles per-(user, unit, game) progress rows
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetByKey retrieves the progress row for a (user, unit, game) key,
// returning nil when no attempt has been recorded yet
func (r *ProgressRepository) GetByKey(userID, unitID int64, gameType models.GameType) (*models.UserProgress, error) {
	query := `
		SELECT id, user_id, unit_id, game_type, best_score, attempts,
		       total_time_seconds, total_xp, completed, updated_at
		FROM user_progress
		WHERE user_id = ? AND unit_id = ? AND game_type = ?
	`

	progress := &models.UserProgress{}
	err := r.db.QueryRow(query, userID, unitID, gameType).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.UnitID,
		&progress.GameType,
		&progress.BestScore,
		&progress.Attempts,
		&progress.TotalTimeSeconds,
		&progress.TotalXP,
		&progress.Completed,
		&progress.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return progress, nil
}

// Insert creates the first progress row for a key
func (r *ProgressRepository) Insert(progress *models.UserProgress) (int64, error) {
	query := `
		INSERT INTO user_progress (user_id, unit_id, game_type, best_score, attempts,
		                           total_time_seconds, total_xp, completed, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return r.db.ExecReturningID(query,
		progress.UserID,
		progress.UnitID,
		progress.GameType,
		progress.BestScore,
		progress.Attempts,
		progress.TotalTimeSeconds,
		progress.TotalXP,
		progress.Completed,
		time.Now().UTC(),
	)
}

// Update rewrites the accumulated fields of an existing progress row
func (r *ProgressRepository) Update(progress *models.UserProgress) error {
	query := `
		UPDATE user_progress
		SET best_score = ?, attempts = ?, total_time_seconds = ?,
		    total_xp = ?, completed = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		progress.BestScore,
		progress.Attempts,
		progress.TotalTimeSeconds,
		progress.TotalXP,
		progress.Completed,
		time.Now().UTC(),
		progress.ID,
	)
	return err
}

// SumXPForUser totals XP across all of a user's progress rows. Profile XP is
// always re-derived from this sum, never incremented in place.
func (r *ProgressRepository) SumXPForUser(userID int64) (int, error) {
	var total int
	query := "SELECT COALESCE(SUM(total_xp), 0) FROM user_progress WHERE user_id = ?"
	err := r.db.QueryRow(query, userID).Scan(&total)
	return total, err
}

// SumXPForUserByTestTypes totals XP across the progress rows whose game type
// falls in the given set. Used to scope leaderboard entries by category.
func (r *ProgressRepository) SumXPForUserByTestTypes(userID int64, gameTypes []models.GameType) (int, error) {
	if len(gameTypes) == 0 {
		return 0, nil
	}

	query := "SELECT COALESCE(SUM(total_xp), 0) FROM user_progress WHERE user_id = ? AND game_type IN ("
	args := []interface{}{userID}
	for i, gameType := range gameTypes {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, gameType)
	}
	query += ")"

	var total int
	err := r.db.QueryRow(query, args...).Scan(&total)
	return total, err
}

// ListForUser retrieves all progress rows for a user
func (r *ProgressRepository) ListForUser(userID int64) ([]models.UserProgress, error) {
	query := `
		SELECT id, user_id, unit_id, game_type, best_score, attempts,
		       total_time_seconds, total_xp, completed, updated_at
		FROM user_progress
		WHERE user_id = ?
		ORDER BY unit_id ASC, game_type ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progressRows []models.UserProgress
	for rows.Next() {
		var progress models.UserProgress
		err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.UnitID,
			&progress.GameType,
			&progress.BestScore,
			&progress.Attempts,
			&progress.TotalTimeSeconds,
			&progress.TotalXP,
			&progress.Completed,
			&progress.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		progressRows = append(progressRows, progress)
	}

	return progressRows, rows.Err()
}
