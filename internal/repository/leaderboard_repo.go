package repository

import (
	"database/sql"
	"time"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
)

// LeaderboardRepository handles per-(user, test type) leaderboard mirrors
type LeaderboardRepository struct {
	db database.DBTX
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(db database.DBTX) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Upsert writes a user's leaderboard entry for a test-type category
func (r *LeaderboardRepository) Upsert(entry *models.LeaderboardEntry) error {
	existing, err := r.get(entry.UserID, entry.TestType)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			INSERT INTO leaderboard_entries (user_id, test_type, total_xp, level, streak, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		_, err = r.db.Exec(query,
			entry.UserID,
			entry.TestType,
			entry.TotalXP,
			entry.Level,
			entry.Streak,
			time.Now().UTC(),
		)
		return err
	}

	query := `
		UPDATE leaderboard_entries
		SET total_xp = ?, level = ?, streak = ?, updated_at = ?
		WHERE user_id = ? AND test_type = ?
	`
	_, err = r.db.Exec(query,
		entry.TotalXP,
		entry.Level,
		entry.Streak,
		time.Now().UTC(),
		entry.UserID,
		entry.TestType,
	)
	return err
}

func (r *LeaderboardRepository) get(userID int64, testType string) (*models.LeaderboardEntry, error) {
	query := `
		SELECT id, user_id, test_type, total_xp, level, streak, updated_at
		FROM leaderboard_entries
		WHERE user_id = ? AND test_type = ?
	`

	entry := &models.LeaderboardEntry{}
	err := r.db.QueryRow(query, userID, testType).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.TestType,
		&entry.TotalXP,
		&entry.Level,
		&entry.Streak,
		&entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListByTestType retrieves the top entries for a test-type category,
// highest XP first, with user names joined for display
func (r *LeaderboardRepository) ListByTestType(testType string, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT l.id, l.user_id, u.name, l.test_type, l.total_xp, l.level, l.streak, l.updated_at
		FROM leaderboard_entries l
		JOIN users u ON u.id = l.user_id
		WHERE l.test_type = ?
		ORDER BY l.total_xp DESC, l.updated_at ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, testType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.UserName,
			&entry.TestType,
			&entry.TotalXP,
			&entry.Level,
			&entry.Streak,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
