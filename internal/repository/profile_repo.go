package repository

import (
	"database/sql"
	"time"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
)

// ProfileRepository handles per-user derived profile rows
type ProfileRepository struct {
	db database.DBTX
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves a user's profile, returning nil when none exists yet
func (r *ProfileRepository) Get(userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, total_xp, level, last_study_date, streak, updated_at
		FROM profiles
		WHERE user_id = ?
	`

	profile := &models.Profile{}
	var lastStudy sql.NullTime
	err := r.db.QueryRow(query, userID).Scan(
		&profile.UserID,
		&profile.TotalXP,
		&profile.Level,
		&lastStudy,
		&profile.Streak,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastStudy.Valid {
		profile.LastStudyDate = &lastStudy.Time
	}

	return profile, nil
}

// Upsert writes a user's profile, creating the row on first attempt
func (r *ProfileRepository) Upsert(profile *models.Profile) error {
	existing, err := r.Get(profile.UserID)
	if err != nil {
		return err
	}

	var lastStudy interface{}
	if profile.LastStudyDate != nil {
		lastStudy = profile.LastStudyDate.UTC().Format("2006-01-02")
	}

	if existing == nil {
		query := `
			INSERT INTO profiles (user_id, total_xp, level, last_study_date, streak, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		_, err = r.db.Exec(query,
			profile.UserID,
			profile.TotalXP,
			profile.Level,
			lastStudy,
			profile.Streak,
			time.Now().UTC(),
		)
		return err
	}

	query := `
		UPDATE profiles
		SET total_xp = ?, level = ?, last_study_date = ?, streak = ?, updated_at = ?
		WHERE user_id = ?
	`
	_, err = r.db.Exec(query,
		profile.TotalXP,
		profile.Level,
		lastStudy,
		profile.Streak,
		time.Now().UTC(),
		profile.UserID,
	)
	return err
}
