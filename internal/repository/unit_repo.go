package repository

import (
	"database/sql"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
)

// UnitRepository handles vocabulary unit database operations
type UnitRepository struct {
	db database.DBTX
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db database.DBTX) *UnitRepository {
	return &UnitRepository{db: db}
}

// CreateUnit creates a new vocabulary unit
func (r *UnitRepository) CreateUnit(title string, position int) (*models.Unit, error) {
	query := `
		INSERT INTO units (title, position)
		VALUES (?, ?)
	`

	id, err := r.db.ExecReturningID(query, title, position)
	if err != nil {
		return nil, err
	}

	return r.GetUnitByID(id)
}

// GetUnitByID retrieves a unit by ID, returning nil when not found
func (r *UnitRepository) GetUnitByID(id int64) (*models.Unit, error) {
	query := `
		SELECT id, title, position, created_at
		FROM units
		WHERE id = ?
	`

	unit := &models.Unit{}
	err := r.db.QueryRow(query, id).Scan(&unit.ID, &unit.Title, &unit.Position, &unit.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return unit, nil
}

// GetUnitByTitle retrieves a unit by title, returning nil when not found.
// Used by the importer to merge repeat imports into existing units.
func (r *UnitRepository) GetUnitByTitle(title string) (*models.Unit, error) {
	query := `
		SELECT id, title, position, created_at
		FROM units
		WHERE title = ?
	`

	unit := &models.Unit{}
	err := r.db.QueryRow(query, title).Scan(&unit.ID, &unit.Title, &unit.Position, &unit.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return unit, nil
}

// ListUnits retrieves all units ordered by position
func (r *UnitRepository) ListUnits() ([]models.Unit, error) {
	query := `
		SELECT id, title, position, created_at
		FROM units
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		var unit models.Unit
		if err := rows.Scan(&unit.ID, &unit.Title, &unit.Position, &unit.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

// AddWord adds a word to a unit, ignoring exact duplicates
func (r *UnitRepository) AddWord(unitID int64, word string, position int) error {
	existing, err := r.hasWord(unitID, word)
	if err != nil {
		return err
	}
	if existing {
		return nil
	}

	query := `
		INSERT INTO unit_words (unit_id, word, position)
		VALUES (?, ?, ?)
	`
	_, err = r.db.Exec(query, unitID, word, position)
	return err
}

func (r *UnitRepository) hasWord(unitID int64, word string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM unit_words WHERE unit_id = ? AND word = ?"
	if err := r.db.QueryRow(query, unitID, word).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUnitWords retrieves a unit's vocabulary in authored order
func (r *UnitRepository) GetUnitWords(unitID int64) ([]string, error) {
	query := `
		SELECT word
		FROM unit_words
		WHERE unit_id = ?
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.Query(query, unitID)
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
