package service

import (
	"context"
	"fmt"

	"vocabquest/internal/database"
	"vocabquest/internal/generator"
	"vocabquest/internal/models"
	"vocabquest/internal/repository"
	"vocabquest/internal/scoring"
)

// ContentService serves units, question sets, and adaptive practice sets.
// Question sets are generated on first request through the generator gateway
// and cached in the question store; later requests hit storage only.
type ContentService struct {
	db              *database.DB
	gen             *generator.Client
	practiceSetSize int
}

func NewContentService(db *database.DB, gen *generator.Client, practiceSetSize int) *ContentService {
	return &ContentService{
		db:              db,
		gen:             gen,
		practiceSetSize: practiceSetSize,
	}
}

// ListUnits returns all units in course order
func (s *ContentService) ListUnits() ([]models.Unit, error) {
	units, err := repository.NewUnitRepository(s.db).ListUnits()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return units, nil
}

// GetUnit returns one unit or ErrUnitNotFound
func (s *ContentService) GetUnit(id int64) (*models.Unit, error) {
	unit, err := repository.NewUnitRepository(s.db).GetUnitByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}
	return unit, nil
}

// GetQuestions returns the question set for one unit and game type,
// generating and storing it on first request. Previously stored questions
// are always served without touching the generator; when nothing is stored
// yet, generator failures surface to the caller rather than producing an
// empty question set.
func (s *ContentService) GetQuestions(ctx context.Context, unitID int64, gameType models.GameType) ([]models.Question, error) {
	if !gameType.Valid() {
		return nil, fmt.Errorf("%w: unknown game type %q", scoring.ErrInvalidSubmission, gameType)
	}
	if _, err := s.GetUnit(unitID); err != nil {
		return nil, err
	}

	questionRepo := repository.NewQuestionRepository(s.db)

	stored, err := questionRepo.GetQuestionsByUnitAndGame(unitID, gameType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	words, err := repository.NewUnitRepository(s.db).GetUnitWords(unitID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("unit %d has no words", unitID)
	}

	generated, err := s.gen.GenerateQuestions(ctx, unitID, gameType, words)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions for unit %d: %w", unitID, err)
	}

	if err := questionRepo.InsertQuestions(generated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return questionRepo.GetQuestionsByUnitAndGame(unitID, gameType)
}

// GetPracticeSet builds an adaptive word list for one unit, biased toward
// words the user previously missed. count <= 0 uses the configured default.
func (s *ContentService) GetPracticeSet(userID, unitID int64, count int) ([]string, error) {
	if count <= 0 {
		count = s.practiceSetSize
	}
	if _, err := s.GetUnit(unitID); err != nil {
		return nil, err
	}

	words, err := repository.NewUnitRepository(s.db).GetUnitWords(unitID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	missed, err := repository.NewAttemptRepository(s.db).GetMissedWords(userID, unitID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return scoring.SelectWords(words, missed, count), nil
}
