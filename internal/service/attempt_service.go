package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
	"vocabquest/internal/repository"
	"vocabquest/internal/scoring"
)

var (
	// ErrUnauthorized means the submission carries no authenticated user
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicateAttempt means a single-attempt game was already completed
	// for this unit. Expected terminal state, not a failure.
	ErrDuplicateAttempt = errors.New("attempt already completed")
	// ErrUnitNotFound means the submission references an unknown unit
	ErrUnitNotFound = errors.New("unit not found")
	// ErrPersistence wraps storage failures during recording. The whole
	// submission rolled back; nothing was partially recorded.
	ErrPersistence = errors.New("persistence failure")
)

const (
	minElapsedSeconds = 1
	maxElapsedSeconds = 60 * 60
	streakMilestone   = 7
)

// Submission is one completed play-through as submitted by a client.
// Exactly one of Choices or Words must be populated.
type Submission struct {
	UserID         int64
	UnitID         int64
	GameType       models.GameType
	Choices        []scoring.ChoiceAnswer
	Words          []scoring.TextAnswer
	ElapsedSeconds int
}

// SubmissionResult is returned to the client after a recorded attempt
type SubmissionResult struct {
	AttemptID      int64
	Score          int
	CorrectCount   int
	TotalQuestions int
	XPEarned       int
	IsPerfect      bool
	TotalXP        int
	Level          int
	Streak         int
}

// Notifier delivers out-of-band notifications after an attempt is recorded.
// Implementations must be safe for concurrent use.
type Notifier interface {
	StreakMilestone(userID int64, streak int)
}

// AttemptService is the transactional boundary for one submission. Scoring,
// XP award, streak and progress updates, and the attempt record itself all
// happen within a single database transaction.
type AttemptService struct {
	db       *database.DB
	policies scoring.PolicySet
	notifier Notifier
	now      func() time.Time
}

// NewAttemptService creates an attempt service. notifier may be nil.
func NewAttemptService(db *database.DB, policies scoring.PolicySet, notifier Notifier) *AttemptService {
	return &AttemptService{
		db:       db,
		policies: policies,
		notifier: notifier,
		now:      time.Now,
	}
}

// RecordAttempt validates, scores, and durably records one submission.
// Either every row (attempt, missed answers, progress, profile, leaderboard)
// is written or none are.
func (s *AttemptService) RecordAttempt(sub Submission) (*SubmissionResult, error) {
	if sub.UserID <= 0 {
		return nil, ErrUnauthorized
	}
	if !sub.GameType.Valid() {
		return nil, fmt.Errorf("%w: unknown game type %q", scoring.ErrInvalidSubmission, sub.GameType)
	}
	if sub.ElapsedSeconds < minElapsedSeconds || sub.ElapsedSeconds > maxElapsedSeconds {
		return nil, fmt.Errorf("%w: elapsed time %ds out of range", scoring.ErrInvalidSubmission, sub.ElapsedSeconds)
	}
	if len(sub.Choices) > 0 && len(sub.Words) > 0 {
		return nil, fmt.Errorf("%w: submission mixes answer formats", scoring.ErrInvalidSubmission)
	}

	policy := s.policies.For(sub.GameType)

	// Cheap pre-check so an obviously repeated submission fails before
	// scoring. The authoritative guard is the conditional insert below.
	if policy.SingleAttempt {
		done, err := repository.NewAttemptRepository(s.db).HasTestCompletion(sub.UserID, sub.UnitID, sub.GameType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if done {
			return nil, ErrDuplicateAttempt
		}
	}

	result, err := s.score(sub)
	if err != nil {
		return nil, err
	}

	xpEarned := scoring.CalculateXP(result.ScorePercent, sub.ElapsedSeconds, result.TotalQuestions, policy.XPEnabled)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer tx.Rollback()

	attempts := repository.NewAttemptRepository(tx)

	if policy.SingleAttempt {
		if err := attempts.InsertTestCompletion(sub.UserID, sub.UnitID, sub.GameType); err != nil {
			if s.db.Dialect.IsUniqueViolation(err) {
				return nil, ErrDuplicateAttempt
			}
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	attemptID, err := attempts.InsertAttempt(&models.Attempt{
		UserID:           sub.UserID,
		UnitID:           sub.UnitID,
		GameType:         sub.GameType,
		Score:            result.ScorePercent,
		CorrectAnswers:   result.CorrectCount,
		TotalQuestions:   result.TotalQuestions,
		TimeSpentSeconds: sub.ElapsedSeconds,
		XPEarned:         xpEarned,
		Completed:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if len(result.Missed) > 0 {
		missed := make([]models.MissedAnswer, len(result.Missed))
		for i, item := range result.Missed {
			missed[i] = models.MissedAnswer{
				QuestionID:    item.QuestionID,
				Word:          item.Word,
				SubmittedText: item.Submitted,
			}
		}
		if err := attempts.InsertMissedAnswers(attemptID, missed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if err := s.upsertProgress(tx, sub, result, xpEarned, policy); err != nil {
		return nil, err
	}

	profile, err := s.recomputeProfile(tx, sub.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.upsertLeaderboard(tx, sub.UserID, policy, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.notifier != nil && profile.streakChanged && profile.streak%streakMilestone == 0 {
		go s.notifier.StreakMilestone(sub.UserID, profile.streak)
	}

	return &SubmissionResult{
		AttemptID:      attemptID,
		Score:          result.ScorePercent,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		XPEarned:       xpEarned,
		IsPerfect:      result.IsPerfect(),
		TotalXP:        profile.totalXP,
		Level:          profile.level,
		Streak:         profile.streak,
	}, nil
}

// score runs the appropriate scorer over the submission. The answer key for
// multiple-choice games is always fetched from the question store; clients
// only supply option indexes.
func (s *AttemptService) score(sub Submission) (*scoring.Result, error) {
	if len(sub.Words) > 0 {
		return scoring.ScoreText(sub.Words)
	}

	questionRepo := repository.NewQuestionRepository(s.db)

	// The expected count comes from the stored question set, never from the
	// submission itself: answering a subset must not score as a full set.
	expected, err := questionRepo.CountByUnitAndGame(sub.UnitID, sub.GameType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if expected == 0 {
		return nil, fmt.Errorf("%w: no question set for unit %d game %q",
			scoring.ErrInvalidSubmission, sub.UnitID, sub.GameType)
	}
	if len(sub.Choices) != expected {
		return nil, fmt.Errorf("%w: submitted %d answers for a %d question set",
			scoring.ErrInvalidSubmission, len(sub.Choices), expected)
	}

	ids := make([]int64, len(sub.Choices))
	for i, choice := range sub.Choices {
		ids[i] = choice.QuestionID
	}

	key, err := questionRepo.GetQuestionsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, question := range key {
		if question.UnitID != sub.UnitID || question.GameType != sub.GameType {
			return nil, fmt.Errorf("%w: question %d is not part of unit %d game %q",
				scoring.ErrInvalidSubmission, question.ID, sub.UnitID, sub.GameType)
		}
	}

	return scoring.ScoreChoices(sub.Choices, key)
}

func (s *AttemptService) upsertProgress(tx database.DBTX, sub Submission, result *scoring.Result, xpEarned int, policy scoring.GamePolicy) error {
	progressRepo := repository.NewProgressRepository(tx)

	progress, err := progressRepo.GetByKey(sub.UserID, sub.UnitID, sub.GameType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if progress == nil {
		_, err := progressRepo.Insert(&models.UserProgress{
			UserID:           sub.UserID,
			UnitID:           sub.UnitID,
			GameType:         sub.GameType,
			BestScore:        result.ScorePercent,
			Attempts:         1,
			TotalTimeSeconds: sub.ElapsedSeconds,
			TotalXP:          xpEarned,
			Completed:        result.IsPerfect(),
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	}

	progress.Attempts++
	progress.TotalTimeSeconds += sub.ElapsedSeconds
	if result.ScorePercent > progress.BestScore {
		progress.BestScore = result.ScorePercent
	}
	switch policy.Accumulation {
	case scoring.XPLatest:
		progress.TotalXP = xpEarned
	default:
		progress.TotalXP += xpEarned
	}
	if result.IsPerfect() {
		progress.Completed = true
	}

	if err := progressRepo.Update(progress); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

type profileState struct {
	totalXP       int
	level         int
	streak        int
	streakChanged bool
}

// recomputeProfile re-derives the user's total XP from progress rows, updates
// level, and applies the streak rule for today's study date
func (s *AttemptService) recomputeProfile(tx database.DBTX, userID int64) (*profileState, error) {
	progressRepo := repository.NewProgressRepository(tx)
	profileRepo := repository.NewProfileRepository(tx)

	totalXP, err := progressRepo.SumXPForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	profile, err := profileRepo.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if profile == nil {
		profile = &models.Profile{UserID: userID}
	}

	today := s.now().UTC()
	newStreak := scoring.NextStreak(profile.LastStudyDate, today, profile.Streak)

	state := &profileState{
		totalXP:       totalXP,
		level:         scoring.Level(totalXP),
		streak:        newStreak,
		streakChanged: newStreak != profile.Streak,
	}

	profile.TotalXP = totalXP
	profile.Level = state.level
	profile.Streak = newStreak
	profile.LastStudyDate = &today

	if err := profileRepo.Upsert(profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return state, nil
}

// upsertLeaderboard mirrors the profile into the attempt's test-type
// category, with XP scoped to the game types ranking under that category
func (s *AttemptService) upsertLeaderboard(tx database.DBTX, userID int64, policy scoring.GamePolicy, profile *profileState) error {
	var categoryGames []models.GameType
	for gameType, gamePolicy := range s.policies {
		if gamePolicy.TestType == policy.TestType {
			categoryGames = append(categoryGames, gameType)
		}
	}

	categoryXP, err := repository.NewProgressRepository(tx).SumXPForUserByTestTypes(userID, categoryGames)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	err = repository.NewLeaderboardRepository(tx).Upsert(&models.LeaderboardEntry{
		UserID:   userID,
		TestType: policy.TestType,
		TotalXP:  categoryXP,
		Level:    profile.level,
		Streak:   profile.streak,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// logAndIgnore is used for post-commit best-effort work
func logAndIgnore(what string, err error) {
	if err != nil {
		log.Printf("%s: %v", what, err)
	}
}
