package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
	"vocabquest/internal/repository"
	"vocabquest/internal/scoring"
)

// testEnv wires a real SQLite database with migrations applied plus one
// seeded user, unit, and reading question set
type testEnv struct {
	db     *database.DB
	svc    *AttemptService
	userID int64
	unitID int64
	qIDs   []int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	user, err := repository.NewUserRepository(db).CreateUser("kid@example.com", "x", "Kid")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	unit, err := repository.NewUnitRepository(db).CreateUnit("Unit 1", 1)
	if err != nil {
		t.Fatalf("Failed to create unit: %v", err)
	}

	questions := []models.Question{
		{UnitID: unit.ID, GameType: models.GameReading, Word: "apple", Prompt: "Which word means apple?", Options: []string{"apple", "pear", "plum"}, CorrectAnswer: "apple"},
		{UnitID: unit.ID, GameType: models.GameReading, Word: "house", Prompt: "Which word means house?", Options: []string{"mouse", "house", "horse"}, CorrectAnswer: "house"},
		{UnitID: unit.ID, GameType: models.GameReading, Word: "water", Prompt: "Which word means water?", Options: []string{"water", "waiter", "winter"}, CorrectAnswer: "water"},
		{UnitID: unit.ID, GameType: models.GameReading, Word: "bread", Prompt: "Which word means bread?", Options: []string{"beard", "board", "bread"}, CorrectAnswer: "bread"},
	}
	questionRepo := repository.NewQuestionRepository(db)
	if err := questionRepo.InsertQuestions(questions); err != nil {
		t.Fatalf("Failed to insert questions: %v", err)
	}
	stored, err := questionRepo.GetQuestionsByUnitAndGame(unit.ID, models.GameReading)
	if err != nil {
		t.Fatalf("Failed to load questions: %v", err)
	}
	ids := make([]int64, len(stored))
	for i, q := range stored {
		ids[i] = q.ID
	}

	return &testEnv{
		db:     db,
		svc:    NewAttemptService(db, scoring.DefaultPolicies(), nil),
		userID: user.ID,
		unitID: unit.ID,
		qIDs:   ids,
	}
}

// readingAnswers builds a choice submission with the given number of correct
// answers, the rest deliberately wrong
func (e *testEnv) readingAnswers(t *testing.T, correct int) []scoring.ChoiceAnswer {
	t.Helper()
	questionRepo := repository.NewQuestionRepository(e.db)
	key, err := questionRepo.GetQuestionsByIDs(e.qIDs)
	if err != nil {
		t.Fatalf("Failed to load answer key: %v", err)
	}

	answers := make([]scoring.ChoiceAnswer, 0, len(e.qIDs))
	for i, id := range e.qIDs {
		q := key[id]
		rightIdx := -1
		for idx, opt := range q.Options {
			if opt == q.CorrectAnswer {
				rightIdx = idx
				break
			}
		}
		idx := rightIdx
		if i >= correct {
			idx = (rightIdx + 1) % len(q.Options)
		}
		answers = append(answers, scoring.ChoiceAnswer{QuestionID: id, SelectedIndex: idx})
	}
	return answers
}

func TestRecordAttemptReading(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.RecordAttempt(Submission{
		UserID:         env.userID,
		UnitID:         env.unitID,
		GameType:       models.GameReading,
		Choices:        env.readingAnswers(t, 3),
		ElapsedSeconds: 40,
	})
	if err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}

	if result.Score != 75 {
		t.Errorf("Score = %d, want 75", result.Score)
	}
	if result.CorrectCount != 3 || result.TotalQuestions != 4 {
		t.Errorf("counts = %d/%d, want 3/4", result.CorrectCount, result.TotalQuestions)
	}
	// 75% of questions right in 10s average per question: 38 base + 20 bonus
	wantXP := scoring.CalculateXP(75, 40, 4, true)
	if result.XPEarned != wantXP {
		t.Errorf("XPEarned = %d, want %d", result.XPEarned, wantXP)
	}
	if result.IsPerfect {
		t.Error("IsPerfect = true for a 3/4 score")
	}
	if result.Streak != 1 {
		t.Errorf("Streak = %d, want 1", result.Streak)
	}
	if result.TotalXP != result.XPEarned {
		t.Errorf("TotalXP = %d, want %d", result.TotalXP, result.XPEarned)
	}

	progress, err := repository.NewProgressRepository(env.db).GetByKey(env.userID, env.unitID, models.GameReading)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if progress == nil {
		t.Fatal("no progress row recorded")
	}
	if progress.BestScore != 75 || progress.Attempts != 1 {
		t.Errorf("progress = best %d attempts %d, want 75/1", progress.BestScore, progress.Attempts)
	}
	if progress.Completed {
		t.Error("progress marked completed without a perfect score")
	}

	entries, err := repository.NewLeaderboardRepository(env.db).ListByTestType("reading", 10)
	if err != nil {
		t.Fatalf("ListByTestType failed: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalXP != result.XPEarned {
		t.Errorf("leaderboard entries = %+v, want one entry with %d XP", entries, result.XPEarned)
	}
}

func TestRecordAttemptRejectsPartialSubmission(t *testing.T) {
	env := newTestEnv(t)

	// Answering only one question of the four-question set must not score
	// as a complete test
	full := env.readingAnswers(t, 4)
	_, err := env.svc.RecordAttempt(Submission{
		UserID:         env.userID,
		UnitID:         env.unitID,
		GameType:       models.GameReading,
		Choices:        full[:1],
		ElapsedSeconds: 10,
	})
	if !errors.Is(err, scoring.ErrInvalidSubmission) {
		t.Fatalf("partial submission error = %v, want ErrInvalidSubmission", err)
	}

	total, _, _, err := repository.NewAttemptRepository(env.db).GetAttemptTotals(env.userID)
	if err != nil {
		t.Fatalf("GetAttemptTotals failed: %v", err)
	}
	if total != 0 {
		t.Errorf("recorded attempts = %d, want 0 after rejected partial submission", total)
	}

	// The full set still goes through afterwards
	result, err := env.svc.RecordAttempt(Submission{
		UserID:         env.userID,
		UnitID:         env.unitID,
		GameType:       models.GameReading,
		Choices:        full,
		ElapsedSeconds: 30,
	})
	if err != nil {
		t.Fatalf("full submission failed: %v", err)
	}
	if result.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", result.TotalQuestions)
	}
}

func TestRecordAttemptDuplicateTest(t *testing.T) {
	env := newTestEnv(t)

	sub := Submission{
		UserID:         env.userID,
		UnitID:         env.unitID,
		GameType:       models.GameReading,
		Choices:        env.readingAnswers(t, 4),
		ElapsedSeconds: 30,
	}
	if _, err := env.svc.RecordAttempt(sub); err != nil {
		t.Fatalf("first attempt failed: %v", err)
	}

	_, err := env.svc.RecordAttempt(sub)
	if !errors.Is(err, ErrDuplicateAttempt) {
		t.Fatalf("second attempt error = %v, want ErrDuplicateAttempt", err)
	}

	attempts := repository.NewAttemptRepository(env.db)
	total, _, _, err := attempts.GetAttemptTotals(env.userID)
	if err != nil {
		t.Fatalf("GetAttemptTotals failed: %v", err)
	}
	if total != 1 {
		t.Errorf("recorded attempts = %d, want 1 after rejected duplicate", total)
	}
}

func TestRecordAttemptRepeatableGame(t *testing.T) {
	env := newTestEnv(t)

	words := []scoring.TextAnswer{
		{TargetWord: "apple", Typed: "apple"},
		{TargetWord: "house", Typed: "hause"},
		{TargetWord: "water", Typed: "water"},
		{TargetWord: "bread", Typed: "bread"},
	}
	first, err := env.svc.RecordAttempt(Submission{
		UserID: env.userID, UnitID: env.unitID, GameType: models.GameWriting,
		Words: words, ElapsedSeconds: 60,
	})
	if err != nil {
		t.Fatalf("first attempt failed: %v", err)
	}

	// Perfect retry: best score improves and XP accumulates
	for i := range words {
		words[i].Typed = words[i].TargetWord
	}
	second, err := env.svc.RecordAttempt(Submission{
		UserID: env.userID, UnitID: env.unitID, GameType: models.GameWriting,
		Words: words, ElapsedSeconds: 60,
	})
	if err != nil {
		t.Fatalf("second attempt failed: %v", err)
	}

	if !second.IsPerfect {
		t.Error("second attempt should be perfect")
	}
	if second.TotalXP != first.XPEarned+second.XPEarned {
		t.Errorf("TotalXP = %d, want %d", second.TotalXP, first.XPEarned+second.XPEarned)
	}

	progress, err := repository.NewProgressRepository(env.db).GetByKey(env.userID, env.unitID, models.GameWriting)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if progress.BestScore != 100 || progress.Attempts != 2 || !progress.Completed {
		t.Errorf("progress = %+v, want best 100, 2 attempts, completed", progress)
	}

	missed, err := repository.NewAttemptRepository(env.db).GetMissedWords(env.userID, env.unitID)
	if err != nil {
		t.Fatalf("GetMissedWords failed: %v", err)
	}
	if len(missed) != 1 || missed[0] != "house" {
		t.Errorf("missed words = %v, want [house]", missed)
	}
}

func TestRecordAttemptIntuitionEarnsNoXP(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.RecordAttempt(Submission{
		UserID: env.userID, UnitID: env.unitID, GameType: models.GameIntuition,
		Words:          []scoring.TextAnswer{{TargetWord: "apple", Typed: "apple"}},
		ElapsedSeconds: 5,
	})
	if err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if result.XPEarned != 0 || result.TotalXP != 0 {
		t.Errorf("intuition awarded XP: earned=%d total=%d", result.XPEarned, result.TotalXP)
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
}

func TestRecordAttemptStreakAcrossDays(t *testing.T) {
	env := newTestEnv(t)

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	env.svc.now = func() time.Time { return day }

	submit := func() *SubmissionResult {
		t.Helper()
		result, err := env.svc.RecordAttempt(Submission{
			UserID: env.userID, UnitID: env.unitID, GameType: models.GameWriting,
			Words:          []scoring.TextAnswer{{TargetWord: "apple", Typed: "apple"}},
			ElapsedSeconds: 5,
		})
		if err != nil {
			t.Fatalf("RecordAttempt failed: %v", err)
		}
		return result
	}

	if got := submit().Streak; got != 1 {
		t.Fatalf("day 1 streak = %d, want 1", got)
	}
	// Second session the same day holds the streak
	day = day.Add(4 * time.Hour)
	if got := submit().Streak; got != 1 {
		t.Fatalf("same-day streak = %d, want 1", got)
	}
	// Next calendar day extends it
	day = day.Add(24 * time.Hour)
	if got := submit().Streak; got != 2 {
		t.Fatalf("day 2 streak = %d, want 2", got)
	}
	// A missed day resets to 1
	day = day.Add(48 * time.Hour)
	if got := submit().Streak; got != 1 {
		t.Fatalf("post-gap streak = %d, want 1", got)
	}
}

func TestRecordAttemptValidation(t *testing.T) {
	env := newTestEnv(t)

	words := []scoring.TextAnswer{{TargetWord: "apple", Typed: "apple"}}

	tests := []struct {
		name    string
		sub     Submission
		wantErr error
	}{
		{
			name:    "no user",
			sub:     Submission{UnitID: env.unitID, GameType: models.GameWriting, Words: words, ElapsedSeconds: 5},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "unknown game type",
			sub:     Submission{UserID: env.userID, UnitID: env.unitID, GameType: "karaoke", Words: words, ElapsedSeconds: 5},
			wantErr: scoring.ErrInvalidSubmission,
		},
		{
			name:    "zero elapsed",
			sub:     Submission{UserID: env.userID, UnitID: env.unitID, GameType: models.GameWriting, Words: words, ElapsedSeconds: 0},
			wantErr: scoring.ErrInvalidSubmission,
		},
		{
			name:    "elapsed beyond one hour",
			sub:     Submission{UserID: env.userID, UnitID: env.unitID, GameType: models.GameWriting, Words: words, ElapsedSeconds: 3601},
			wantErr: scoring.ErrInvalidSubmission,
		},
		{
			name: "question from another unit",
			sub: Submission{UserID: env.userID, UnitID: env.unitID + 99, GameType: models.GameMatching,
				Choices: []scoring.ChoiceAnswer{{QuestionID: env.qIDs[0], SelectedIndex: 0}}, ElapsedSeconds: 5},
			wantErr: scoring.ErrInvalidSubmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.RecordAttempt(tt.sub)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordAttempt error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	total, _, _, err := repository.NewAttemptRepository(env.db).GetAttemptTotals(env.userID)
	if err != nil {
		t.Fatalf("GetAttemptTotals failed: %v", err)
	}
	if total != 0 {
		t.Errorf("recorded attempts = %d, want 0 after rejected submissions", total)
	}
}
