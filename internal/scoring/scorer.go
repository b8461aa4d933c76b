package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"vocabquest/internal/models"
)

// ErrInvalidSubmission is returned for malformed submissions: zero questions,
// answer/question count mismatch, or an answer referencing an unknown question.
var ErrInvalidSubmission = errors.New("invalid submission")

// ChoiceAnswer is one multiple-choice answer as submitted by the client.
// Only the selected index is trusted; the correct answer always comes from
// the server-held question.
type ChoiceAnswer struct {
	QuestionID    int64
	SelectedIndex int
}

// TextAnswer is one free-text answer for dictation-style games
type TextAnswer struct {
	TargetWord string
	Typed      string
}

// MissedItem records a single incorrect answer
type MissedItem struct {
	QuestionID *int64
	Word       string
	Submitted  string
}

// Result is the outcome of scoring one submission
type Result struct {
	CorrectCount   int
	TotalQuestions int
	ScorePercent   int
	Missed         []MissedItem
}

// IsPerfect reports whether every answer was correct
func (r *Result) IsPerfect() bool {
	return r.TotalQuestions > 0 && r.CorrectCount == r.TotalQuestions
}

// ScoreChoices scores a multiple-choice submission against the server-held
// answer key. Comparison is by the selected option's literal text, not its
// index, so stored answers survive option reordering.
func ScoreChoices(answers []ChoiceAnswer, key map[int64]models.Question) (*Result, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: no answers submitted", ErrInvalidSubmission)
	}
	if len(answers) != len(key) {
		return nil, fmt.Errorf("%w: submitted %d answers for %d questions", ErrInvalidSubmission, len(answers), len(key))
	}

	result := &Result{TotalQuestions: len(answers)}
	seen := make(map[int64]bool, len(answers))

	for _, answer := range answers {
		question, ok := key[answer.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %d", ErrInvalidSubmission, answer.QuestionID)
		}
		if seen[answer.QuestionID] {
			return nil, fmt.Errorf("%w: duplicate answer for question %d", ErrInvalidSubmission, answer.QuestionID)
		}
		seen[answer.QuestionID] = true

		selected := ""
		if answer.SelectedIndex >= 0 && answer.SelectedIndex < len(question.Options) {
			selected = question.Options[answer.SelectedIndex]
		}

		if selected != "" && selected == question.CorrectAnswer {
			result.CorrectCount++
			continue
		}

		id := question.ID
		result.Missed = append(result.Missed, MissedItem{
			QuestionID: &id,
			Word:       question.Word,
			Submitted:  selected,
		})
	}

	result.ScorePercent = percent(result.CorrectCount, result.TotalQuestions)
	return result, nil
}

// ScoreText scores a free-text submission. Answers are compared
// case-insensitively after trimming whitespace.
func ScoreText(answers []TextAnswer) (*Result, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: no answers submitted", ErrInvalidSubmission)
	}

	result := &Result{TotalQuestions: len(answers)}

	for _, answer := range answers {
		if normalize(answer.Typed) == normalize(answer.TargetWord) {
			result.CorrectCount++
			continue
		}
		result.Missed = append(result.Missed, MissedItem{
			Word:      answer.TargetWord,
			Submitted: answer.Typed,
		})
	}

	result.ScorePercent = percent(result.CorrectCount, result.TotalQuestions)
	return result, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func percent(correct, total int) int {
	return int(math.Round(100 * float64(correct) / float64(total)))
}
