package handlers

import (
	"encoding/json"
	"net/http"

	"vocabquest/internal/models"
	"vocabquest/internal/scoring"
	"vocabquest/internal/service"
)

// AttemptHandler handles game submission requests
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Submit handles POST /api/attempts
func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	sub := service.Submission{
		UserID:         GetUserID(r.Context()),
		UnitID:         req.UnitID,
		GameType:       models.GameType(req.GameType),
		ElapsedSeconds: req.ElapsedSeconds,
	}
	for _, answer := range req.Answers {
		sub.Choices = append(sub.Choices, scoring.ChoiceAnswer{
			QuestionID:    answer.QuestionID,
			SelectedIndex: answer.SelectedIndex,
		})
	}
	for _, word := range req.Words {
		sub.Words = append(sub.Words, scoring.TextAnswer{
			TargetWord: word.Word,
			Typed:      word.Typed,
		})
	}

	result, err := h.attemptService.RecordAttempt(sub)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, submitAttemptResponse{
		Success:        true,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		XPEarned:       result.XPEarned,
		IsPerfect:      result.IsPerfect,
		TotalXP:        result.TotalXP,
		Level:          result.Level,
		Streak:         result.Streak,
	})
}
