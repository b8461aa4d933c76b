package handlers

import (
	"net/http"

	"vocabquest/internal/service"
)

// ProgressHandler serves progress, stats, and leaderboard reads
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Progress handles GET /api/progress
func (h *ProgressHandler) Progress(w http.ResponseWriter, r *http.Request) {
	rows, err := h.progressService.GetProgress(GetUserID(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	out := make([]progressResponse, len(rows))
	for i, row := range rows {
		out[i] = progressResponse{
			UnitID:           row.UnitID,
			GameType:         string(row.GameType),
			BestScore:        row.BestScore,
			Attempts:         row.Attempts,
			TotalTimeSeconds: row.TotalTimeSeconds,
			TotalXP:          row.TotalXP,
			Completed:        row.Completed,
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// Stats handles GET /api/progress/stats
func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progressService.GetStats(GetUserID(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, statsResponse{
		Success:        true,
		TotalAttempts:  stats.TotalAttempts,
		TotalCorrect:   stats.TotalCorrect,
		TotalQuestions: stats.TotalQuestions,
		Accuracy:       stats.Accuracy,
		TotalXP:        stats.TotalXP,
		Level:          stats.Level,
		Streak:         stats.Streak,
	})
}

// Recent handles GET /api/progress/recent
func (h *ProgressHandler) Recent(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.progressService.GetRecentAttempts(GetUserID(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	out := make([]attemptResponse, len(attempts))
	for i, attempt := range attempts {
		out[i] = attemptResponse{
			ID:               attempt.ID,
			UnitID:           attempt.UnitID,
			GameType:         string(attempt.GameType),
			Score:            attempt.Score,
			CorrectAnswers:   attempt.CorrectAnswers,
			TotalQuestions:   attempt.TotalQuestions,
			TimeSpentSeconds: attempt.TimeSpentSeconds,
			XPEarned:         attempt.XPEarned,
			CreatedAt:        attempt.CreatedAt,
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// Struggling handles GET /api/progress/struggling
func (h *ProgressHandler) Struggling(w http.ResponseWriter, r *http.Request) {
	words, err := h.progressService.GetStrugglingWords(GetUserID(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	out := make([]strugglingWordResponse, len(words))
	for i, word := range words {
		out[i] = strugglingWordResponse{
			Word:       word.Word,
			UnitID:     word.UnitID,
			MissCount:  word.MissCount,
			LastMissed: word.LastMissed,
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// Leaderboard handles GET /api/leaderboard/{testType}
func (h *ProgressHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	testType := r.PathValue("testType")
	switch testType {
	case "reading", "listening", "practice":
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown leaderboard category", "", nil)
		return
	}

	entries, err := h.progressService.GetLeaderboard(testType)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	out := make([]leaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = leaderboardEntryResponse{
			UserID:   entry.UserID,
			UserName: entry.UserName,
			TotalXP:  entry.TotalXP,
			Level:    entry.Level,
			Streak:   entry.Streak,
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}
