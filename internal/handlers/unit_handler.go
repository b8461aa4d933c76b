package handlers

import (
	"net/http"
	"strconv"

	"vocabquest/internal/models"
	"vocabquest/internal/service"
)

// UnitHandler serves units, question sets, and practice sets
type UnitHandler struct {
	contentService *service.ContentService
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(contentService *service.ContentService) *UnitHandler {
	return &UnitHandler{contentService: contentService}
}

// List handles GET /api/units
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.contentService.ListUnits()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUnitResponses(units))
}

// Questions handles GET /api/units/{unitId}/questions?gameType=reading
func (h *UnitHandler) Questions(w http.ResponseWriter, r *http.Request) {
	unitID, err := parseUnitID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid unit ID", "", err)
		return
	}
	gameType := models.GameType(r.URL.Query().Get("gameType"))

	questions, err := h.contentService.GetQuestions(r.Context(), unitID, gameType)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toQuestionResponses(questions))
}

// Practice handles GET /api/units/{unitId}/practice
func (h *UnitHandler) Practice(w http.ResponseWriter, r *http.Request) {
	unitID, err := parseUnitID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid unit ID", "", err)
		return
	}

	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	words, err := h.contentService.GetPracticeSet(GetUserID(r.Context()), unitID, count)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, practiceSetResponse{
		Success: true,
		UnitID:  unitID,
		Words:   words,
	})
}

func parseUnitID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("unitId"), 10, 64)
}
