package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vocabquest/internal/models"
)

var (
	// ErrRateLimited means the gateway returned 429; callers should fall back
	// to existing content and tell the user to try again later
	ErrRateLimited = errors.New("content generator rate limited")
	// ErrQuotaExhausted means the gateway returned 402; the account's
	// generation quota is spent
	ErrQuotaExhausted = errors.New("content generator quota exhausted")
	// ErrNotConfigured means no gateway URL was configured
	ErrNotConfigured = errors.New("content generator not configured")
)

// Client calls the external text-generation gateway that produces quiz
// questions for a unit's vocabulary. The gateway is treated as opaque: this
// client only knows the request/response contract, not the prompt design.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a gateway client. An empty baseURL yields a client whose calls
// fail with ErrNotConfigured, letting callers fall back to stored content.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	UnitID   int64    `json:"unitId"`
	GameType string   `json:"gameType"`
	Words    []string `json:"words"`
}

type generatedQuestion struct {
	Word          string   `json:"word"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type generateResponse struct {
	Questions []generatedQuestion `json:"questions"`
	Error     string              `json:"error,omitempty"`
}

// GenerateQuestions asks the gateway to produce questions for the given words
func (c *Client) GenerateQuestions(ctx context.Context, unitID int64, gameType models.GameType, words []string) ([]models.Question, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	requestData, err := json.Marshal(generateRequest{
		UnitID:   unitID,
		GameType: string(gameType),
		Words:    words,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call generator: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusPaymentRequired:
		return nil, ErrQuotaExhausted
	default:
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode generator response: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("generator error: %s", response.Error)
	}

	questions := make([]models.Question, 0, len(response.Questions))
	for _, generated := range response.Questions {
		questions = append(questions, models.Question{
			UnitID:        unitID,
			GameType:      gameType,
			Word:          generated.Word,
			Prompt:        generated.Prompt,
			Options:       generated.Options,
			CorrectAnswer: generated.CorrectAnswer,
		})
	}
	return questions, nil
}
