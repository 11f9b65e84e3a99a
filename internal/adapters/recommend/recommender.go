// Package recommend produces CRM tool recommendations for the public
// CRM-recommendation widget, backed by a hosted completion endpoint.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Input describes the visitor's answers to the recommendation questionnaire.
type Input struct {
	CompanySize string `json:"company_size"`
	Industry    string `json:"industry"`
	Budget      string `json:"budget"`
	MustHave    string `json:"must_have"`
}

// Recommender turns questionnaire answers into a short recommendation.
type Recommender interface {
	Recommend(ctx context.Context, in Input) (string, error)
}

// HTTPRecommender calls an OpenAI-compatible chat completion endpoint.
type HTTPRecommender struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewHTTPRecommender creates a recommender for the given endpoint and model.
// PRE: endpoint is an absolute URL; apiKey authorizes it
func NewHTTPRecommender(endpoint, apiKey, model string) *HTTPRecommender {
	return &HTTPRecommender{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

const systemPrompt = "You are a CRM consultant. Recommend one CRM product for the " +
	"described company in at most three sentences, naming the product first."

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// Recommend asks the completion endpoint for a recommendation.
// POST: Returns a short plain-text recommendation
func (r *HTTPRecommender) Recommend(ctx context.Context, in Input) (string, error) {
	user := fmt.Sprintf("Company size: %s. Industry: %s. Budget: %s. Must have: %s.",
		in.CompanySize, in.Industry, in.Budget, in.MustHave)

	body, err := json.Marshal(completionRequest{
		Model: r.model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("recommendation_request_failed", "error", err)
		return "", fmt.Errorf("recommendation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("recommendation_bad_status", "status", resp.StatusCode)
		return "", fmt.Errorf("recommendation endpoint returned status %d", resp.StatusCode)
	}

	var payload completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("recommendation decode failed: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("recommendation endpoint returned no choices")
	}
	return payload.Choices[0].Message.Content, nil
}

// StubRecommender returns a canned recommendation. Used in development when
// no API key is configured, and in tests.
type StubRecommender struct {
	Recommendation string
	Err            error
}

func (s *StubRecommender) Recommend(_ context.Context, in Input) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Recommendation != "" {
		return s.Recommendation, nil
	}
	return fmt.Sprintf("For a %s company in %s, a hosted CRM in the %s range is the usual fit.",
		in.CompanySize, in.Industry, in.Budget), nil
}
