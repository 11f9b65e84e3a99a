// Package pagespeed wraps the Google PageSpeed Insights API behind a small
// interface so the speed-test endpoint can be tested without network access.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Result is the distilled outcome of a speed test.
type Result struct {
	Score   int               `json:"score"`   // 0-100 performance score
	Metrics map[string]string `json:"metrics"` // display values keyed by audit name
}

// Scorer runs a speed test against a public URL.
type Scorer interface {
	Score(ctx context.Context, target string) (Result, error)
}

const apiEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// metricAudits are the Lighthouse audits surfaced to the visitor.
var metricAudits = []string{
	"first-contentful-paint",
	"largest-contentful-paint",
	"cumulative-layout-shift",
	"total-blocking-time",
}

// HTTPScorer calls the PageSpeed Insights API.
type HTTPScorer struct {
	apiKey string
	client *http.Client
}

// NewHTTPScorer creates a scorer using the given API key.
func NewHTTPScorer(apiKey string) *HTTPScorer {
	return &HTTPScorer{
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// apiResponse mirrors the slice of the PageSpeed payload we read.
type apiResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance struct {
				Score float64 `json:"score"`
			} `json:"performance"`
		} `json:"categories"`
		Audits map[string]struct {
			DisplayValue string `json:"displayValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// Score runs a PageSpeed test against target.
// PRE: target is an absolute http(s) URL
// POST: Returns the performance score (0-100) and headline metrics
func (s *HTTPScorer) Score(ctx context.Context, target string) (Result, error) {
	q := url.Values{}
	q.Set("url", target)
	q.Set("category", "performance")
	if s.apiKey != "" {
		q.Set("key", s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("pagespeed_request_failed", "url", target, "error", err)
		return Result{}, fmt.Errorf("pagespeed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("pagespeed_bad_status", "url", target, "status", resp.StatusCode)
		return Result{}, fmt.Errorf("pagespeed returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("pagespeed decode failed: %w", err)
	}

	result := Result{
		Score:   int(payload.LighthouseResult.Categories.Performance.Score * 100),
		Metrics: make(map[string]string, len(metricAudits)),
	}
	for _, name := range metricAudits {
		if audit, ok := payload.LighthouseResult.Audits[name]; ok && audit.DisplayValue != "" {
			result.Metrics[name] = audit.DisplayValue
		}
	}
	return result, nil
}

// StubScorer returns a fixed result. Used in development when no API key is
// configured, and in tests.
type StubScorer struct {
	Result Result
	Err    error
}

func (s *StubScorer) Score(_ context.Context, _ string) (Result, error) {
	if s.Err != nil {
		return Result{}, s.Err
	}
	if s.Result.Score == 0 && s.Result.Metrics == nil {
		return Result{
			Score: 92,
			Metrics: map[string]string{
				"first-contentful-paint":   "0.9 s",
				"largest-contentful-paint": "1.4 s",
			},
		}, nil
	}
	return s.Result, nil
}
