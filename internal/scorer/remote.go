package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// RemoteScorer calls an external model-serving endpoint. The circuit breaker
// keeps a dead scorer from stalling every request on a full timeout; an open
// breaker still surfaces as an error upstream, never as a fallback ranking.
type RemoteScorer struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]float64]
}

type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

type scoreRequest struct {
	Customer    []float64   `json:"customer"`
	Interaction []float64   `json:"interaction"`
	Policies    [][]float64 `json:"policies"`
}

type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

func NewRemoteScorer(cfg RemoteConfig) *RemoteScorer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:    "relevance-scorer",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &RemoteScorer{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

func (s *RemoteScorer) Score(ctx context.Context, customer, interaction []float64, policies [][]float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.breaker.Execute(func() ([]float64, error) {
		return s.score(ctx, customer, interaction, policies)
	})
}

func (s *RemoteScorer) score(ctx context.Context, customer, interaction []float64, policies [][]float64) ([]float64, error) {
	payload, err := json.Marshal(scoreRequest{
		Customer:    customer,
		Interaction: interaction,
		Policies:    policies,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/score", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoring call failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("scoring service returned %d: %s", res.StatusCode, string(body))
	}

	var out scoreResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode score response: %w", err)
	}

	return out.Scores, nil
}
