// Package aiclient calls the lineup prediction service over HTTP.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
)

const (
	PredictTimeout  = 10 * time.Second
	AnalysisTimeout = 5 * time.Second
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ai service responded %d: %s", e.Status, e.Body)
}

// Throttled reports a 429 from the AI service.
func (e *StatusError) Throttled() bool {
	return e.Status == http.StatusTooManyRequests
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Client) PredictLineup(ctx context.Context, req *models.LineupRequest) (json.RawMessage, error) {
	return c.post(ctx, "/api/ai/predict-lineup", req, PredictTimeout)
}

func (c *Client) PlayerAnalysis(ctx context.Context, playerId int) (json.RawMessage, error) {
	return c.post(ctx, "/api/ai/player-analysis", models.PlayerAnalysisRequest{PlayerID: playerId}, AnalysisTimeout)
}

func (c *Client) post(ctx context.Context, path string, in any, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("ai service returned invalid json")
	}
	return raw, nil
}
