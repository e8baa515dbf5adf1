// Package solver is the HTTP client for the external solving service. It
// performs no retries; any non-success response surfaces as an error for the
// orchestrator to interpret.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bavobbr/dmon-scheduler/internal/domain"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

// Client talks to the solving service's schedule resource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client for the given base URL, e.g.
// "http://localhost:8080/schedule".
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Solve submits a dataset and returns the opaque job identifier.
func (c *Client) Solve(ctx context.Context, dataset domain.Dataset) (string, error) {
	body, err := json.Marshal(dataset)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode dataset")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build solve request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "submit solve request")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "solve"); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "read job id")
	}
	jobID := strings.TrimSpace(string(raw))
	if jobID == "" {
		return "", appErrors.Clone(appErrors.ErrSolverUnavailable, "solving service returned empty job id")
	}
	return jobID, nil
}

// Schedule fetches the current best-known snapshot for a job.
func (c *Client) Schedule(ctx context.Context, jobID string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", c.baseURL, jobID), "get schedule", &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Status fetches the snapshot whose solverStatus field is authoritative for
// detecting termination.
func (c *Client) Status(ctx context.Context, jobID string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/status", c.baseURL, jobID), "get status", &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Stop cancels solving server-side and returns the final snapshot.
func (c *Client) Stop(ctx context.Context, jobID string) (*domain.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/%s", c.baseURL, jobID), nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build stop request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "stop solving")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "stop solving"); err != nil {
		return nil, err
	}

	var schedule domain.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "decode stop response")
	}
	return &schedule, nil
}

// ScoreAnalysis fetches the aggregate constraint breakdown. May be requested
// mid-solve.
func (c *Client) ScoreAnalysis(ctx context.Context, jobID string) (*domain.ScoreAnalysis, error) {
	var analysis domain.ScoreAnalysis
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/analysis", c.baseURL, jobID), "get score analysis", &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// SessionAnalysis fetches per-session violation detail. May be requested
// mid-solve.
func (c *Client) SessionAnalysis(ctx context.Context, jobID string) ([]domain.SessionAnalysis, error) {
	var analyses []domain.SessionAnalysis
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/sessions/analysis", c.baseURL, jobID), "get session analysis", &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (c *Client) getJSON(ctx context.Context, url, op string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build "+op+" request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, op)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, op); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "decode "+op+" response")
	}
	return nil
}

func checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return appErrors.Clone(appErrors.ErrSolverUnavailable, fmt.Sprintf("%s failed: %s", op, resp.Status))
}
