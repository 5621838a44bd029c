package hume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	baseURL   = "https://api.hume.ai/v0/batch"
	userAgent = "emotion-insights/1.0"

	apiKeyHeader = "X-Hume-Api-Key"
)

// Sentinel errors.
var (
	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is rejected.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrJobFailed is returned when a submitted analysis job fails.
	ErrJobFailed = errors.New("analysis job failed")

	// ErrJobTimeout is returned when a job does not complete within the poll budget.
	ErrJobTimeout = errors.New("analysis job timed out")
)

// Client is a Hume batch API client for the speech prosody model.
type Client struct {
	apiKey       string
	httpClient   *http.Client
	baseURL      string
	pollInterval time.Duration
	maxPolls     int
}

// NewClient creates a new Hume API client from the provided configuration.
func NewClient(cfg *Config) *Client {
	return &Client{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:      baseURL,
		pollInterval: 2 * time.Second,
		maxPolls:     30,
	}
}

// AnalyzeFile runs the prosody model over one audio file: submit, poll until
// the job settles, then fetch and flatten the predictions. Audio clips
// should be short (the device records ~5 second segments).
func (c *Client) AnalyzeFile(ctx context.Context, path string) ([]Prediction, error) {
	jobID, err := c.StartJob(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := c.waitForJob(ctx, jobID); err != nil {
		return nil, err
	}

	return c.JobPredictions(ctx, jobID)
}

// StartJob submits an audio file for prosody analysis and returns the job ID.
func (c *Client) StartJob(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	jsonPart, err := writer.CreateFormField("json")
	if err != nil {
		return "", fmt.Errorf("creating config part: %w", err)
	}
	if _, err := jsonPart.Write([]byte(`{"models":{"prosody":{}}}`)); err != nil {
		return "", fmt.Errorf("writing config part: %w", err)
	}

	filePart, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(filePart, file); err != nil {
		return "", fmt.Errorf("writing file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/jobs", writer.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("submitting job: %w", err)
	}

	var resp startJobResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parsing job response: %w", err)
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("job response missing job_id")
	}

	return resp.JobID, nil
}

// JobPredictions fetches predictions for a completed job, flattened to the
// prosody model's per-segment predictions.
func (c *Client) JobPredictions(ctx context.Context, jobID string) ([]Prediction, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/jobs/"+jobID+"/predictions", "", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching predictions: %w", err)
	}

	var resp predictionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing predictions response: %w", err)
	}

	return resp.flatten(), nil
}

// waitForJob polls the job status until it completes, fails, or the poll
// budget is exhausted.
func (c *Client) waitForJob(ctx context.Context, jobID string) error {
	for i := 0; i < c.maxPolls; i++ {
		body, err := c.doRequest(ctx, http.MethodGet, "/jobs/"+jobID, "", nil)
		if err != nil {
			return fmt.Errorf("polling job status: %w", err)
		}

		var status jobStatusResponse
		if err := json.Unmarshal(body, &status); err != nil {
			return fmt.Errorf("parsing job status: %w", err)
		}

		switch status.State.Status {
		case statusCompleted:
			return nil
		case statusFailed:
			if status.State.Message != "" {
				return fmt.Errorf("%w: %s", ErrJobFailed, status.State.Message)
			}
			return ErrJobFailed
		case statusQueued, statusInProgress:
			// keep polling
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return ErrJobTimeout
}

// doRequest performs an HTTP request with retry on rate limit.
// Retries up to 3 times with exponential backoff (1s, 2s, 4s).
func (c *Client) doRequest(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	delays := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		var reqBody io.Reader
		if bodyBytes != nil {
			reqBody = bytes.NewReader(bodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set(apiKeyHeader, c.apiKey)
		req.Header.Set("User-Agent", userAgent)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = ErrRateLimited
			continue
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, ErrInvalidAPIKey
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}
