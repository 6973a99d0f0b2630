package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codedoc/internal/domain/entity"
	"codedoc/internal/infrastructure/tracing"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	generatePath   = "/api/docs/generate"
)

// StatusError is returned for any non-2xx gateway reply. Message holds the
// gateway's {"error": ...} text when the body carried one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a client for the gateway at baseURL. A nil httpClient gets a traced
// client with a timeout long enough for a slow LLM round trip.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tracing.Transport(nil),
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *Client) Generate(ctx context.Context, repoURL string) (entity.GenerationResult, error) {
	payload, err := json.Marshal(entity.GenerationRequest{RepoURL: repoURL})
	if err != nil {
		return entity.GenerationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return entity.GenerationResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.GenerationResult{}, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.GenerationResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return entity.GenerationResult{}, &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	var res entity.GenerationResult
	if err := json.Unmarshal(body, &res); err != nil {
		return entity.GenerationResult{}, fmt.Errorf("decode response: %w", err)
	}
	return res, nil
}

// StatusCode reports the gateway status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
