package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"codedoc/internal/domain/entity"
	"codedoc/internal/domain/repository"
	"codedoc/internal/infrastructure/logging"
	"codedoc/internal/infrastructure/metrics"
	"codedoc/internal/infrastructure/tracing"
)

const (
	DefaultBaseURL     = "https://api.cohere.ai/v1/generate"
	Model              = "command-r-plus"
	MaxTokens          = 500
	Temperature        = 0.5
	maxErrorBodyLength = 1024
)

var (
	ErrNoGenerations = errors.New("response has no generations")
	ErrEmptyText     = errors.New("first generation has no text")
)

var _ repository.DocumentationGenerator = (*CohereGenerator)(nil)

type CohereGenerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	prompt  entity.Prompt
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Generations []generation `json:"generations"`
}

type generation struct {
	Text *string `json:"text"`
}

// NewCohereGenerator builds a generator for the Cohere generate endpoint. A nil client
// gets a 60s timeout and a tracing transport.
func NewCohereGenerator(apiKey, baseURL string, client *http.Client, logger *slog.Logger) *CohereGenerator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{
			Timeout:   60 * time.Second,
			Transport: tracing.Transport(nil),
		}
	}
	return &CohereGenerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
		prompt:  entity.DocumentationPrompt,
	}
}

func (g *CohereGenerator) GenerateDocumentation(ctx context.Context, code string) entity.Documentation {
	ctx, span := tracing.StartLLMSpan(ctx, Model)
	defer span.End()

	metrics.IncLLMRequest(Model)
	start := time.Now()

	doc := g.generate(ctx, code)

	metrics.ObserveLLMDuration(time.Since(start))
	metrics.IncDocumentationOutcome(string(doc.Outcome))
	if doc.Degraded() {
		tracing.Fail(span, doc.Reason)
		logging.FromContext(ctx, g.logger).Warn("documentation degraded",
			"outcome", doc.Outcome,
			"err", doc.Reason,
		)
	}
	return doc
}

func (g *CohereGenerator) generate(ctx context.Context, code string) entity.Documentation {
	request := generateRequest{
		Model:       Model,
		Prompt:      g.prompt.Build(code),
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}

	response, err := g.makeRequest(ctx, request)
	if err != nil {
		return entity.FailedDocumentation(fmt.Errorf("failed to make Cohere request: %w", err))
	}

	text, err := parseResponse(response)
	if err != nil {
		metrics.IncError("llm", "parse_response")
		return entity.EmptyDocumentation(err)
	}
	return entity.GeneratedDocumentation(text)
}

func (g *CohereGenerator) makeRequest(ctx context.Context, request generateRequest) (*generateResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		metrics.IncError("llm", "marshal_request")
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		metrics.IncError("llm", "create_request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.IncError("llm", "http_do")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			g.logger.Warn("close body failed", "err", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		metrics.IncError("llm", fmt.Sprintf("api_error_%d", resp.StatusCode))
		return nil, fmt.Errorf("cohere api error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		metrics.IncError("llm", "decode_response")
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &response, nil
}

// parseResponse returns the trimmed text of the first generation.
func parseResponse(response *generateResponse) (string, error) {
	if len(response.Generations) == 0 {
		return "", ErrNoGenerations
	}

	text := response.Generations[0].Text
	if text == nil || strings.TrimSpace(*text) == "" {
		return "", ErrEmptyText
	}

	return strings.TrimSpace(*text), nil
}
