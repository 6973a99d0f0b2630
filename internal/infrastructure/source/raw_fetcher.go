package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"codedoc/internal/domain/entity"
	"codedoc/internal/domain/repository"
	"codedoc/internal/infrastructure/metrics"
	"codedoc/internal/infrastructure/tracing"
)

const ModeRaw = "raw"

var _ repository.SourceFetcher = (*RawFetcher)(nil)

// RawFetcher reads a file with a single GET against its raw-content URL.
type RawFetcher struct {
	client *http.Client
	logger *slog.Logger
}

func NewRawFetcher(client *http.Client, logger *slog.Logger) *RawFetcher {
	return &RawFetcher{client: client, logger: logger}
}

func (f *RawFetcher) Fetch(ctx context.Context, rawURL string) (entity.RawFile, error) {
	ctx, span := tracing.StartFetchSpan(ctx, ModeRaw, rawURL)
	defer span.End()

	start := time.Now()
	content, err := f.get(ctx, rawURL)
	metrics.ObserveSourceFetch(ModeRaw, time.Since(start), err)
	if err != nil {
		tracing.Fail(span, err)
		return entity.RawFile{}, err
	}
	metrics.ObserveSourceBytes(len(content))

	return entity.RawFile{
		URL:      rawURL,
		FileName: entity.FileNameFromURL(rawURL),
		Content:  content,
	}, nil
}

func (f *RawFetcher) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.IncError("source", "create_request")
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.IncError("source", "http_do")
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("close body failed", "err", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncError("source", fmt.Sprintf("status_%d", resp.StatusCode))
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncError("source", "read_body")
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}
