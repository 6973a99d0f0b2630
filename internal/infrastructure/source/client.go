package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"codedoc/app/config"
	"codedoc/internal/domain/repository"
	"codedoc/internal/infrastructure/tracing"
)

// NewHTTPClient returns a traced client with cfg's timeout. With a GitHub token set,
// every request carries it as a bearer credential.
func NewHTTPClient(cfg config.SourceConfig) *http.Client {
	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: tracing.Transport(nil),
	}
	if cfg.GitHubToken == "" {
		return base
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken.Reveal()})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = cfg.Timeout
	return client
}

// New returns the fetcher for cfg.Mode.
func New(cfg config.SourceConfig, logger *slog.Logger) (repository.SourceFetcher, error) {
	client := NewHTTPClient(cfg)
	switch cfg.Mode {
	case config.SourceModeRaw, "":
		return NewRawFetcher(client, logger), nil
	case config.SourceModeAPI:
		fetcher, err := NewContentsFetcher(client, "")
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Mode)
	}
}
