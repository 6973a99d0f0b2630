package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"codedoc/app/config"
	"codedoc/app/usecase"
	"codedoc/internal/infrastructure/llm"
	"codedoc/internal/infrastructure/source"
	"codedoc/internal/infrastructure/tracing"
)

// Seams over process-wide setup, replaced in tests.
var (
	initTracing      = tracing.Init
	buildDocsService = newDocsService
)

// newDocsService builds the fetch and generate pipeline shared by serve and generate.
func newDocsService(cfg *config.Config, logger *slog.Logger) (*usecase.DocsService, error) {
	fetcher, err := source.New(cfg.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("source fetcher: %w", err)
	}

	llmClient := &http.Client{
		Timeout:   cfg.LLM.Timeout,
		Transport: tracing.Transport(nil),
	}
	generator := llm.NewCohereGenerator(cfg.LLM.APIKey.Reveal(), cfg.LLM.BaseURL, llmClient, logger)

	return usecase.NewDocsService(fetcher, generator, logger), nil
}
