package usecase

import (
	"context"
	"log/slog"

	"codedoc/internal/domain/entity"
	"codedoc/internal/domain/repository"
	"codedoc/internal/infrastructure/logging"
	"codedoc/internal/infrastructure/metrics"
	"codedoc/internal/infrastructure/tracing"
)

const (
	MsgRepoURLRequired  = "repoUrl is required and must be a string"
	MsgRepoURLShape     = "repoUrl must be a GitHub file URL like https://github.com/<owner>/<repo>/blob/<ref>/<path>"
	MsgProcessingFailed = "Failed to process the repository URL."
)

type DocsUsecase interface {
	Generate(ctx context.Context, req entity.GenerationRequest) (entity.GenerationResult, error)
}

var _ DocsUsecase = (*DocsService)(nil)

type DocsService struct {
	fetcher   repository.SourceFetcher
	generator repository.DocumentationGenerator
	logger    *slog.Logger
}

func NewDocsService(
	fetcher repository.SourceFetcher,
	generator repository.DocumentationGenerator,
	logger *slog.Logger,
) *DocsService {
	return &DocsService{
		fetcher:   fetcher,
		generator: generator,
		logger:    logger,
	}
}

// Generate validates and rewrites the repository URL, fetches the file and asks the
// generator for documentation. Returned errors are *entity.Error.
func (s *DocsService) Generate(ctx context.Context, req entity.GenerationRequest) (entity.GenerationResult, error) {
	ctx, span := tracing.StartGenerateSpan(ctx, req.RepoURL)
	defer span.End()

	logger := logging.FromContext(ctx, s.logger)

	if req.RepoURL == "" {
		metrics.IncGenerationRequest("invalid_input")
		return entity.GenerationResult{}, entity.NewInvalidInput(MsgRepoURLRequired, nil)
	}

	rawURL, err := entity.RawContentURL(req.RepoURL)
	if err != nil {
		metrics.IncGenerationRequest("invalid_input")
		logger.Info("rejected repository url", "repo_url", req.RepoURL, "err", err)
		return entity.GenerationResult{}, entity.NewInvalidInput(MsgRepoURLShape, err)
	}
	logger.Info("raw github url", "raw_url", rawURL)

	file, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.IncGenerationRequest("upstream_failure")
		tracing.Fail(span, err)
		logger.Error("fetch file failed", "raw_url", rawURL, "err", err)
		return entity.GenerationResult{}, entity.NewUpstreamFailure(MsgProcessingFailed, err)
	}

	doc := s.generator.GenerateDocumentation(ctx, file.Content)

	metrics.IncGenerationRequest("success")
	logger.Info("documentation generated",
		"file", entity.FileNameFromURL(rawURL),
		"bytes", len(file.Content),
		"outcome", doc.Outcome,
	)

	return entity.GenerationResult{
		FileName:      entity.FileNameFromURL(rawURL),
		OriginalCode:  file.Content,
		Documentation: doc.Display(),
	}, nil
}
