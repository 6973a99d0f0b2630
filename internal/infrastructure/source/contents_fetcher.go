package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"

	"codedoc/internal/domain/entity"
	"codedoc/internal/domain/repository"
	"codedoc/internal/infrastructure/metrics"
	"codedoc/internal/infrastructure/tracing"
)

const ModeAPI = "api"

var ErrNotAFile = errors.New("path does not point to a file")

var _ repository.SourceFetcher = (*ContentsFetcher)(nil)

// ContentsFetcher reads files through the GitHub repository contents API, which
// also serves private repositories when the client carries a token.
type ContentsFetcher struct {
	client *github.Client
}

// NewContentsFetcher wraps httpClient in a GitHub API client. An empty baseURL
// targets api.github.com.
func NewContentsFetcher(httpClient *http.Client, baseURL string) (*ContentsFetcher, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		client.BaseURL = u
	}
	return &ContentsFetcher{client: client}, nil
}

func (f *ContentsFetcher) Fetch(ctx context.Context, rawURL string) (entity.RawFile, error) {
	ctx, span := tracing.StartFetchSpan(ctx, ModeAPI, rawURL)
	defer span.End()

	start := time.Now()
	content, err := f.getContent(ctx, rawURL)
	metrics.ObserveSourceFetch(ModeAPI, time.Since(start), err)
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

func (f *ContentsFetcher) getContent(ctx context.Context, rawURL string) (string, error) {
	loc, err := entity.ParseRawLocation(rawURL)
	if err != nil {
		metrics.IncError("source", "parse_location")
		return "", fmt.Errorf("resolve contents location: %w", err)
	}

	file, _, _, err := f.client.Repositories.GetContents(ctx, loc.Owner, loc.Repo, loc.Path,
		&github.RepositoryContentGetOptions{Ref: loc.Ref})
	if err != nil {
		metrics.IncError("source", "get_contents")
		return "", fmt.Errorf("failed to get contents of %s/%s/%s: %w", loc.Owner, loc.Repo, loc.Path, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s: %w", loc.Path, ErrNotAFile)
	}

	content, err := file.GetContent()
	if err != nil {
		metrics.IncError("source", "decode_contents")
		return "", fmt.Errorf("failed to decode contents: %w", err)
	}
	return content, nil
}
