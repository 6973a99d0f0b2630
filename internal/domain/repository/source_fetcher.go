package repository

import (
	"context"

	"codedoc/internal/domain/entity"
)

// SourceFetcher reads the full text behind a raw-content URL.
type SourceFetcher interface {
	Fetch(ctx context.Context, rawURL string) (entity.RawFile, error)
}
