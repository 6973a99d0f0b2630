package repository

import (
	"context"

	"codedoc/internal/domain/entity"
)

// DocumentationGenerator turns source text into documentation. It never returns an
// error: failures are reported through the result's Outcome.
type DocumentationGenerator interface {
	GenerateDocumentation(ctx context.Context, code string) entity.Documentation
}
