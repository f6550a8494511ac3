package ports

import (
	"context"

	"grove/internal/domain"
)

// SearchIndex answers free-text queries over item titles and bodies
type SearchIndex interface {
	// Query returns matching item ids, best match first. A query the index
	// cannot parse yields an empty result, not an error.
	Query(ctx context.Context, text string, limit int) ([]string, error)

	// Rebuild discards and repopulates the index from the item table
	Rebuild(ctx context.Context) (*domain.RebuildStats, error)
}
