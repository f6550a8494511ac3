package commands

import (
	"context"
	"fmt"

	"grove/internal/domain"
	"grove/internal/ports"
)

// ReindexResult contains rebuild statistics
type ReindexResult struct {
	Stats   *domain.RebuildStats
	Message string
}

// ReindexCommand rebuilds the search index from the stored items
type ReindexCommand struct {
	index ports.SearchIndex
}

// NewReindexCommand creates a new ReindexCommand
func NewReindexCommand(index ports.SearchIndex) *ReindexCommand {
	return &ReindexCommand{index: index}
}

// Execute runs the reindex command
func (c *ReindexCommand) Execute(ctx context.Context) (*ReindexResult, error) {
	stats, err := c.index.Rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}
	return &ReindexResult{
		Stats:   stats,
		Message: fmt.Sprintf("Indexed %d items in %s", stats.ItemsIndexed, stats.Duration),
	}, nil
}
