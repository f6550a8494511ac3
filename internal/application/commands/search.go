package commands

import (
	"context"
	"errors"
	"fmt"

	"grove/internal/domain"
	"grove/internal/ports"
)

// SearchResult contains matching items in index order
type SearchResult struct {
	Items   []domain.Item
	Message string
}

// SearchCommand runs a free-text query and loads the matching items
type SearchCommand struct {
	index ports.SearchIndex
	store ports.ItemStore
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(index ports.SearchIndex, store ports.ItemStore, query string, limit int) *SearchCommand {
	return &SearchCommand{
		index: index,
		store: store,
		Query: query,
		Limit: limit,
	}
}

// Execute runs the search command
func (c *SearchCommand) Execute(ctx context.Context) (*SearchResult, error) {
	ids, err := c.index.Query(ctx, c.Query, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	items := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		item, err := c.store.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			// index row outlived its item; the next rebuild drops it
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	msg := fmt.Sprintf("Found %d items matching %q", len(items), c.Query)
	if len(items) == 0 {
		msg = fmt.Sprintf("No items match %q", c.Query)
	}
	return &SearchResult{Items: items, Message: msg}, nil
}
