package commands

import (
	"context"
	"fmt"

	"grove/internal/domain"
	"grove/internal/ports"
)

// ListResult contains one page of a listing
type ListResult struct {
	Page    *domain.ListPage
	Message string
}

// ListCommand lists items matching a filter
type ListCommand struct {
	store  ports.ItemStore
	Filter domain.ListFilter
}

// NewListCommand creates a new ListCommand
func NewListCommand(store ports.ItemStore, filter domain.ListFilter) *ListCommand {
	return &ListCommand{
		store:  store,
		Filter: filter,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	page, err := c.store.List(ctx, c.Filter)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Showing %d of %d items", len(page.Items), page.Total)
	if len(page.Items) == 0 {
		msg = "No items found"
	}
	return &ListResult{Page: page, Message: msg}, nil
}
