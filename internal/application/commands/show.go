package commands

import (
	"context"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// ShowCommand loads a single item with its derived fields
type ShowCommand struct {
	store  ports.ItemStore
	ItemID string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(store ports.ItemStore, itemID string) *ShowCommand {
	return &ShowCommand{
		store:  store,
		ItemID: itemID,
	}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*domain.Item, error) {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return nil, err
	}
	return c.store.Get(ctx, c.ItemID)
}
