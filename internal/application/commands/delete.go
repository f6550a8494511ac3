package commands

import (
	"context"
	"fmt"

	"grove/internal/application"
	"grove/internal/ports"
)

// DeleteResult contains the result of deleting an item
type DeleteResult struct {
	ItemID  string
	Deleted bool
	Message string
}

// DeleteCommand hard-deletes an item and its share links
type DeleteCommand struct {
	store  ports.ItemStore
	ItemID string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(store ports.ItemStore, itemID string) *DeleteCommand {
	return &DeleteCommand{
		store:  store,
		ItemID: itemID,
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return nil, err
	}

	deleted, err := c.store.Delete(ctx, c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	msg := fmt.Sprintf("Deleted %s", c.ItemID)
	if !deleted {
		msg = fmt.Sprintf("Nothing to delete: %s does not exist", c.ItemID)
	}
	return &DeleteResult{ItemID: c.ItemID, Deleted: deleted, Message: msg}, nil
}
