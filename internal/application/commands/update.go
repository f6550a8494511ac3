package commands

import (
	"context"
	"fmt"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// UpdateResult contains the result of an update
type UpdateResult struct {
	Before  *domain.Item
	Item    *domain.Item
	Message string
}

// UpdateCommand applies a partial update to an item
type UpdateCommand struct {
	store  ports.ItemStore
	ItemID string
	Patch  domain.Patch
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(store ports.ItemStore, itemID string, patch domain.Patch) *UpdateCommand {
	return &UpdateCommand{
		store:  store,
		ItemID: itemID,
		Patch:  patch,
	}
}

// Validate checks that there is something to update
func (c *UpdateCommand) Validate() error {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return err
	}
	if c.Patch.IsEmpty() {
		return &application.ValidationError{
			Field:   "patch",
			Message: "nothing to update",
		}
	}
	return nil
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	before, err := c.store.Get(ctx, c.ItemID)
	if err != nil {
		return nil, err
	}

	item, err := c.store.Update(ctx, c.ItemID, c.Patch)
	if err != nil {
		return nil, err
	}

	return &UpdateResult{
		Before:  before,
		Item:    item,
		Message: describeChange(before, item),
	}, nil
}

// describeChange summarizes what an update did to kind and status
func describeChange(before, after *domain.Item) string {
	switch {
	case before.Kind != after.Kind:
		return fmt.Sprintf("Converted %s from %s (%s) to %s (%s)",
			after.ID, before.Kind, before.Status, after.Kind, after.Status)
	case before.Status != after.Status:
		return fmt.Sprintf("Updated %s: %s -> %s", after.ID, before.Status, after.Status)
	default:
		return fmt.Sprintf("Updated %s", after.ID)
	}
}
