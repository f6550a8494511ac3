package commands

import (
	"context"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// SetStatusCommand moves an item to a fixed status. Archive and complete
// are the two shapes the surfaces expose.
type SetStatusCommand struct {
	store  ports.ItemStore
	ItemID string
	Status domain.Status
}

// NewArchiveCommand creates a command that archives an item of any kind
func NewArchiveCommand(store ports.ItemStore, itemID string) *SetStatusCommand {
	return &SetStatusCommand{
		store:  store,
		ItemID: itemID,
		Status: domain.StatusArchived,
	}
}

// NewCompleteCommand creates a command that marks a task done
func NewCompleteCommand(store ports.ItemStore, itemID string) *SetStatusCommand {
	return &SetStatusCommand{
		store:  store,
		ItemID: itemID,
		Status: domain.StatusDone,
	}
}

// Validate checks the item ID
func (c *SetStatusCommand) Validate() error {
	return application.ValidateRequired("itemID", c.ItemID)
}

// Execute runs the command; a status invalid for the item's kind fails
// with an InvalidTransition error and leaves the item unchanged
func (c *SetStatusCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	status := c.Status
	return NewUpdateCommand(c.store, c.ItemID, domain.Patch{Status: &status}).Execute(ctx)
}
