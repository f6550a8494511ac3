package commands

import (
	"context"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// AdvanceCommand moves an item one stage along its maturity pipeline
// (fleeting -> developing -> permanent -> exported, active -> done)
type AdvanceCommand struct {
	store  ports.ItemStore
	ItemID string
}

// NewAdvanceCommand creates a new AdvanceCommand
func NewAdvanceCommand(store ports.ItemStore, itemID string) *AdvanceCommand {
	return &AdvanceCommand{
		store:  store,
		ItemID: itemID,
	}
}

// Execute runs the advance command
func (c *AdvanceCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return nil, err
	}

	item, err := c.store.Get(ctx, c.ItemID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.NextStatus(item.Kind, item.Status)
	if !ok {
		return nil, &application.AdvanceError{ID: item.ID, Kind: item.Kind, Status: item.Status}
	}

	return NewUpdateCommand(c.store, c.ItemID, domain.Patch{Status: &next}).Execute(ctx)
}
