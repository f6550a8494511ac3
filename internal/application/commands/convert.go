package commands

import (
	"context"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// ConvertCommand changes the kind of an item. The resulting status follows
// the conversion table, never the caller.
type ConvertCommand struct {
	store  ports.ItemStore
	ItemID string
	Kind   string
}

// NewConvertCommand creates a new ConvertCommand
func NewConvertCommand(store ports.ItemStore, itemID, kind string) *ConvertCommand {
	return &ConvertCommand{
		store:  store,
		ItemID: itemID,
		Kind:   kind,
	}
}

// Validate checks the item ID and target kind
func (c *ConvertCommand) Validate() error {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return err
	}
	_, err := application.ValidateKind("kind", c.Kind)
	return err
}

// Execute runs the convert command
func (c *ConvertCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind, _ := domain.ParseKind(c.Kind)

	return NewUpdateCommand(c.store, c.ItemID, domain.Patch{Kind: &kind}).Execute(ctx)
}
