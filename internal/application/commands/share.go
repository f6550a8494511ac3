package commands

import (
	"context"
	"fmt"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// ShareCommand creates a share link for an item
type ShareCommand struct {
	store      ports.ItemStore
	ItemID     string
	Visibility string
}

// NewShareCommand creates a new ShareCommand
func NewShareCommand(store ports.ItemStore, itemID, visibility string) *ShareCommand {
	return &ShareCommand{
		store:      store,
		ItemID:     itemID,
		Visibility: visibility,
	}
}

// Execute runs the share command
func (c *ShareCommand) Execute(ctx context.Context) (*domain.ShareLink, error) {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return nil, err
	}
	return c.store.Share(ctx, c.ItemID, c.Visibility)
}

// UnshareCommand removes a share link
type UnshareCommand struct {
	store ports.ItemStore
	Token string
}

// NewUnshareCommand creates a new UnshareCommand
func NewUnshareCommand(store ports.ItemStore, token string) *UnshareCommand {
	return &UnshareCommand{
		store: store,
		Token: token,
	}
}

// Execute runs the unshare command and returns a user-facing message
func (c *UnshareCommand) Execute(ctx context.Context) (string, error) {
	if err := application.ValidateRequired("token", c.Token); err != nil {
		return "", err
	}
	removed, err := c.store.Unshare(ctx, c.Token)
	if err != nil {
		return "", err
	}
	if !removed {
		return fmt.Sprintf("No share link with token %s", c.Token), nil
	}
	return fmt.Sprintf("Removed share link %s", c.Token), nil
}
