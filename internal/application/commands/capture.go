package commands

import (
	"context"
	"fmt"
	"strings"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// CaptureResult contains the result of capturing an item
type CaptureResult struct {
	Item    *domain.Item
	Message string
}

// CaptureCommand creates a new note, task or scratch entry
type CaptureCommand struct {
	store ports.ItemStore
	Input domain.NewItem
}

// NewCaptureCommand creates a new CaptureCommand
func NewCaptureCommand(store ports.ItemStore, input domain.NewItem) *CaptureCommand {
	return &CaptureCommand{
		store: store,
		Input: input,
	}
}

// Validate checks that the capture has some content and a known kind
func (c *CaptureCommand) Validate() error {
	if strings.TrimSpace(c.Input.Title) == "" && strings.TrimSpace(c.Input.Body) == "" {
		return &application.ValidationError{
			Field:   "title",
			Message: "title or body is required",
		}
	}
	if c.Input.Kind != "" {
		if _, err := application.ValidateKind("kind", string(c.Input.Kind)); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the capture command
func (c *CaptureCommand) Execute(ctx context.Context) (*CaptureResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item, err := c.store.Create(ctx, c.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to capture item: %w", err)
	}

	return &CaptureResult{
		Item:    item,
		Message: fmt.Sprintf("Captured %s %s (%s)", item.Kind, item.ID, item.Status),
	}, nil
}
