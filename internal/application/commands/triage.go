package commands

import (
	"context"
	"fmt"

	"grove/internal/application"
	"grove/internal/domain"
	"grove/internal/ports"
)

// TriageAction is a decision taken on one item during triage
type TriageAction string

const (
	TriageKeep    TriageAction = "keep"
	TriageArchive TriageAction = "archive"
	TriageDone    TriageAction = "done"
	TriageAdvance TriageAction = "advance"
	TriageDelete  TriageAction = "delete"
	TriageNote    TriageAction = "note"
	TriageTask    TriageAction = "task"
)

// ParseTriageAction converts user input to a TriageAction
func ParseTriageAction(s string) (TriageAction, error) {
	switch a := TriageAction(s); a {
	case TriageKeep, TriageArchive, TriageDone, TriageAdvance, TriageDelete, TriageNote, TriageTask:
		return a, nil
	}
	return "", &application.ValidationError{
		Field:   "action",
		Message: fmt.Sprintf("unknown triage action %q", s),
	}
}

// TriageDecision pairs an item with an action
type TriageDecision struct {
	ItemID string
	Action TriageAction
}

// TriageOutcome records what happened to one item
type TriageOutcome struct {
	TriageDecision
	Item *domain.Item
	Err  error
}

// TriageResult contains the outcome of every decision
type TriageResult struct {
	Outcomes []TriageOutcome
	Applied  int
	Failed   int
	Message  string
}

// TriageCommand applies a batch of decisions. Every decision is its own
// store call, so a failing item leaves the others applied.
type TriageCommand struct {
	store     ports.ItemStore
	Decisions []TriageDecision
}

// NewTriageCommand creates a new TriageCommand
func NewTriageCommand(store ports.ItemStore, decisions []TriageDecision) *TriageCommand {
	return &TriageCommand{
		store:     store,
		Decisions: decisions,
	}
}

// Validate checks every decision before anything runs
func (c *TriageCommand) Validate() error {
	if len(c.Decisions) == 0 {
		return &application.ValidationError{Field: "decisions", Message: "nothing to triage"}
	}
	for _, d := range c.Decisions {
		if err := application.ValidateRequired("itemID", d.ItemID); err != nil {
			return err
		}
		if _, err := ParseTriageAction(string(d.Action)); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the triage command
func (c *TriageCommand) Execute(ctx context.Context) (*TriageResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &TriageResult{}
	for _, d := range c.Decisions {
		outcome := TriageOutcome{TriageDecision: d}
		outcome.Item, outcome.Err = c.apply(ctx, d)
		if outcome.Err != nil {
			result.Failed++
		} else {
			result.Applied++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Message = fmt.Sprintf("Triaged %d items (%d failed)", result.Applied, result.Failed)
	return result, nil
}

func (c *TriageCommand) apply(ctx context.Context, d TriageDecision) (*domain.Item, error) {
	var res *UpdateResult
	var err error

	switch d.Action {
	case TriageKeep:
		return c.store.Get(ctx, d.ItemID)
	case TriageArchive:
		res, err = NewArchiveCommand(c.store, d.ItemID).Execute(ctx)
	case TriageDone:
		res, err = NewCompleteCommand(c.store, d.ItemID).Execute(ctx)
	case TriageAdvance:
		res, err = NewAdvanceCommand(c.store, d.ItemID).Execute(ctx)
	case TriageNote, TriageTask:
		res, err = NewConvertCommand(c.store, d.ItemID, string(d.Action)).Execute(ctx)
	case TriageDelete:
		del, err := NewDeleteCommand(c.store, d.ItemID).Execute(ctx)
		if err != nil {
			return nil, err
		}
		if !del.Deleted {
			return nil, &domain.NotFoundError{ID: d.ItemID}
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}
