package commands

import (
	"context"
	"testing"

	"grove/internal/domain"
)

func TestDeleteCommand(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	item := capture(t, store, domain.NewItem{Title: "Throwaway"})

	link, err := NewShareCommand(store, item.ID, domain.VisibilityPublic).Execute(ctx)
	if err != nil {
		t.Fatalf("share failed: %v", err)
	}

	res, err := NewDeleteCommand(store, item.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Deleted {
		t.Error("expected item to be deleted")
	}

	msg, err := NewUnshareCommand(store, link.Token).Execute(ctx)
	if err != nil {
		t.Fatalf("unshare failed: %v", err)
	}
	if !contains(msg, "No share link") {
		t.Errorf("share link should be gone with its item, got %q", msg)
	}

	res, err = NewDeleteCommand(store, item.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Deleted || !contains(res.Message, "does not exist") {
		t.Errorf("second delete: %+v", res)
	}
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	for _, title := range []string{"a", "b", "c"} {
		capture(t, store, domain.NewItem{Title: title, Tags: []string{"x"}})
	}

	res, err := NewListCommand(store, domain.ListFilter{Kind: domain.KindNote, Tag: "x", Limit: 1}).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Page.Items) != 1 || res.Page.Total != 3 {
		t.Errorf("got %d items of %d, want 1 of 3", len(res.Page.Items), res.Page.Total)
	}
	if res.Message != "Showing 1 of 3 items" {
		t.Errorf("unexpected message %q", res.Message)
	}
}
