package commands

import (
	"context"
	"testing"

	"grove/internal/domain"
)

func TestSearchCommand(t *testing.T) {
	ctx := context.Background()
	store, index := newTestStore(t)

	garden := capture(t, store, domain.NewItem{Title: "Garden layout", Body: "raised beds"})
	capture(t, store, domain.NewItem{Title: "Bike repair"})

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"trigram", "raised", []string{garden.ID}},
		{"short query", "ga", []string{garden.ID}},
		{"punctuation", "?!", nil},
		{"blank", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewSearchCommand(index, store, tt.query, 10).Execute(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(res.Items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(res.Items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if res.Items[i].ID != id {
					t.Errorf("item %d = %s, want %s", i, res.Items[i].ID, id)
				}
			}
		})
	}
}

func TestReindexCommand(t *testing.T) {
	store, index := newTestStore(t)
	capture(t, store, domain.NewItem{Title: "one"})
	capture(t, store, domain.NewItem{Title: "two"})

	res, err := NewReindexCommand(index).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stats.ItemsIndexed != 2 {
		t.Errorf("indexed %d items, want 2", res.Stats.ItemsIndexed)
	}
}
