package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grove/internal/domain"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single word", "garden", `"garden"`},
		{"words are AND-joined", "garden  plan", `"garden" AND "plan"`},
		{"quotes are doubled", `say "hi"`, `"say" AND """hi"""`},
		{"operators become literals", "NOT OR*", `"NOT" AND "OR*"`},
		{"empty", "   ", noMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeQuery(tt.input))
		})
	}
}

func TestQuery_Trigram(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)

	garden := mustCreate(t, store, domain.NewItem{Title: "Garden plan", Body: "tomatoes along the fence"})
	mustCreate(t, store, domain.NewItem{Title: "Tax return", Body: "receipts"})

	tests := []struct {
		query string
		want  []string
	}{
		{"garden", []string{garden.ID}},
		{"GARD", []string{garden.ID}},
		{"tomato fence", []string{garden.ID}},
		{"garden receipts", []string{}},
		{"ardenplan", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := index.Query(ctx, tt.query, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_ShortQueryFallsBackToSubstring(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)

	older := mustCreate(t, store, domain.NewItem{Title: "Go tips"})
	mustCreate(t, store, domain.NewItem{Title: "Rust notes"})
	newer := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Body: "learn go generics"})

	got, err := index.Query(ctx, "go", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{newer.ID, older.ID}, got, "newest first")

	got, err = index.Query(ctx, "go tips", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{older.ID}, got, "every word must appear")
}

func TestQuery_PunctuationAndEmpty(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)
	mustCreate(t, store, domain.NewItem{Title: "plain words only"})

	for _, q := range []string{"", "   ", `"`, `""`, `"""`, "*)(", "^:-", `" OR "`, "\t\n"} {
		got, err := index.Query(ctx, q, 10)
		require.NoError(t, err, "query %q", q)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestQuery_ReadsItsWrites(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)

	item := mustCreate(t, store, domain.NewItem{Title: "Sourdough starter"})

	_, err := store.Update(ctx, item.ID, domain.Patch{Title: domain.Ptr("Rye bread")})
	require.NoError(t, err)

	got, err := index.Query(ctx, "sourdough", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = index.Query(ctx, "rye bread", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{item.ID}, got)
}

func TestQuery_Limit(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)
	for range 3 {
		mustCreate(t, store, domain.NewItem{Title: "meeting notes"})
	}

	got, err := index.Query(ctx, "meeting", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = index.Query(ctx, "meeting", 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRebuild_RepairsDrift(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)

	item := mustCreate(t, store, domain.NewItem{Title: "Lost in the index"})
	mustCreate(t, store, domain.NewItem{Title: "Another"})

	_, err := db.db.Exec(`DELETE FROM items_fts`)
	require.NoError(t, err)
	got, err := index.Query(ctx, "lost", 10)
	require.NoError(t, err)
	require.Empty(t, got)

	stats, err := index.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ItemsIndexed)
	assert.False(t, db.LastRebuild(ctx).IsZero())

	got, err = index.Query(ctx, "lost", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{item.ID}, got)
}

func BenchmarkRebuild(b *testing.B) {
	ctx := context.Background()
	db := openTestDB(b)
	store := NewStore(db)
	index := NewSearchIndex(db)
	for range 500 {
		mustCreate(b, store, domain.NewItem{Title: "benchmark item", Body: "some body text to index"})
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := index.Rebuild(ctx); err != nil {
			b.Fatalf("rebuild failed: %v", err)
		}
	}
}
