package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grove/internal/domain"
)

func TestCreate_Defaults(t *testing.T) {
	store := NewStore(openTestDB(t))

	item := mustCreate(t, store, domain.NewItem{
		Title: "  Reading list ",
		Tags:  []string{"books", " books", "ideas"},
	})

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, domain.KindNote, item.Kind)
	assert.Equal(t, domain.StatusFleeting, item.Status)
	assert.Equal(t, "Reading list", item.Title)
	assert.Equal(t, domain.DefaultOrigin, item.Origin)
	assert.Equal(t, []string{"books", "ideas"}, item.Tags)
	assert.Equal(t, []string{}, item.Aliases)
	assert.False(t, item.Created.IsZero())
	assert.Equal(t, item.Created, item.Modified)
}

func TestCreate_DefaultStatusPerKind(t *testing.T) {
	store := NewStore(openTestDB(t))

	for kind, want := range map[domain.Kind]domain.Status{
		domain.KindNote:    domain.StatusFleeting,
		domain.KindTask:    domain.StatusActive,
		domain.KindScratch: domain.StatusDraft,
	} {
		item := mustCreate(t, store, domain.NewItem{Kind: kind})
		assert.Equal(t, want, item.Status, "kind %s", kind)
	}
}

func TestCreate_InvalidStatusWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	_, err := store.Create(ctx, domain.NewItem{Kind: domain.KindTask, Status: domain.StatusPermanent})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, domain.IsValidation(err))

	page, err := store.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestCreate_MasksFieldsForKind(t *testing.T) {
	store := NewStore(openTestDB(t))

	item := mustCreate(t, store, domain.NewItem{
		Kind:     domain.KindScratch,
		Body:     "quick thought",
		Tags:     []string{"x"},
		Aliases:  []string{"y"},
		Priority: domain.PriorityHigh,
		Due:      "2026-04-01",
	})

	assert.Empty(t, item.Tags)
	assert.Empty(t, item.Aliases)
	assert.Empty(t, item.Priority)
	assert.Empty(t, item.Due)
	assert.Empty(t, item.LinkedRef)
}

func TestCreate_LinkedRefMustBeNote(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	task := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "other task"})

	tests := []struct {
		name string
		ref  string
	}{
		{"missing item", "does-not-exist"},
		{"task target", task.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, domain.NewItem{Kind: domain.KindTask, LinkedRef: tt.ref})
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, "linkedRef", ve.Field)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	store := NewStore(openTestDB(t))

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, domain.IsValidation(err))
}

func TestUpdate_ConvertTaskToScratch(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	note := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: "Venue ideas"})
	task := mustCreate(t, store, domain.NewItem{
		Kind:      domain.KindTask,
		Title:     "Book venue",
		Due:       "2026-04-01",
		Priority:  domain.PriorityHigh,
		Tags:      []string{"events"},
		LinkedRef: note.ID,
	})
	require.Equal(t, "Venue ideas", task.LinkedNoteTitle)

	got, err := store.Update(ctx, task.ID, domain.Patch{Kind: domain.Ptr(domain.KindScratch)})
	require.NoError(t, err)

	assert.Equal(t, domain.KindScratch, got.Kind)
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.Empty(t, got.Due)
	assert.Empty(t, got.Priority)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.Aliases)
	assert.Empty(t, got.LinkedRef)
	assert.Empty(t, got.LinkedNoteTitle)
	assert.True(t, got.Modified.After(task.Modified))

	reloaded, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestUpdate_ConversionOverridesRequestedStatus(t *testing.T) {
	store := NewStore(openTestDB(t))
	task := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Status: domain.StatusDone})

	got, err := store.Update(context.Background(), task.ID, domain.Patch{
		Kind:   domain.Ptr(domain.KindNote),
		Status: domain.Ptr(domain.StatusFleeting),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPermanent, got.Status)
}

func TestUpdate_ExportRevert(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	tests := []struct {
		name  string
		patch domain.Patch
		want  domain.Status
	}{
		{"title change", domain.Patch{Title: domain.Ptr("New")}, domain.StatusPermanent},
		{"body change", domain.Patch{Body: domain.Ptr("rewritten")}, domain.StatusPermanent},
		{"tag only", domain.Patch{Tags: &[]string{"x"}}, domain.StatusExported},
		{"alias only", domain.Patch{Aliases: &[]string{"Older"}}, domain.StatusExported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := mustCreate(t, store, domain.NewItem{
				Kind:   domain.KindNote,
				Title:  "Old",
				Body:   "text",
				Status: domain.StatusExported,
			})

			got, err := store.Update(ctx, note.ID, tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := NewStore(openTestDB(t))

	_, err := store.Update(context.Background(), "missing", domain.Patch{Title: domain.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_InvalidTransitionLeavesItemUnchanged(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	note := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: "Keep"})

	_, err := store.Update(ctx, note.ID, domain.Patch{
		Title:  domain.Ptr("Changed"),
		Status: domain.Ptr(domain.StatusDone),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	reloaded, err := store.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note, reloaded)
}

func TestUpdate_BadDateIsValidationError(t *testing.T) {
	store := NewStore(openTestDB(t))
	task := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask})

	_, err := store.Update(context.Background(), task.ID, domain.Patch{Due: domain.Ptr("next week")})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "due", ve.Field)
	assert.NotErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_ScratchIgnoresScopedFields(t *testing.T) {
	store := NewStore(openTestDB(t))
	scratch := mustCreate(t, store, domain.NewItem{Kind: domain.KindScratch, Body: "jot"})

	got, err := store.Update(context.Background(), scratch.ID, domain.Patch{
		Body:     domain.Ptr("jot more"),
		Tags:     &[]string{"x"},
		Aliases:  &[]string{"y"},
		Priority: domain.Ptr(domain.PriorityHigh),
		Due:      domain.Ptr("2026-05-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, "jot more", got.Body)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.Aliases)
	assert.Empty(t, got.Priority)
	assert.Empty(t, got.Due)
	assert.Empty(t, got.LinkedRef)
}

func TestUpdate_NoteIgnoresTaskFields(t *testing.T) {
	store := NewStore(openTestDB(t))
	note := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote})
	other := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote})

	got, err := store.Update(context.Background(), note.ID, domain.Patch{
		Due:       domain.Ptr("2026-05-01"),
		LinkedRef: domain.Ptr(other.ID),
		Aliases:   &[]string{"alt"},
	})
	require.NoError(t, err)

	assert.Empty(t, got.Due)
	assert.Empty(t, got.LinkedRef)
	assert.Equal(t, []string{"alt"}, got.Aliases)
}

func TestList_TagFilterCountsEachItemOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	for _, title := range []string{"a", "b", "c"} {
		mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: title, Tags: []string{"x", "y"}})
	}
	mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Tags: []string{"x"}})
	mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Tags: []string{"xx"}})

	page, err := store.List(ctx, domain.ListFilter{Kind: domain.KindNote, Tag: "x", Limit: 1})
	require.NoError(t, err)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, "c", page.Items[0].Title, "newest first by default")
}

func TestList_FiltersAndSort(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	low := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "low", Priority: domain.PriorityLow, Due: "2026-03-10"})
	high := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "high", Priority: domain.PriorityHigh})
	done := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "done", Status: domain.StatusDone, Due: "2026-03-01"})
	mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: "note"})

	page, err := store.List(ctx, domain.ListFilter{
		Kind:  domain.KindTask,
		Sort:  domain.SortPriority,
		Order: domain.OrderDesc,
	})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	assert.Equal(t, []string{high.ID, low.ID, done.ID}, ids(page.Items))

	page, err = store.List(ctx, domain.ListFilter{
		Kind:            domain.KindTask,
		ExcludeStatuses: []domain.Status{domain.StatusDone, domain.StatusArchived},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = store.List(ctx, domain.ListFilter{Kind: domain.KindTask, Sort: domain.SortDue, Order: domain.OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{done.ID, low.ID, high.ID}, ids(page.Items), "undated last")

	page, err = store.List(ctx, domain.ListFilter{Status: domain.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, []string{done.ID}, ids(page.Items))
}

func TestList_Paging(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	for range 5 {
		mustCreate(t, store, domain.NewItem{Kind: domain.KindScratch})
	}

	page, err := store.List(ctx, domain.ListFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 5, page.Total)

	_, err = store.List(ctx, domain.ListFilter{Limit: 500})
	assert.True(t, domain.IsValidation(err))
}

func TestDerivedFields(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	note := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: "Garden plan"})
	mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "Buy seeds", LinkedRef: note.ID})
	mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "Old", LinkedRef: note.ID, Status: domain.StatusArchived})
	task := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "Dig", LinkedRef: note.ID})

	got, err := store.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LinkedTaskCount)
	assert.Equal(t, "Garden plan", task.LinkedNoteTitle)
	assert.Empty(t, got.ShareVisibility)

	_, err = store.Share(ctx, note.ID, domain.VisibilityUnlisted)
	require.NoError(t, err)
	_, err = store.Share(ctx, note.ID, domain.VisibilityPublic)
	require.NoError(t, err)

	got, err = store.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPublic, got.ShareVisibility)

	_, err = store.Update(ctx, task.ID, domain.Patch{Status: domain.Ptr(domain.StatusArchived)})
	require.NoError(t, err)
	got, err = store.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LinkedTaskCount)
}

func TestShare_Validation(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	note := mustCreate(t, store, domain.NewItem{})

	_, err := store.Share(ctx, note.ID, "secret")
	assert.True(t, domain.IsValidation(err))

	_, err = store.Share(ctx, "missing", domain.VisibilityPublic)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	link, err := store.Share(ctx, note.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityUnlisted, link.Visibility)
	assert.NotEmpty(t, link.Token)

	removed, err := store.Unshare(ctx, link.Token)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := store.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ShareVisibility)
}

func TestDelete_CascadesShareLinksAndIndex(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewStore(db)
	index := NewSearchIndex(db)

	note := mustCreate(t, store, domain.NewItem{Title: "Compost notes"})
	link, err := store.Share(ctx, note.ID, domain.VisibilityPublic)
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var links int
	require.NoError(t, db.db.QueryRow(`SELECT COUNT(*) FROM share_links WHERE token = ?`, link.Token).Scan(&links))
	assert.Zero(t, links)

	found, err := index.Query(ctx, "compost", 10)
	require.NoError(t, err)
	assert.Empty(t, found)

	deleted, err = store.Delete(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestUpdate_ClearTaskFields(t *testing.T) {
	store := NewStore(openTestDB(t))
	task := mustCreate(t, store, domain.NewItem{
		Kind:     domain.KindTask,
		Title:    "Book venue",
		Priority: domain.PriorityHigh,
		Due:      "2026-04-01",
	})

	got, err := store.Update(context.Background(), task.ID, domain.Patch{
		Priority: domain.Ptr(domain.PriorityNone),
		Due:      domain.Ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityNone, got.Priority)
	assert.Equal(t, "", got.Due)
	assert.Equal(t, "Book venue", got.Title)
}

func TestUpdate_ScratchEmptyScopedFieldDoesNotBlockEdit(t *testing.T) {
	store := NewStore(openTestDB(t))
	scratch := mustCreate(t, store, domain.NewItem{Kind: domain.KindScratch, Title: "s1"})

	got, err := store.Update(context.Background(), scratch.ID, domain.Patch{
		Title:    domain.Ptr("s2"),
		Priority: domain.Ptr(domain.PriorityNone),
		Due:      domain.Ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "s2", got.Title)
	assert.Empty(t, got.Priority)
}

func TestLinkedTasksAreUnlinkedWhenNoteGoes(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	tests := []struct {
		name   string
		remove func(t *testing.T, noteID string)
	}{
		{"note deleted", func(t *testing.T, noteID string) {
			deleted, err := store.Delete(ctx, noteID)
			require.NoError(t, err)
			require.True(t, deleted)
		}},
		{"note converted to task", func(t *testing.T, noteID string) {
			_, err := store.Update(ctx, noteID, domain.Patch{Kind: domain.Ptr(domain.KindTask)})
			require.NoError(t, err)
		}},
		{"note converted to scratch", func(t *testing.T, noteID string) {
			_, err := store.Update(ctx, noteID, domain.Patch{Kind: domain.Ptr(domain.KindScratch)})
			require.NoError(t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: "Plan"})
			other := mustCreate(t, store, domain.NewItem{Kind: domain.KindNote, Title: "Other"})
			linked := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "Do it", LinkedRef: note.ID})
			kept := mustCreate(t, store, domain.NewItem{Kind: domain.KindTask, Title: "Keep", LinkedRef: other.ID})

			tt.remove(t, note.ID)

			got, err := store.Get(ctx, linked.ID)
			require.NoError(t, err)
			assert.Empty(t, got.LinkedRef)
			assert.Empty(t, got.LinkedNoteTitle)

			got, err = store.Get(ctx, kept.ID)
			require.NoError(t, err)
			assert.Equal(t, other.ID, got.LinkedRef)
			assert.Equal(t, "Other", got.LinkedNoteTitle)
		})
	}
}
