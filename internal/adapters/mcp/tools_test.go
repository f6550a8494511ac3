package mcp

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grove/internal/adapters/session"
	"grove/internal/adapters/sqlite"
	"grove/internal/application/commands"
	"grove/internal/domain"
)

type fakeClientSession struct {
	id string
}

func (f *fakeClientSession) Initialize()       {}
func (f *fakeClientSession) Initialized() bool { return true }
func (f *fakeClientSession) SessionID() string { return f.id }
func (f *fakeClientSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return make(chan mcp.JSONRPCNotification, 1)
}

type fixture struct {
	deps  Deps
	store *sqlite.Store
	srv   *server.MCPServer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "grove.db"), sqlite.Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	deps := Deps{
		Store:    store,
		Index:    sqlite.NewSearchIndex(db),
		Sessions: session.NewMemory(session.WithLogger(logger)),
		Logger:   logger,
	}
	return &fixture{deps: deps, store: store, srv: NewServer("grove-test", "0.0.0", deps)}
}

func (f *fixture) ctxFor(user string) context.Context {
	return f.srv.WithContext(context.Background(), &fakeClientSession{id: user})
}

func call(t *testing.T, ctx context.Context, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	res, err := h(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestListNumbersItemsAndResolvesRefs(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctxFor("alice")

	older, err := f.store.Create(ctx, domain.NewItem{Kind: domain.KindTask, Title: "Water plants"})
	require.NoError(t, err)
	_, err = f.store.Create(ctx, domain.NewItem{Kind: domain.KindTask, Title: "Pay rent"})
	require.NoError(t, err)

	out, isErr := call(t, ctx, listHandler(f.deps), map[string]any{"kind": "task"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "#1  [task/active] Pay rent")
	assert.Contains(t, out, "#2  [task/active] Water plants")

	out, isErr = call(t, ctx, statusHandler(f.deps, commandsComplete), map[string]any{"ref": "#2"})
	require.False(t, isErr, out)

	got, err := f.store.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestRefsAreScopedToClientSession(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.ctxFor("alice"), f.ctxFor("bob")

	_, err := f.store.Create(alice, domain.NewItem{Title: "Private thought"})
	require.NoError(t, err)

	_, isErr := call(t, alice, listHandler(f.deps), nil)
	require.False(t, isErr)

	out, isErr := call(t, bob, showHandler(f.deps), map[string]any{"ref": "#1"})
	assert.True(t, isErr)
	assert.Contains(t, out, "list or search again")

	out, isErr = call(t, alice, showHandler(f.deps), map[string]any{"ref": "#1"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Private thought")
}

func TestSearchPopulatesRefs(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctxFor("alice")

	_, err := f.store.Create(ctx, domain.NewItem{Title: "Compost ratios", Body: "browns and greens"})
	require.NoError(t, err)

	out, isErr := call(t, ctx, searchHandler(f.deps), map[string]any{"query": "greens"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "#1  [note/fleeting] Compost ratios")

	out, isErr = call(t, ctx, advanceHandler(f.deps), map[string]any{"ref": "#1"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "fleeting -> developing")

	out, isErr = call(t, ctx, searchHandler(f.deps), map[string]any{"query": `"*`})
	require.False(t, isErr, out)
	assert.Equal(t, "No results.", out)
}

func TestCaptureAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctxFor("alice")

	out, isErr := call(t, ctx, captureHandler(f.deps), map[string]any{
		"kind":     "task",
		"title":    "Book venue",
		"due":      "2026-04-01",
		"priority": "high",
		"tags":     "events, party",
	})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Captured task")

	_, isErr = call(t, ctx, listHandler(f.deps), nil)
	require.False(t, isErr)

	out, isErr = call(t, ctx, convertHandler(f.deps), map[string]any{"ref": "#1", "kind": "scratch"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "to scratch (draft)")

	page, err := f.store.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	item := page.Items[0]
	assert.Empty(t, item.Due)
	assert.Empty(t, item.Priority)
	assert.Empty(t, item.Tags)
	assert.Equal(t, "mcp", item.Origin)

	out, isErr = call(t, ctx, updateHandler(f.deps), map[string]any{
		"ref":  item.ID,
		"body": "call the venue",
		"due":  "2026-05-01",
		"tags": "events",
	})
	require.False(t, isErr, out)

	got, err := f.store.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "call the venue", got.Body)
	assert.Empty(t, got.Due)
	assert.Empty(t, got.Tags)
}

func TestUpdateValidationErrors(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctxFor("alice")
	task, err := f.store.Create(ctx, domain.NewItem{Kind: domain.KindTask, Title: "t"})
	require.NoError(t, err)

	out, isErr := call(t, ctx, updateHandler(f.deps), map[string]any{"ref": task.ID, "due": "04/01"})
	assert.True(t, isErr)
	assert.Contains(t, out, "due")

	out, isErr = call(t, ctx, updateHandler(f.deps), map[string]any{"ref": task.ID, "status": "exported"})
	assert.True(t, isErr)
	assert.Contains(t, out, "not valid for kind")

	out, isErr = call(t, ctx, updateHandler(f.deps), map[string]any{"ref": task.ID})
	assert.True(t, isErr)
	assert.Contains(t, out, "nothing to update")
}

func TestTriageTool(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctxFor("alice")

	for _, body := range []string{"first", "second", "third"} {
		_, err := f.store.Create(ctx, domain.NewItem{Kind: domain.KindScratch, Body: body})
		require.NoError(t, err)
	}
	_, isErr := call(t, ctx, listHandler(f.deps), nil)
	require.False(t, isErr)

	out, isErr := call(t, ctx, triageHandler(f.deps), map[string]any{
		"decisions": []any{"#1=task", "#2=archive", "#3=delete"},
	})
	require.False(t, isErr, out)
	assert.True(t, strings.HasPrefix(out, "Triaged 3 items (0 failed)"), out)
	assert.Contains(t, out, "task/active")
	assert.Contains(t, out, "scratch/archived")

	out, isErr = call(t, ctx, triageHandler(f.deps), map[string]any{"decisions": []any{"#1"}})
	assert.True(t, isErr)
	assert.Contains(t, out, "ref=action")
}

var commandsComplete = commands.NewCompleteCommand
