package views

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/adapters/sqlite"
	"grove/internal/domain"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func newTestStore(t *testing.T) (*sqlite.Store, *sqlite.SearchIndex) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "grove.db"), sqlite.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlite.NewStore(db), sqlite.NewSearchIndex(db)
}

func mustCreate(t *testing.T, store *sqlite.Store, in domain.NewItem) *domain.Item {
	t.Helper()
	item, err := store.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return item
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pump runs cmd and feeds its message back into model, once
func pump(t *testing.T, model tea.Model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	msg := cmd()
	model.Update(msg)
	return msg
}

func keyMsgCtrlE() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyCtrlE}
}
