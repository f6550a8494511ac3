package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/adapters/tui/styles"
	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy id"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const maxShownResults = 10

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	index   ports.SearchIndex
	store   ports.ItemStore
	input   textinput.Model
	query   string
	results []domain.Item
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel(index ports.SearchIndex, store ports.ItemStore) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search titles and bodies..."
	input.Focus()

	return &SearchModel{
		index: index,
		store: store,
		input: input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.query = ""
	m.results = nil
	m.cursor = 0
	m.input.Focus()
}

type searchResultsMsg struct {
	query   string
	results []domain.Item
	err     error
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// drop answers to queries the user has typed past
		if msg.query != m.query {
			return m, nil
		}
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
		}
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxShownResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				id := m.results[m.cursor].ID
				return m, func() tea.Msg {
					if err := clipboard.WriteAll(id); err != nil {
						return ResultMsg{Err: fmt.Errorf("failed to copy id: %w", err)}
					}
					return ResultMsg{Message: "Copied " + id}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Trigger search on input change
	query := strings.TrimSpace(m.input.Value())
	if query == m.query {
		return m, cmd
	}
	m.query = query
	m.ClearMessage()
	if query == "" {
		m.results = nil
		return m, cmd
	}
	return m, tea.Batch(cmd, m.search(query))
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := commands.NewSearchCommand(m.index, m.store, query, 0).Execute(context.Background())
		if err != nil {
			return searchResultsMsg{query: query, err: err}
		}
		return searchResultsMsg{query: query, results: res.Items}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().
		Title("Search").
		Line(styles.InputFocused.Render(m.input.View())).
		BlankLine().
		Message(m.Message, m.MessageErr)

	switch {
	case len(m.results) > 0:
		v.Raw(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results)))).BlankLine().BlankLine()
		for i, item := range m.results[:min(len(m.results), maxShownResults)] {
			v.Line(m.renderResult(item, i == m.cursor))
		}
		if len(m.results) > maxShownResults {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-maxShownResults))
		}
	case m.query != "":
		v.Muted("No results found")
	default:
		v.Muted("Type to search. Queries shorter than three characters match substrings.")
	}

	return v.BlankLine().Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel).String()
}

func (m *SearchModel) renderResult(item domain.Item, selected bool) string {
	text := ItemSummary(item)
	if selected {
		return styles.KindBadge(item.Kind) + " " + styles.ItemSelected.Render(text)
	}
	return styles.KindBadge(item.Kind) + " " + text
}
