package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/adapters/tui/styles"
	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Archived key.Binding
	Capture  key.Binding
	Advance  key.Binding
	Archive  key.Binding
	Convert  key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Obsidian key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next kind"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev kind"),
	),
	Archived: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "show archived"),
	),
	Capture: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "capture"),
	),
	Advance: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "advance"),
	),
	Archive: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "archive"),
	),
	Convert: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "convert"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit body"),
	),
	Obsidian: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in obsidian"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type kindTab struct {
	label string
	kind  domain.Kind
}

var kindTabs = []kindTab{
	{"all", ""},
	{"notes", domain.KindNote},
	{"tasks", domain.KindTask},
	{"scratch", domain.KindScratch},
}

const browserPageSize = 15

// BrowserModel lists items of one kind (or all kinds) with actions on the
// selected item
type BrowserModel struct {
	ViewState
	store        ports.ItemStore
	items        []domain.Item
	total        int
	tab          int
	showArchived bool
	paginator    *Paginator
	loaded       bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(store ports.ItemStore) *BrowserModel {
	return &BrowserModel{
		store:     store,
		paginator: NewPaginator(browserPageSize),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadItems
}

type itemsLoadedMsg struct {
	page *domain.ListPage
}

type errMsg struct {
	err error
}

func (m *BrowserModel) filter() domain.ListFilter {
	f := domain.ListFilter{
		Kind:  kindTabs[m.tab].kind,
		Limit: domain.MaxListLimit,
	}
	if !m.showArchived {
		f.ExcludeStatuses = []domain.Status{domain.StatusArchived}
	}
	return f
}

func (m *BrowserModel) loadItems() tea.Msg {
	res, err := commands.NewListCommand(m.store, m.filter()).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return itemsLoadedMsg{res.Page}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case itemsLoadedMsg:
		m.items = msg.page.Items
		m.total = msg.page.Total
		m.loaded = true
		m.paginator.SetTotal(len(m.items))
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case ResultMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m, m.Reload()

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.paginator.CursorUp()
		return nil

	case key.Matches(msg, BrowserKeys.Down):
		m.paginator.CursorDown()
		return nil

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.paginator.PrevPage()
		return nil

	case key.Matches(msg, BrowserKeys.NextPage):
		m.paginator.NextPage()
		return nil

	case key.Matches(msg, BrowserKeys.NextTab):
		m.switchTab(1)
		return m.Reload()

	case key.Matches(msg, BrowserKeys.PrevTab):
		m.switchTab(-1)
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Archived):
		m.showArchived = !m.showArchived
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Capture):
		return func() tea.Msg { return SwitchToCaptureMsg{} }

	case key.Matches(msg, BrowserKeys.Search):
		return func() tea.Msg { return SwitchToSearchMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	item := m.SelectedItem()
	if item == nil {
		return nil
	}

	switch {
	case key.Matches(msg, BrowserKeys.Advance):
		return m.run(commands.NewAdvanceCommand(m.store, item.ID).Execute)

	case key.Matches(msg, BrowserKeys.Archive):
		return m.run(commands.NewArchiveCommand(m.store, item.ID).Execute)

	case key.Matches(msg, BrowserKeys.Convert):
		target := nextKind(item.Kind)
		return m.run(commands.NewConvertCommand(m.store, item.ID, string(target)).Execute)

	case key.Matches(msg, BrowserKeys.Delete):
		selected := *item
		return func() tea.Msg { return SwitchToDeleteMsg{Item: selected} }

	case key.Matches(msg, BrowserKeys.Copy):
		id := item.ID
		return func() tea.Msg {
			if err := clipboard.WriteAll(id); err != nil {
				return ResultMsg{Err: fmt.Errorf("failed to copy id: %w", err)}
			}
			return ResultMsg{Message: "Copied " + id}
		}

	case key.Matches(msg, BrowserKeys.Edit):
		selected := *item
		return func() tea.Msg { return EditBodyMsg{Item: selected} }

	case key.Matches(msg, BrowserKeys.Obsidian):
		selected := *item
		return func() tea.Msg { return OpenObsidianMsg{Item: selected} }
	}

	return nil
}

// run executes an item command off the update loop and reports the result
func (m *BrowserModel) run(execute func(context.Context) (*commands.UpdateResult, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := execute(context.Background())
		if err != nil {
			return ResultMsg{Err: err}
		}
		return ResultMsg{Message: res.Message}
	}
}

func (m *BrowserModel) switchTab(step int) {
	m.tab = (m.tab + step + len(kindTabs)) % len(kindTabs)
	m.paginator.Reset()
}

// nextKind cycles note -> task -> scratch -> note
func nextKind(k domain.Kind) domain.Kind {
	for i, kind := range domain.Kinds {
		if kind == k {
			return domain.Kinds[(i+1)%len(domain.Kinds)]
		}
	}
	return domain.KindNote
}

// SelectedItem returns the item under the cursor, if any
func (m *BrowserModel) SelectedItem() *domain.Item {
	cursor := m.paginator.Cursor()
	if cursor >= 0 && cursor < len(m.items) {
		return &m.items[cursor]
	}
	return nil
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		return "Loading..."
	}

	v := NewViewBuilder().
		Title("Grove").
		Line(m.renderTabs()).
		BlankLine()

	if len(m.items) == 0 {
		v.Muted("No items. Press c to capture one.")
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderItem(m.items[i], i == m.paginator.Cursor()))
		}
		v.BlankLine().Muted(m.footer())
	}

	v.BlankLine().Message(m.Message, m.MessageErr)

	return v.Help(
		BrowserKeys.Capture, BrowserKeys.Advance, BrowserKeys.Archive,
		BrowserKeys.Convert, BrowserKeys.Delete, BrowserKeys.Search,
		BrowserKeys.Help, BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) renderTabs() string {
	var parts []string
	for i, t := range kindTabs {
		if i == m.tab {
			parts = append(parts, styles.TabActive.Render(t.label))
		} else {
			parts = append(parts, styles.TabInactive.Render(t.label))
		}
	}
	if m.showArchived {
		parts = append(parts, styles.MutedText.Render("(archived shown)"))
	}
	return strings.Join(parts, " ")
}

func (m *BrowserModel) footer() string {
	footer := fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())
	if m.total > len(m.items) {
		footer += fmt.Sprintf(" • showing %d of %d", len(m.items), m.total)
	}
	return footer
}

func (m *BrowserModel) renderItem(item domain.Item, selected bool) string {
	summary := ItemSummary(item)
	if selected {
		return styles.KindBadge(item.Kind) + " " + styles.ItemSelected.Render(summary)
	}
	if item.Status == domain.StatusArchived {
		return styles.KindBadge(item.Kind) + " " + styles.ItemArchived.Render(summary)
	}
	if item.Priority == domain.PriorityHigh {
		return styles.KindBadge(item.Kind) + " " + styles.PriorityHigh.Render(summary)
	}
	return styles.KindBadge(item.Kind) + " " + styles.ItemRow.Render(summary)
}

// ItemSummary renders an item as one unstyled line
func ItemSummary(item domain.Item) string {
	title := item.Title
	if title == "" {
		title = firstLine(item.Body)
	}
	if title == "" {
		title = "(untitled)"
	}

	parts := []string{title, "[" + string(item.Status) + "]"}
	if item.Priority != domain.PriorityNone {
		parts = append(parts, "!"+string(item.Priority))
	}
	if item.Due != "" {
		parts = append(parts, "due "+item.Due)
	}
	if item.LinkedNoteTitle != "" {
		parts = append(parts, "-> "+item.LinkedNoteTitle)
	}
	if item.LinkedTaskCount > 0 {
		parts = append(parts, fmt.Sprintf("(%d tasks)", item.LinkedTaskCount))
	}
	for _, tag := range item.Tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const maxLen = 60
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen]) + "…"
	}
	return s
}

// Reload reloads the current tab, keeping the cursor where possible
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadItems
}
