package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/application"
	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// CaptureKeyMap defines key bindings for the capture view
type CaptureKeyMap struct {
	Submit     key.Binding
	SubmitEdit key.Binding
	Cancel     key.Binding
	Tab        key.Binding
}

var CaptureKeys = CaptureKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "capture"),
	),
	SubmitEdit: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "capture and edit body"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab/shift+tab", "move between fields"),
	),
}

// capture form field positions
const (
	fieldTitle = iota
	fieldKind
	fieldTags
	fieldPriority
	fieldDue
)

// CaptureModel is the model for the capture form
type CaptureModel struct {
	ViewState
	store   ports.ItemStore
	canEdit bool
	form    *InputForm
}

// NewCaptureModel creates a new capture view model. canEdit enables the
// capture-then-edit shortcut when an editor is available.
func NewCaptureModel(store ports.ItemStore, canEdit bool) *CaptureModel {
	return &CaptureModel{
		store:   store,
		canEdit: canEdit,
		form: NewInputForm(
			NewInputField("Title", "What's on your mind?", 500),
			NewInputField("Kind", "note, task or scratch (default note)", 10).WithCheck(checkKind),
			NewInputField("Tags", "comma separated", 200),
			NewInputField("Priority", "low, medium or high (tasks)", 10).WithCheck(checkPriority),
			NewInputField("Due", "YYYY-MM-DD (tasks)", 10).WithCheck(checkDue),
		),
	}
}

// Init initializes the capture view
func (m *CaptureModel) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form for a new capture
func (m *CaptureModel) Reset() {
	m.form.Reset()
	m.ClearMessage()
}

// CaptureErrMsg indicates an error during capture; the form stays open
type CaptureErrMsg struct {
	Err error
}

// Update handles messages for the capture view
func (m *CaptureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case CaptureErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CaptureKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, CaptureKeys.Submit):
			return m, m.capture(false)

		case key.Matches(msg, CaptureKeys.SubmitEdit):
			return m, m.capture(m.canEdit)
		}
	}

	return m, m.form.Update(msg)
}

func checkKind(v string) error {
	_, err := application.ValidateKind("Kind", v)
	return err
}

func checkPriority(v string) error {
	return domain.ValidatePatch(domain.Patch{Priority: domain.Ptr(domain.Priority(v))})
}

func checkDue(v string) error {
	return domain.ValidatePatch(domain.Patch{Due: domain.Ptr(v)})
}

// Input builds the capture request from the form
func (m *CaptureModel) Input() domain.NewItem {
	in := domain.NewItem{
		Title:    m.form.Value(fieldTitle),
		Tags:     application.ParseTags(m.form.Value(fieldTags)),
		Priority: domain.Priority(m.form.Value(fieldPriority)),
		Due:      m.form.Value(fieldDue),
		Origin:   "tui",
	}
	// unknown kinds are passed through so capture reports them
	raw := m.form.Value(fieldKind)
	if kind, ok := domain.ParseKind(raw); ok {
		in.Kind = kind
	} else if raw != "" {
		in.Kind = domain.Kind(raw)
	}
	return in
}

func (m *CaptureModel) capture(thenEdit bool) tea.Cmd {
	in := m.Input()
	return func() tea.Msg {
		res, err := commands.NewCaptureCommand(m.store, in).Execute(context.Background())
		if err != nil {
			return CaptureErrMsg{Err: err}
		}
		if thenEdit {
			return EditBodyMsg{Item: *res.Item}
		}
		return ResultMsg{Message: res.Message}
	}
}

// View renders the capture view
func (m *CaptureModel) View() string {
	v := NewViewBuilder().
		Title("Capture").
		Subtitle("Fields that do not apply to the chosen kind are dropped.")

	for i := range m.form.Fields {
		v.Line(m.form.RenderField(i))
	}
	v.BlankLine().Message(m.Message, m.MessageErr)

	bindings := []key.Binding{CaptureKeys.Tab, CaptureKeys.Submit}
	if m.canEdit {
		bindings = append(bindings, CaptureKeys.SubmitEdit)
	}
	return v.Help(append(bindings, CaptureKeys.Cancel)...).String()
}
