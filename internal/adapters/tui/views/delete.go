package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store ports.ItemStore
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store ports.ItemStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return ResultMsg{Err: fmt.Errorf("no target selected")}
	}

	res, err := commands.NewDeleteCommand(m.store, m.Target.ID).Execute(context.Background())
	if err != nil {
		return ResultMsg{Err: err}
	}
	return ResultMsg{Message: res.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Confirmation").
		Message("This action cannot be undone!", true).
		Line(RenderTargetInfo(m.Target, "Delete")).
		BlankLine()

	if m.Target != nil && m.Target.Kind == domain.KindNote && m.Target.LinkedTaskCount > 0 {
		v.Muted(fmt.Sprintf("  %d open tasks link to this note.", m.Target.LinkedTaskCount)).BlankLine()
	}
	if m.Target != nil && m.Target.ShareVisibility != "" {
		v.Muted("  Its share links will stop working.").BlankLine()
	}

	return v.Raw(RenderConfirmPrompt("Are you sure?")).String()
}
