package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/adapters/tui/views"
	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewCapture
	ViewSearch
	ViewDelete
	ViewHelp
)

// Deps are the services the TUI drives. Editor and Obsidian may be nil,
// which disables body editing and opening exported notes.
type Deps struct {
	Store    ports.ItemStore
	Index    ports.SearchIndex
	Editor   ports.EditorOpener
	Obsidian ports.ObsidianOpener
}

// App is the main TUI application model
type App struct {
	deps Deps

	state   ViewState
	browser *views.BrowserModel
	capture *views.CaptureModel
	search  *views.SearchModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(deps Deps) *App {
	return &App{
		deps:    deps,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(deps.Store),
		capture: views.NewCaptureModel(deps.Store, deps.Editor != nil),
		search:  views.NewSearchModel(deps.Index, deps.Store),
		delete:  views.NewDeleteModel(deps.Store),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.capture.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToCaptureMsg:
		a.state = ViewCapture
		a.capture.Reset()
		return a, a.capture.Init()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Item)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// Action outcomes always land in the browser
	case views.ResultMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.EditBodyMsg:
		a.state = ViewBrowser
		return a, a.editBody(msg.Item)

	case editorFinishedMsg:
		return a, a.saveBody(msg)

	case views.OpenObsidianMsg:
		return a, a.openInObsidian(msg.Item)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewCapture:
		_, cmd = a.capture.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct {
	item domain.Item
	path string
	err  error
}

func resultErr(err error) tea.Cmd {
	return func() tea.Msg {
		return views.ResultMsg{Err: err}
	}
}

func (a *App) editBody(item domain.Item) tea.Cmd {
	if a.deps.Editor == nil {
		return resultErr(fmt.Errorf("no editor configured"))
	}

	path, err := a.deps.Editor.PrepareBuffer(item.ID, item.Body)
	if err != nil {
		return resultErr(err)
	}

	cmd, err := a.deps.Editor.Command(path)
	if err != nil {
		return resultErr(err)
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{item: item, path: path, err: err}
	})
}

// saveBody writes the edited buffer back when it differs from the stored body
func (a *App) saveBody(msg editorFinishedMsg) tea.Cmd {
	return func() tea.Msg {
		body, err := a.deps.Editor.ReadBuffer(msg.path)
		if msg.err != nil {
			return views.ResultMsg{Err: fmt.Errorf("editor exited: %w", msg.err)}
		}
		if err != nil {
			return views.ResultMsg{Err: err}
		}
		if body == msg.item.Body {
			return views.ResultMsg{Message: "Body unchanged"}
		}

		res, err := commands.NewUpdateCommand(a.deps.Store, msg.item.ID, domain.Patch{Body: &body}).
			Execute(context.Background())
		if err != nil {
			return views.ResultMsg{Err: err}
		}
		return views.ResultMsg{Message: res.Message}
	}
}

func (a *App) openInObsidian(item domain.Item) tea.Cmd {
	if a.deps.Obsidian == nil {
		return resultErr(fmt.Errorf("no Obsidian vault configured"))
	}
	return func() tea.Msg {
		if err := a.deps.Obsidian.OpenNote(&item); err != nil {
			return views.ResultMsg{Err: err}
		}
		return views.ResultMsg{Message: "Opened " + item.ID + " in Obsidian"}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCapture:
		return a.capture.View()
	case ViewSearch:
		return a.search.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
