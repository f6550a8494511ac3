package views

import "grove/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// ResultMsg reports the outcome of an action to the browser, which shows
// it and reloads
type ResultMsg struct {
	Message string
	Err     error
}

// Messages for view switching
type SwitchToCaptureMsg struct{}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

type SwitchToDeleteMsg struct {
	Item domain.Item
}

// EditBodyMsg asks the app to edit an item body in $EDITOR
type EditBodyMsg struct {
	Item domain.Item
}

// OpenObsidianMsg asks the app to open an exported note in Obsidian
type OpenObsidianMsg struct {
	Item domain.Item
}
