package ports

import "os/exec"

// EditorOpener edits item bodies in the user's external editor through a
// temporary buffer file
type EditorOpener interface {
	// OpenFile opens the specified file in the user's preferred editor and waits
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// PrepareBuffer writes content to a fresh temporary file and returns its path
	PrepareBuffer(itemID, content string) (string, error)

	// ReadBuffer returns the edited content and removes the buffer file
	ReadBuffer(path string) (string, error)
}
