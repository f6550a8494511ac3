package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener implements ports.EditorOpener
type Opener struct {
	tempDir string
}

// NewOpener creates a new editor opener. Buffers go to os.TempDir when
// tempDir is empty.
func NewOpener(tempDir string) *Opener {
	return &Opener{tempDir: tempDir}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	// $EDITOR may carry flags, e.g. "code --wait"
	fields := strings.Fields(o.findEditor())
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// PrepareBuffer writes content to a new markdown file named after the item
func (o *Opener) PrepareBuffer(itemID, content string) (string, error) {
	f, err := os.CreateTemp(o.tempDir, "grove-"+itemID+"-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create edit buffer: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write edit buffer: %w", err)
	}
	return f.Name(), nil
}

// ReadBuffer reads the edited buffer back and deletes it. Editors
// commonly append a final newline, which is dropped.
func (o *Opener) ReadBuffer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edit buffer: %w", err)
	}
	os.Remove(path)
	return strings.TrimRight(string(data), "\n"), nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	// Check $EDITOR first
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
