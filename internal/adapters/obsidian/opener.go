package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"grove/internal/domain"
)

// Opener implements ports.ObsidianOpener. Exported notes live in
// <vault>/<folder>/<file name>.md.
type Opener struct {
	vaultPath string
	vaultName string
	folder    string
}

// NewOpener creates a new Obsidian opener for the given vault path
func NewOpener(vaultPath, folder string) *Opener {
	vaultName := filepath.Base(vaultPath)
	return &Opener{
		vaultPath: vaultPath,
		vaultName: vaultName,
		folder:    folder,
	}
}

// NotePath returns where the exported copy of item is expected in the vault
func (o *Opener) NotePath(item *domain.Item) (string, error) {
	if item.Kind != domain.KindNote || item.Status != domain.StatusExported {
		return "", fmt.Errorf("%s is not an exported note (%s/%s)", item.ID, item.Kind, item.Status)
	}
	return filepath.Join(o.vaultPath, o.folder, FileName(item)+".md"), nil
}

// NoteURI returns the obsidian:// URI of an exported note
func (o *Opener) NoteURI(item *domain.Item) (string, error) {
	path, err := o.NotePath(item)
	if err != nil {
		return "", err
	}
	return o.BuildURI(path)
}

// OpenNote opens an exported note in Obsidian
func (o *Opener) OpenNote(item *domain.Item) error {
	uri, err := o.NoteURI(item)
	if err != nil {
		return err
	}
	return o.openURI(uri)
}

// BuildURI constructs the obsidian:// URI for a given file path
func (o *Opener) BuildURI(filePath string) (string, error) {
	relPath, err := filepath.Rel(o.vaultPath, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}

	if strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("file is outside the vault: %s", filePath)
	}

	// Obsidian expects forward slashes in paths
	relPath = filepath.ToSlash(relPath)

	uri := fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		escape(o.vaultName),
		escape(relPath),
	)

	return uri, nil
}

// FileName derives a vault-safe file name from the item title, falling
// back to the id for untitled notes
func FileName(item *domain.Item) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '#', '^', '[', ']':
			return ' '
		}
		return r
	}, item.Title)
	name = strings.Join(strings.Fields(name), " ")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return item.ID
	}
	return name
}

// escape percent-encodes a query value with %20 for spaces, which Obsidian
// requires instead of '+'
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (o *Opener) openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
