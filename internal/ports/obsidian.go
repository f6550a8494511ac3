package ports

import "grove/internal/domain"

// ObsidianOpener opens exported notes in Obsidian
type ObsidianOpener interface {
	// NoteURI returns the obsidian:// URI of the vault file an exported note was written to
	NoteURI(item *domain.Item) (string, error)

	// OpenNote hands the note's URI to the operating system
	OpenNote(item *domain.Item) error
}
