package styles

import (
	"github.com/charmbracelet/lipgloss"

	"grove/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Kind colors
	KindNoteColor    = lipgloss.Color("#6366F1") // Indigo
	KindTaskColor    = lipgloss.Color("#F97316") // Orange
	KindScratchColor = lipgloss.Color("#EC4899") // Pink

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tabs
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Primary).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Item row styles
	ItemRow = lipgloss.NewStyle()

	ItemSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	ItemArchived = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	PriorityHigh = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// KindColor returns the badge color for a kind
func KindColor(kind domain.Kind) lipgloss.Color {
	switch kind {
	case domain.KindNote:
		return KindNoteColor
	case domain.KindTask:
		return KindTaskColor
	case domain.KindScratch:
		return KindScratchColor
	default:
		return Primary
	}
}

// KindBadge renders the short colored kind marker shown in lists
func KindBadge(kind domain.Kind) string {
	label := "?"
	switch kind {
	case domain.KindNote:
		label = "N"
	case domain.KindTask:
		label = "T"
	case domain.KindScratch:
		label = "S"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(KindColor(kind)).Render(label)
}
