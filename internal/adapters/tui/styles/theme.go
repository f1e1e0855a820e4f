package styles

import (
	"github.com/charmbracelet/lipgloss"

	"ruleweaver/internal/domain"
)

var (
	// Palette
	Primary   = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"} // Teal
	Secondary = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"} // Green
	Muted     = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"} // Slate
	Warning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"} // Amber
	Error     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"} // Red
	Info      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"} // Blue
	White     = lipgloss.Color("#F8FAFC")

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

	// List rows
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowSuppressed = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Cursor = "▶ "

	// Diff lines
	DiffAdded   = lipgloss.NewStyle().Foreground(Secondary)
	DiffRemoved = lipgloss.NewStyle().Foreground(Error)
	DiffContext = lipgloss.NewStyle().Foreground(Muted)

	DiffPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#1E293B"}).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

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

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Table header for CLI output
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Padding(0, 1)

	Cell = lipgloss.NewStyle().Padding(0, 1)

	// Muted as a ready-made style
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// StatusColor returns the color for a sync status
func StatusColor(status domain.SyncStatus) lipgloss.TerminalColor {
	switch status {
	case domain.StatusSynced:
		return Secondary
	case domain.StatusOutOfDate, domain.StatusMissing:
		return Warning
	case domain.StatusConflicted, domain.StatusError:
		return Error
	case domain.StatusUnsupported:
		return Muted
	default:
		return Info
	}
}

// Status renders a status name in its color
func Status(status domain.SyncStatus) string {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Render(string(status))
}
