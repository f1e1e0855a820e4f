package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ruleweaver/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg { return SwitchToConflictsMsg{} }
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("ruleweaver review"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Resolve generated files that were edited by hand"))
	b.WriteString("\n\n")

	b.WriteString(styles.Header.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("↑ / ↓", "Move between conflicts"))
	b.WriteString(helpLine("d / Enter", "Show or hide the diff"))
	b.WriteString(helpLine("p", "Preview the canonical content"))
	b.WriteString("\n")

	b.WriteString(styles.Header.Render("Resolve"))
	b.WriteString("\n")
	b.WriteString(helpLine("o", "Overwrite with canonical content"))
	b.WriteString(helpLine("k", "Keep the edited file"))
	b.WriteString(helpLine("e", "Open the file in $EDITOR"))
	b.WriteString(helpLine("r", "Re-plan and refresh"))
	b.WriteString("\n")

	b.WriteString(styles.Header.Render("Diff"))
	b.WriteString("\n")
	b.WriteString("  " + styles.DiffRemoved.Render("- canonical") + "  " + styles.DiffAdded.Render("+ on disk") + "\n")
	b.WriteString("\n")

	b.WriteString(styles.Header.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
