package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel holds a pending resolution until it is confirmed
type ConfirmationModel struct {
	Target     *domain.Conflict
	Resolution domain.Resolution
	Keys       ConfirmKeyMap
}

// NewConfirmationModel creates a confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{Keys: DefaultConfirmKeys}
}

// Ask starts confirming resolution for target
func (m *ConfirmationModel) Ask(target domain.Conflict, resolution domain.Resolution) {
	m.Target = &target
	m.Resolution = resolution
}

// Pending reports whether a prompt is open
func (m *ConfirmationModel) Pending() bool {
	return m.Target != nil
}

// Clear closes the prompt
func (m *ConfirmationModel) Clear() {
	m.Target = nil
	m.Resolution = ""
}

// HandleKeyMsg processes keys while a prompt is open.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm func(domain.Conflict, domain.Resolution) tea.Cmd) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		m.Clear()
		return true, nil
	case key.Matches(msg, m.Keys.Confirm):
		target, resolution := *m.Target, m.Resolution
		m.Clear()
		return true, onConfirm(target, resolution)
	}
	return true, nil
}

// View renders the prompt for the pending resolution
func (m *ConfirmationModel) View() string {
	if m.Target == nil {
		return ""
	}
	question := "Overwrite " + m.Target.FilePath + " with the canonical content?"
	if m.Resolution == domain.ResolveKeepRemote {
		question = "Keep the edited " + m.Target.FilePath + "?"
	}

	var b strings.Builder
	b.WriteString(styles.WarningMsg.Render(question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
