// Package tui is the interactive conflict review screen.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"ruleweaver/internal/adapters/tui/views"
	"ruleweaver/internal/ports"
)

var errNoEditor = errors.New("no editor configured")

// ViewState represents the current view
type ViewState int

const (
	ViewConflicts ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state     ViewState
	conflicts *views.ConflictsModel
	help      *views.HelpModel
}

// NewApp creates a new TUI application. editor may be nil, in which case
// the edit key reports an error.
func NewApp(ctx context.Context, service views.ConflictService, editor ports.EditorOpener) *App {
	return &App{
		editor:    editor,
		state:     ViewConflicts,
		conflicts: views.NewConflictsModel(ctx, service),
		help:      views.NewHelpModel(),
	}
}

// Run starts the program on the alternate screen and blocks until it exits
func Run(ctx context.Context, service views.ConflictService, editor ports.EditorOpener) error {
	p := tea.NewProgram(NewApp(ctx, service, editor), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.conflicts.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.conflicts.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToConflictsMsg:
		a.state = ViewConflicts
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewConflicts
		return a, a.openEditor(msg.Path)
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		_, cmd = a.conflicts.Update(msg)
	}
	return a, cmd
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return views.EditorFinishedMsg{Err: errNoEditor}
		}
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return views.EditorFinishedMsg{Err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return views.EditorFinishedMsg{Err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}
	return a.conflicts.View()
}
