package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

// ConflictService is what the review screen needs from the engine
type ConflictService interface {
	Conflicts(ctx context.Context) ([]domain.Conflict, error)
	ConflictDiff(ctx context.Context, conflictID string) (*domain.Conflict, []domain.DiffLine, error)
	Resolve(ctx context.Context, req reconcile.ResolveRequest) (*domain.Conflict, error)
}

// ConflictKeyMap defines key bindings for the conflict list
type ConflictKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Diff      key.Binding
	Preview   key.Binding
	Overwrite key.Binding
	Keep      key.Binding
	Edit      key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// k is taken by keep, so navigation is arrows only
var ConflictKeys = ConflictKeyMap{
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Diff:      key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "diff")),
	Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Overwrite: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overwrite")),
	Keep:      key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "keep")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

const (
	// rows used by the title, status line and help line
	chromeRows   = 8
	diffMaxLines = 40
)

// ConflictsModel lists conflicts and resolves them one at a time
type ConflictsModel struct {
	ViewState

	ctx       context.Context
	service   ConflictService
	conflicts []domain.Conflict
	paginator *Paginator
	diffs     map[string][]domain.DiffLine
	showDiff  bool
	preview   bool
	confirm   ConfirmationModel
	loaded    bool
}

// NewConflictsModel creates the conflict review model
func NewConflictsModel(ctx context.Context, service ConflictService) *ConflictsModel {
	return &ConflictsModel{
		ctx:       ctx,
		service:   service,
		paginator: NewPaginator(10),
		diffs:     make(map[string][]domain.DiffLine),
		confirm:   NewConfirmationModel(),
	}
}

// Init loads the conflict list
func (m *ConflictsModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-plans and fetches the conflict list
func (m *ConflictsModel) Reload() tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		conflicts, err := service.Conflicts(ctx)
		return ConflictsLoadedMsg{Conflicts: conflicts, Err: err}
	}
}

// Selected returns the conflict under the cursor
func (m *ConflictsModel) Selected() (domain.Conflict, bool) {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.conflicts) {
		return domain.Conflict{}, false
	}
	return m.conflicts[i], true
}

// Conflicts returns the loaded conflict list
func (m *ConflictsModel) Conflicts() []domain.Conflict {
	return m.conflicts
}

// SetSize updates the view dimensions and the list window
func (m *ConflictsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	rows := height - chromeRows
	if m.showDiff {
		rows = max(3, rows/3)
	}
	m.paginator.SetPageSize(rows)
}

// Update handles messages for the conflict list
func (m *ConflictsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ConflictsLoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
			return m, nil
		}
		m.conflicts = msg.Conflicts
		m.diffs = make(map[string][]domain.DiffLine)
		m.paginator.SetTotal(len(m.conflicts))
		return m, m.loadDiff()

	case DiffLoadedMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
			return m, nil
		}
		m.diffs[msg.ConflictID] = msg.Lines
		return m, nil

	case ResolvedMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
			return m, m.Reload()
		}
		verb := "Overwrote"
		if msg.Resolution == domain.ResolveKeepRemote {
			verb = "Kept"
		}
		m.SetMessage(fmt.Sprintf("%s %s", verb, msg.Conflict.FilePath), false)
		return m, m.Reload()

	case EditorFinishedMsg:
		if msg.Err != nil {
			m.SetMessage("editor: "+msg.Err.Error(), true)
		}
		return m, m.Reload()

	case tea.KeyMsg:
		if m.confirm.Pending() {
			_, cmd := m.confirm.HandleKeyMsg(msg, m.resolve)
			return m, cmd
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *ConflictsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()
	keys := ConflictKeys

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, keys.Refresh):
		return m.Reload()
	case key.Matches(msg, keys.Up):
		if m.paginator.CursorUp() {
			return m.loadDiff()
		}
	case key.Matches(msg, keys.Down):
		if m.paginator.CursorDown() {
			return m.loadDiff()
		}
	case key.Matches(msg, keys.Diff):
		m.showDiff = !m.showDiff
		m.SetSize(m.Width, m.Height)
		return m.loadDiff()
	case key.Matches(msg, keys.Preview):
		m.preview = !m.preview
		return m.loadDiff()
	}

	selected, ok := m.Selected()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, keys.Overwrite):
		m.confirm.Ask(selected, domain.ResolveOverwrite)
	case key.Matches(msg, keys.Keep):
		m.confirm.Ask(selected, domain.ResolveKeepRemote)
	case key.Matches(msg, keys.Edit):
		path := selected.FilePath
		return func() tea.Msg { return OpenEditorMsg{Path: path} }
	}
	return nil
}

// loadDiff fetches the diff of the selected conflict when it is needed and not cached
func (m *ConflictsModel) loadDiff() tea.Cmd {
	if !m.showDiff && !m.preview {
		return nil
	}
	selected, ok := m.Selected()
	if !ok {
		return nil
	}
	if _, cached := m.diffs[selected.ID]; cached {
		return nil
	}
	ctx, service, id := m.ctx, m.service, selected.ID
	return func() tea.Msg {
		_, lines, err := service.ConflictDiff(ctx, id)
		return DiffLoadedMsg{ConflictID: id, Lines: lines, Err: err}
	}
}

// resolve applies a confirmed resolution. The hash seen by the user is sent
// along so that a file edited in the meantime is refused.
func (m *ConflictsModel) resolve(c domain.Conflict, resolution domain.Resolution) tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		_, err := service.Resolve(ctx, reconcile.ResolveRequest{
			ConflictID:  c.ID,
			CurrentHash: c.CurrentHash,
			Resolution:  resolution,
		})
		return ResolvedMsg{Conflict: c, Resolution: resolution, Err: err}
	}
}

// View renders the conflict list
func (m *ConflictsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Conflicts"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d file(s)", len(m.conflicts))))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.MutedText.Render("Planning…"))
		b.WriteString("\n")
	case len(m.conflicts) == 0:
		b.WriteString(styles.Success.Render("No conflicts. Everything generated matches the canonical store."))
		b.WriteString("\n")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(RenderConflictRow(m.conflicts[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
	}

	if selected, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(renderStatusBar(selected))
		b.WriteString("\n")
	}

	if selected, ok := m.Selected(); ok && (m.showDiff || m.preview) {
		lines, cached := m.diffs[selected.ID]
		b.WriteString("\n")
		switch {
		case !cached:
			b.WriteString(styles.MutedText.Render("Loading diff…"))
		case m.preview:
			b.WriteString(RenderMarkdown(CanonicalText(lines), m.Width-4))
		default:
			legend := styles.DiffRemoved.Render("- canonical") + "  " + styles.DiffAdded.Render("+ on disk")
			b.WriteString(styles.DiffPane.Render(legend + "\n\n" + strings.TrimRight(RenderDiff(lines, diffMaxLines), "\n")))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirm.Pending() {
		b.WriteString(m.confirm.View())
	} else if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}
	b.WriteString("\n")

	keys := ConflictKeys
	b.WriteString(RenderHelpLine(keys.Diff, keys.Overwrite, keys.Keep, keys.Edit, keys.Refresh, keys.Help, keys.Quit))

	return styles.App.Render(b.String())
}

// renderStatusBar shows the adapter, path and diff size of the selected conflict
func renderStatusBar(c domain.Conflict) string {
	stats := fmt.Sprintf("+%d -%d", c.Summary.Added, c.Summary.Removed)
	if c.Suppressed {
		stats += " (kept remote)"
	}
	return styles.StatusBar.Render(
		styles.StatusKey.Render(c.AdapterName) + styles.StatusText.Render(c.FilePath+"  "+stats),
	)
}
