package views

import "ruleweaver/internal/domain"

// SwitchToHelpMsg opens the help view
type SwitchToHelpMsg struct{}

// SwitchToConflictsMsg returns to the conflict list
type SwitchToConflictsMsg struct{}

// OpenEditorMsg asks the app to open a file in the editor
type OpenEditorMsg struct {
	Path string
}

// EditorFinishedMsg is sent when the editor process exits
type EditorFinishedMsg struct {
	Err error
}

// ConflictsLoadedMsg carries a freshly planned conflict list
type ConflictsLoadedMsg struct {
	Conflicts []domain.Conflict
	Err       error
}

// DiffLoadedMsg carries the diff for one conflict
type DiffLoadedMsg struct {
	ConflictID string
	Lines      []domain.DiffLine
	Err        error
}

// ResolvedMsg reports the outcome of a resolution
type ResolvedMsg struct {
	Conflict   domain.Conflict
	Resolution domain.Resolution
	Err        error
}
