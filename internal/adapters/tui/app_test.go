package tui

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ruleweaver/internal/adapters/tui/views"
	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

type emptyService struct{}

func (emptyService) Conflicts(context.Context) ([]domain.Conflict, error) { return nil, nil }

func (emptyService) ConflictDiff(context.Context, string) (*domain.Conflict, []domain.DiffLine, error) {
	return nil, nil, errors.New("none")
}

func (emptyService) Resolve(context.Context, reconcile.ResolveRequest) (*domain.Conflict, error) {
	return nil, errors.New("none")
}

type failingEditor struct{}

func (failingEditor) OpenFile(string) error { return errors.New("no editor found") }

func (failingEditor) Command(string) (*exec.Cmd, error) { return nil, errors.New("no editor found") }

func TestApp_HelpToggle(t *testing.T) {
	a := NewApp(context.Background(), emptyService{}, nil)

	a.Update(views.SwitchToHelpMsg{})
	if a.state != ViewHelp {
		t.Fatalf("state = %v, want ViewHelp", a.state)
	}
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc in help returned no command")
	}
	a.Update(cmd())
	if a.state != ViewConflicts {
		t.Errorf("state = %v, want ViewConflicts", a.state)
	}
}

func TestApp_OpenEditorErrors(t *testing.T) {
	tests := []struct {
		name   string
		editor ports.EditorOpener
	}{
		{"no editor", nil},
		{"editor lookup fails", failingEditor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApp(context.Background(), emptyService{}, tt.editor)
			_, cmd := a.Update(views.OpenEditorMsg{Path: "/tmp/AGENTS.md"})
			if cmd == nil {
				t.Fatal("OpenEditorMsg returned no command")
			}
			msg, ok := cmd().(views.EditorFinishedMsg)
			if !ok || msg.Err == nil {
				t.Errorf("command produced %#v, want EditorFinishedMsg with an error", msg)
			}
		})
	}
}
