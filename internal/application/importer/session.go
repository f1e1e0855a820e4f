package importer

import (
	"context"
	"fmt"
	"sync"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

// State is the import session state
type State string

const (
	StateIdle         State = "idle"
	StateScanning     State = "scanning"
	StatePreviewReady State = "preview_ready"
	StateImporting    State = "importing"
	StateDone         State = "done"
)

// ScanRequest selects a source. Only the fields of the chosen source are read.
type ScanRequest struct {
	Source domain.SourceType
	Path   string // file or directory
	URL    string
	Text   string // clipboard text
	Name   string // optional clipboard name
}

// Label describes the request for history entries
func (r ScanRequest) Label() string {
	switch r.Source {
	case domain.SourceFile, domain.SourceDirectory:
		return r.Path
	case domain.SourceURL:
		return r.URL
	case domain.SourceClipboard:
		if r.Name != "" {
			return r.Name
		}
		return "clipboard"
	}
	return "installed AI tools"
}

// Session drives one scan-preview-import cycle
type Session struct {
	scanner  *Scanner
	executor *Executor

	mu      sync.Mutex
	state   State
	request ScanRequest
	scan    *domain.ScanResult
	result  *domain.ImportExecutionResult
}

// NewSession creates an idle session
func NewSession(scanner *Scanner, executor *Executor) *Session {
	return &Session{scanner: scanner, executor: executor, state: StateIdle}
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Preview returns the scan awaiting import, or nil
func (s *Session) Preview() *domain.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePreviewReady {
		return nil
	}
	return s.scan
}

// Result returns the outcome of the last import, or nil
func (s *Session) Result() *domain.ImportExecutionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Scan runs a scan and moves to PreviewReady. A failed or cancelled scan
// returns the session to Idle and keeps none of its candidates.
func (s *Session) Scan(ctx context.Context, req ScanRequest) (*domain.ScanResult, error) {
	if err := s.transition(StateScanning, StateIdle, StatePreviewReady, StateDone); err != nil {
		return nil, err
	}

	res, err := s.runScan(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.state = StateIdle
		s.scan = nil
		return nil, err
	}
	s.state = StatePreviewReady
	s.request = req
	s.scan = res
	s.result = nil
	return res, nil
}

func (s *Session) runScan(ctx context.Context, req ScanRequest) (*domain.ScanResult, error) {
	switch req.Source {
	case domain.SourceAITool:
		return s.scanner.ScanAITools(ctx)
	case domain.SourceFile:
		if err := application.ValidateRequired("path", req.Path); err != nil {
			return nil, err
		}
		return s.scanner.ScanFile(ctx, req.Path)
	case domain.SourceDirectory:
		if err := application.ValidateRequired("path", req.Path); err != nil {
			return nil, err
		}
		return s.scanner.ScanDirectory(ctx, req.Path)
	case domain.SourceURL:
		if err := application.ValidateRequired("url", req.URL); err != nil {
			return nil, err
		}
		return s.scanner.ScanURL(ctx, req.URL)
	case domain.SourceClipboard:
		return s.scanner.ScanClipboard(ctx, req.Text, req.Name)
	}
	return nil, fmt.Errorf("%w: %q", application.ErrUnsupportedSource, req.Source)
}

// Import executes the previewed scan and moves to Done. If the import cannot
// start the session returns to Idle.
func (s *Session) Import(ctx context.Context, opts domain.ImportOptions) (*domain.ImportExecutionResult, error) {
	if err := s.transition(StateImporting, StatePreviewReady); err != nil {
		return nil, err
	}
	s.mu.Lock()
	scan, req := s.scan, s.request
	s.mu.Unlock()

	res, err := s.executor.Execute(ctx, scan, req.Source, req.Label(), opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scan = nil
	if err != nil {
		s.state = StateIdle
		return nil, err
	}
	s.state = StateDone
	s.result = res
	return res, nil
}

// Reset discards any preview and returns to Idle
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateScanning || s.state == StateImporting {
		return fmt.Errorf("%w: cannot reset while %s", application.ErrInvalidState, s.state)
	}
	s.state = StateIdle
	s.scan = nil
	s.result = nil
	return nil
}

func (s *Session) transition(to State, from ...State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range from {
		if s.state == f {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move from %s to %s", application.ErrInvalidState, s.state, to)
}
