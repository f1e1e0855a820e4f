package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/application"
	"ruleweaver/internal/application/importer"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// ScanCommandResult contains the candidates found by a scan
type ScanCommandResult struct {
	Scan    *domain.ScanResult
	Message string
}

// ScanCommand scans one import source into the session's preview
type ScanCommand struct {
	session   *importer.Session
	clipboard ports.ClipboardReader
	Request   importer.ScanRequest
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(session *importer.Session, req importer.ScanRequest) *ScanCommand {
	return &ScanCommand{
		session: session,
		Request: req,
	}
}

// WithClipboard makes a clipboard scan without text read the system clipboard
func (c *ScanCommand) WithClipboard(r ports.ClipboardReader) *ScanCommand {
	c.clipboard = r
	return c
}

// Validate checks if the scan request is complete
func (c *ScanCommand) Validate() error {
	if _, err := domain.ParseSourceType(string(c.Request.Source)); err != nil {
		return &application.ValidationError{Field: "source", Message: err.Error()}
	}
	switch c.Request.Source {
	case domain.SourceFile, domain.SourceDirectory:
		return application.ValidateRequired("path", c.Request.Path)
	case domain.SourceURL:
		return application.ValidateRequired("url", c.Request.URL)
	}
	return nil
}

// Execute runs the scan command
func (c *ScanCommand) Execute(ctx context.Context) (*ScanCommandResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Request.Source == domain.SourceClipboard && c.Request.Text == "" && c.clipboard != nil {
		text, err := c.clipboard.ReadText()
		if err != nil {
			return nil, err
		}
		c.Request.Text = text
	}
	scan, err := c.session.Scan(ctx, c.Request)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Found %d candidate(s) in %s", len(scan.Candidates), c.Request.Label())
	if n := len(scan.Errors); n > 0 {
		msg += fmt.Sprintf(", %d file(s) could not be read", n)
	}
	return &ScanCommandResult{Scan: scan, Message: msg}, nil
}

// ImportCommandResult contains the import outcome and the optional follow-up sync
type ImportCommandResult struct {
	Result  *domain.ImportExecutionResult
	Sync    *domain.SyncResult
	Message string
}

// ImportCommand imports the candidates of a scanned session
type ImportCommand struct {
	session *importer.Session
	engine  Reconciler
	Options domain.ImportOptions
	// SyncAfter runs a sync when at least one artifact was imported
	SyncAfter bool
}

// NewImportCommand creates a new ImportCommand. engine may be nil when SyncAfter is false.
func NewImportCommand(session *importer.Session, engine Reconciler, opts domain.ImportOptions, syncAfter bool) *ImportCommand {
	return &ImportCommand{
		session:   session,
		engine:    engine,
		Options:   opts,
		SyncAfter: syncAfter,
	}
}

// Validate checks if the import options are valid
func (c *ImportCommand) Validate() error {
	if _, err := domain.ParseConflictMode(string(c.Options.ConflictMode)); err != nil {
		return &application.ValidationError{Field: "conflictMode", Message: err.Error()}
	}
	if c.SyncAfter && c.engine == nil {
		return &application.ValidationError{Field: "sync", Message: "no engine to sync with"}
	}
	return nil
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportCommandResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res, err := c.session.Import(ctx, c.Options)
	if err != nil {
		return nil, err
	}

	out := &ImportCommandResult{Result: res, Message: ImportSummary(res)}
	if c.SyncAfter && len(res.Imported) > 0 {
		sync, err := c.engine.Sync(ctx, domain.TriggerImport)
		if err != nil {
			return out, fmt.Errorf("imported, but sync failed: %w", err)
		}
		out.Sync = sync
		out.Message += "; " + syncMessage(sync, false)
	}
	return out, nil
}

// ImportSummary renders the per-outcome counts of an import
func ImportSummary(res *domain.ImportExecutionResult) string {
	return fmt.Sprintf("Imported %d, skipped %d, %d conflict(s), %d error(s)",
		len(res.Imported), len(res.Skipped), len(res.Conflicts), len(res.Errors))
}
