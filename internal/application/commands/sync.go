package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/domain"
)

// SyncCommandResult wraps the engine result with a message
type SyncCommandResult struct {
	Result  *domain.SyncResult
	DryRun  bool
	Message string
}

// SyncCommand writes every missing or out-of-date file, or previews the writes
type SyncCommand struct {
	engine  Reconciler
	Trigger domain.SyncTrigger
	DryRun  bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(engine Reconciler, trigger domain.SyncTrigger, dryRun bool) *SyncCommand {
	return &SyncCommand{
		engine:  engine,
		Trigger: trigger,
		DryRun:  dryRun,
	}
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context) (*SyncCommandResult, error) {
	var (
		res *domain.SyncResult
		err error
	)
	if c.DryRun {
		res, err = c.engine.PreviewSync(ctx)
	} else {
		trigger := c.Trigger
		if trigger == "" {
			trigger = domain.TriggerManual
		}
		res, err = c.engine.Sync(ctx, trigger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sync: %w", err)
	}

	return &SyncCommandResult{
		Result:  res,
		DryRun:  c.DryRun,
		Message: syncMessage(res, c.DryRun),
	}, nil
}

func syncMessage(res *domain.SyncResult, dryRun bool) string {
	verb := "Wrote"
	if dryRun {
		verb = "Would write"
	}
	msg := fmt.Sprintf("%s %d file(s)", verb, len(res.FilesWritten))
	if n := len(res.Conflicts); n > 0 {
		msg += fmt.Sprintf(", %d conflict(s) need review", n)
	}
	if n := len(res.Errors); n > 0 {
		msg += fmt.Sprintf(", %d error(s)", n)
	}
	return msg
}
