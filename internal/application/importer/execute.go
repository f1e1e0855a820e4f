package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// Executor turns selected candidates into canonical artifacts
type Executor struct {
	store    ports.ArtifactStore
	history  ports.ImportHistoryStore
	registry ports.AdapterRegistry
	now      func() time.Time
}

// NewExecutor creates an executor. history may be nil.
func NewExecutor(store ports.ArtifactStore, history ports.ImportHistoryStore, reg ports.AdapterRegistry) *Executor {
	return &Executor{store: store, history: history, registry: reg, now: time.Now}
}

// Execute imports the selected candidates. Per-candidate failures are
// reported in the result and never abort the batch.
func (e *Executor) Execute(ctx context.Context, scan *domain.ScanResult, source domain.SourceType, label string, opts domain.ImportOptions) (*domain.ImportExecutionResult, error) {
	mode, err := domain.ParseConflictMode(string(opts.ConflictMode))
	if err != nil {
		return nil, &application.ValidationError{Field: "conflictMode", Message: err.Error()}
	}
	if len(opts.DefaultAdapters) > 0 {
		if err := application.ValidateAdapters("defaultAdapters", opts.DefaultAdapters, e.registry); err != nil {
			return nil, err
		}
	}
	if opts.DefaultScope != "" {
		if _, err := domain.ParseScope(string(opts.DefaultScope)); err != nil {
			return nil, &application.ValidationError{Field: "defaultScope", Message: err.Error()}
		}
	}

	existing, err := e.store.ListArtifacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	names := newNameIndex(existing)

	result := &domain.ImportExecutionResult{}
	selected, missing := selectCandidates(scan.Candidates, opts.SelectedCandidateIDs)
	for _, id := range missing {
		result.Errors = append(result.Errors, domain.ImportError{CandidateID: id, Message: "candidate not found in scan"})
	}
	for _, cand := range selected {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, domain.ImportError{CandidateID: cand.ID, Name: cand.ProposedName, Message: err.Error()})
			continue
		}
		e.importOne(ctx, cand, mode, opts, names, result)
	}

	e.appendHistory(ctx, scan, source, label, mode, result)
	slog.Info("import finished", "source", source, "imported", len(result.Imported),
		"skipped", len(result.Skipped), "conflicts", len(result.Conflicts), "errors", len(result.Errors))
	return result, nil
}

func (e *Executor) importOne(ctx context.Context, cand domain.ImportCandidate, mode domain.ConflictMode, opts domain.ImportOptions, names *nameIndex, result *domain.ImportExecutionResult) {
	name := domain.SanitizeName(cand.ProposedName)
	if strings.TrimSpace(cand.ProposedName) == "" {
		name = domain.SanitizeName(cand.Name)
	}
	fail := func(msg string) {
		result.Errors = append(result.Errors, domain.ImportError{CandidateID: cand.ID, Name: name, Message: msg})
	}

	if strings.TrimSpace(cand.Content) == "" {
		result.Skipped = append(result.Skipped, domain.ImportSkip{CandidateID: cand.ID, Name: name, Reason: "content is empty"})
		return
	}

	in, err := e.inputFor(cand, name, opts)
	if err != nil {
		fail(err.Error())
		return
	}

	matches := names.lookup(cand.ArtifactType, name)
	if len(matches) == 0 {
		e.create(ctx, cand, in, false, names, result)
		return
	}

	switch mode {
	case domain.ConflictSkip:
		result.Skipped = append(result.Skipped, domain.ImportSkip{
			CandidateID: cand.ID,
			Name:        name,
			Reason:      fmt.Sprintf("a %s named %q already exists", cand.ArtifactType, matches[0].Name),
		})
	case domain.ConflictReplace:
		if len(matches) > 1 {
			ids := make([]string, len(matches))
			for i, m := range matches {
				ids[i] = m.ID
			}
			result.Conflicts = append(result.Conflicts, domain.ImportConflict{
				CandidateID: cand.ID,
				Name:        name,
				Reason:      fmt.Sprintf("%d artifacts are named %q", len(matches), name),
				Matches:     ids,
			})
			return
		}
		e.replace(ctx, cand, in, matches[0], result)
	default:
		in.Name = domain.MakeUniqueName(name, names.taken(cand.ArtifactType))
		e.create(ctx, cand, in, true, names, result)
	}
}

// inputFor applies the option overrides to a candidate
func (e *Executor) inputFor(cand domain.ImportCandidate, name string, opts domain.ImportOptions) (domain.ArtifactInput, error) {
	in := domain.ArtifactInput{
		Type:            cand.ArtifactType,
		Name:            name,
		Description:     cand.Description,
		Content:         cand.Content,
		Scope:           cand.Scope,
		TargetPaths:     append([]string(nil), cand.TargetPaths...),
		EnabledAdapters: append([]domain.AdapterID(nil), cand.EnabledAdapters...),
		Enabled:         true,
	}
	if opts.DefaultScope != "" {
		in.Scope = opts.DefaultScope
	}
	if len(opts.DefaultTargetPaths) > 0 {
		in.TargetPaths = append([]string(nil), opts.DefaultTargetPaths...)
	}
	if len(opts.DefaultAdapters) > 0 {
		in.EnabledAdapters = append([]domain.AdapterID(nil), opts.DefaultAdapters...)
	}

	if in.Scope == "" {
		in.Scope = domain.ScopeGlobal
	}
	if in.Scope == domain.ScopeGlobal {
		in.TargetPaths = nil
	}
	if len(in.EnabledAdapters) == 0 {
		in.EnabledAdapters = append([]domain.AdapterID(nil), domain.DefaultImportAdapters...)
	}

	if err := application.ValidateScope(in.Scope, in.TargetPaths); err != nil {
		return domain.ArtifactInput{}, err
	}
	if err := application.ValidateAdapters("enabledAdapters", in.EnabledAdapters, e.registry); err != nil {
		return domain.ArtifactInput{}, err
	}
	return in, nil
}

func (e *Executor) create(ctx context.Context, cand domain.ImportCandidate, in domain.ArtifactInput, renamed bool, names *nameIndex, result *domain.ImportExecutionResult) {
	a, err := e.store.CreateArtifact(ctx, in)
	if err != nil {
		result.Errors = append(result.Errors, domain.ImportError{CandidateID: cand.ID, Name: in.Name, Message: err.Error()})
		return
	}
	names.add(*a)
	result.Imported = append(result.Imported, domain.ImportedArtifact{
		CandidateID: cand.ID,
		ArtifactID:  a.ID,
		Name:        a.Name,
		Type:        a.Type,
		Renamed:     renamed,
	})
}

func (e *Executor) replace(ctx context.Context, cand domain.ImportCandidate, in domain.ArtifactInput, target domain.Artifact, result *domain.ImportExecutionResult) {
	patch := domain.ArtifactPatch{
		Description:     &in.Description,
		Content:         &in.Content,
		Scope:           &in.Scope,
		TargetPaths:     &in.TargetPaths,
		EnabledAdapters: &in.EnabledAdapters,
	}
	a, err := e.store.UpdateArtifact(ctx, target.ID, patch)
	if err != nil {
		result.Errors = append(result.Errors, domain.ImportError{CandidateID: cand.ID, Name: in.Name, Message: err.Error()})
		return
	}
	result.Imported = append(result.Imported, domain.ImportedArtifact{
		CandidateID: cand.ID,
		ArtifactID:  a.ID,
		Name:        a.Name,
		Type:        a.Type,
		Replaced:    true,
	})
}

func (e *Executor) appendHistory(ctx context.Context, scan *domain.ScanResult, source domain.SourceType, label string, mode domain.ConflictMode, result *domain.ImportExecutionResult) {
	if e.history == nil {
		return
	}
	entry := domain.ImportHistoryEntry{
		ID:           uuid.NewString(),
		At:           e.now(),
		SourceType:   source,
		SourceLabel:  label,
		ConflictMode: mode,
		Scanned:      len(scan.Candidates),
		Imported:     len(result.Imported),
		Skipped:      len(result.Skipped),
		Conflicts:    len(result.Conflicts),
		Errors:       len(result.Errors),
		ScanErrors:   len(scan.Errors),
	}
	// The import already happened; a lost audit entry is logged, not returned
	if err := e.history.AppendImportHistory(context.WithoutCancel(ctx), entry); err != nil {
		slog.Warn("failed to record import history", "error", err)
	}
}

// selectCandidates keeps the candidates named in ids, in scan order, and
// returns the requested ids that matched nothing. No ids selects every candidate.
func selectCandidates(cands []domain.ImportCandidate, ids []string) ([]domain.ImportCandidate, []string) {
	if len(ids) == 0 {
		return cands, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	found := make(map[string]bool, len(ids))
	var out []domain.ImportCandidate
	for _, c := range cands {
		if want[c.ID] {
			out = append(out, c)
			found[c.ID] = true
		}
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
			found[id] = true
		}
	}
	return out, missing
}

// nameIndex finds artifacts by type and case-insensitive name
type nameIndex struct {
	byKey map[string][]domain.Artifact
}

func newNameIndex(artifacts []domain.Artifact) *nameIndex {
	idx := &nameIndex{byKey: make(map[string][]domain.Artifact)}
	for _, a := range artifacts {
		idx.add(a)
	}
	return idx
}

func nameKey(t domain.ArtifactType, name string) string {
	return string(t) + ":" + strings.ToLower(name)
}

func (n *nameIndex) add(a domain.Artifact) {
	k := nameKey(a.Type, a.Name)
	n.byKey[k] = append(n.byKey[k], a)
}

func (n *nameIndex) lookup(t domain.ArtifactType, name string) []domain.Artifact {
	return n.byKey[nameKey(t, name)]
}

// taken returns the lower-cased names in use for t
func (n *nameIndex) taken(t domain.ArtifactType) map[string]bool {
	prefix := string(t) + ":"
	out := make(map[string]bool)
	for k := range n.byKey {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = true
		}
	}
	return out
}
