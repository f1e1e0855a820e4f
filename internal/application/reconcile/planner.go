package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ruleweaver/internal/domain"
)

// PlannedFile is one target path and everything known about it after classification
type PlannedFile struct {
	Path      string
	Kind      domain.OutputKind
	Scope     domain.Scope
	RepoRoot  string
	Adapters  []domain.AdapterID
	Artifacts []domain.Artifact

	Status domain.SyncStatus
	Detail string

	Expected     []byte
	ExpectedHash string
	// Current is empty when the file is missing or unreadable
	Current     []byte
	CurrentHash string
	Exists      bool

	Conflict *domain.Conflict
}

// Plan is the result of one reconciliation pass
type Plan struct {
	Entries      []domain.StatusEntry
	FilesToWrite []string
	Conflicts    []domain.Conflict
	Files        map[string]*PlannedFile
}

// Entry returns the entry with the given id
func (p *Plan) Entry(id string) (domain.StatusEntry, bool) {
	for _, e := range p.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.StatusEntry{}, false
}

// ConflictByID finds a conflict by id or file path
func (p *Plan) ConflictByID(idOrPath string) (domain.Conflict, bool) {
	for _, c := range p.Conflicts {
		if c.ID == idOrPath || c.FilePath == idOrPath {
			return c, true
		}
	}
	return domain.Conflict{}, false
}

// Plan enumerates every eligible (artifact, adapter, root) triple, renders the
// expected content and classifies each target file. It never writes.
func (e *Engine) Plan(ctx context.Context, filter domain.StatusFilter) (*Plan, error) {
	// Aggregated files need every contributor, so the filter is applied to entries only.
	artifacts, err := e.store.ListArtifacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	written, err := e.state.WrittenRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load write records: %w", err)
	}
	suppressions, err := e.state.Suppressions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppressions: %w", err)
	}

	adapters := make(map[domain.AdapterID]domain.AdapterDescriptor)
	for _, d := range e.registry.ListAdapters() {
		adapters[d.ID] = d
	}

	entries, files := e.enumerate(artifacts, adapters)

	var selected []domain.StatusEntry
	needed := make(map[string]*PlannedFile)
	for _, entry := range entries {
		if !filter.MatchesTarget(entry) {
			continue
		}
		selected = append(selected, entry)
		if pf, ok := files[entry.ExpectedPath]; ok {
			needed[pf.Path] = pf
		}
	}

	if err := e.evaluate(ctx, needed, adapters, written, suppressions); err != nil {
		return nil, err
	}

	plan := &Plan{Files: needed}
	writeSet := make(map[string]bool)
	conflictSet := make(map[string]bool)
	for _, entry := range selected {
		if pf, ok := needed[entry.ExpectedPath]; ok {
			entry.Status = pf.Status
			entry.Detail = pf.Detail
			if rec, ok := written[pf.Path]; ok {
				entry.LastOperation = rec.Operation
				entry.LastOperationAt = rec.WrittenAt
			}
		}
		if !filter.Matches(entry) {
			continue
		}
		plan.Entries = append(plan.Entries, entry)

		pf, ok := needed[entry.ExpectedPath]
		if !ok {
			continue
		}
		switch pf.Status {
		case domain.StatusMissing, domain.StatusOutOfDate:
			if !writeSet[pf.Path] {
				writeSet[pf.Path] = true
				plan.FilesToWrite = append(plan.FilesToWrite, pf.Path)
			}
		case domain.StatusConflicted:
			if !conflictSet[pf.Path] && pf.Conflict != nil {
				conflictSet[pf.Path] = true
				plan.Conflicts = append(plan.Conflicts, *pf.Conflict)
			}
		}
	}

	sort.Strings(plan.FilesToWrite)
	sort.Slice(plan.Conflicts, func(i, j int) bool {
		return plan.Conflicts[i].FilePath < plan.Conflicts[j].FilePath
	})

	slog.Debug("plan computed",
		"entries", len(plan.Entries),
		"files", len(needed),
		"to_write", len(plan.FilesToWrite),
		"conflicts", len(plan.Conflicts))
	return plan, nil
}

// enumerate builds one entry per eligible triple and groups supported entries by target path
func (e *Engine) enumerate(
	artifacts []domain.Artifact,
	adapters map[domain.AdapterID]domain.AdapterDescriptor,
) ([]domain.StatusEntry, map[string]*PlannedFile) {
	sorted := append([]domain.Artifact(nil), artifacts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	var entries []domain.StatusEntry
	files := make(map[string]*PlannedFile)

	for _, a := range sorted {
		if !a.Enabled {
			continue
		}
		for _, id := range uniqueAdapters(a.EnabledAdapters) {
			d, known := adapters[id]
			for _, root := range a.Roots() {
				entry := domain.StatusEntry{
					ArtifactID:   a.ID,
					ArtifactName: a.Name,
					ArtifactType: a.Type,
					Adapter:      id,
					Scope:        a.Scope,
					RepoRoot:     root,
				}

				if !known {
					entry.ID = domain.EntryID(a.ID, id, "unknown:"+root)
					entry.Status = domain.StatusError
					entry.Detail = fmt.Sprintf("adapter %q is not registered", id)
					entries = append(entries, entry)
					continue
				}

				kind, err := d.OutputKindFor(a.Type, a.Scope)
				if err != nil {
					entry.ID = domain.EntryID(a.ID, id, "unsupported:"+root)
					entry.Status = domain.StatusUnsupported
					entry.Detail = err.Error()
					entries = append(entries, entry)
					continue
				}

				path := e.resolver.Resolve(d, kind, a.Scope, root, a)
				entry.ID = domain.EntryID(a.ID, id, path)
				entry.Kind = kind
				entry.ExpectedPath = path
				entries = append(entries, entry)

				pf, ok := files[path]
				if !ok {
					pf = &PlannedFile{Path: path, Kind: kind, Scope: a.Scope, RepoRoot: root}
					files[path] = pf
				}
				pf.addAdapter(id)
				pf.addArtifact(a)
			}
		}
	}
	return entries, files
}

// evaluate renders and classifies each file with bounded parallelism.
// Each goroutine owns exactly one PlannedFile.
func (e *Engine) evaluate(
	ctx context.Context,
	files map[string]*PlannedFile,
	adapters map[domain.AdapterID]domain.AdapterDescriptor,
	written map[string]domain.WrittenRecord,
	suppressions map[string]domain.Suppression,
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for _, pf := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec *domain.WrittenRecord
			if r, ok := written[pf.Path]; ok {
				rec = &r
			}
			var sup *domain.Suppression
			if s, ok := suppressions[pf.Path]; ok {
				sup = &s
			}
			e.evaluateFile(pf, adapters, rec, sup)
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) evaluateFile(
	pf *PlannedFile,
	adapters map[domain.AdapterID]domain.AdapterDescriptor,
	rec *domain.WrittenRecord,
	sup *domain.Suppression,
) {
	// The first adapter by id decides the format of a shared path
	descriptor := adapters[pf.Adapters[0]]

	expected, err := domain.Render(pf.Kind, pf.Artifacts, descriptor)
	if err != nil {
		pf.Status = domain.StatusError
		pf.Detail = err.Error()
		return
	}
	pf.Expected = expected
	pf.ExpectedHash = domain.ContentHash(string(expected))

	current, err := e.fs.ReadFile(pf.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			pf.Status = domain.StatusMissing
			return
		}
		pf.Status = domain.StatusError
		pf.Detail = fmt.Sprintf("read failed: %v", err)
		slog.Warn("target read failed", "path", pf.Path, "err", err)
		return
	}

	pf.Exists = true
	pf.Current = current
	pf.CurrentHash = domain.ContentHash(string(current))
	pf.Status, pf.Detail = classify(pf.CurrentHash, pf.ExpectedHash, rec, domain.HasGeneratedHeader(string(current)))

	if pf.Status != domain.StatusConflicted {
		return
	}

	summary := domain.SummarizeDiff(domain.LineDiff(string(pf.Expected), string(pf.Current)))
	pf.Conflict = &domain.Conflict{
		ID:          domain.ConflictID(pf.Path),
		FilePath:    pf.Path,
		AdapterName: adapterNames(pf.Adapters, adapters),
		AdapterID:   pf.Adapters[0],
		Adapters:    pf.Adapters,
		Scope:       pf.Scope,
		RepoRoot:    pf.RepoRoot,
		LocalHash:   pf.ExpectedHash,
		CurrentHash: pf.CurrentHash,
		Summary:     summary,
	}
	if sup != nil && sup.Holds(pf.CurrentHash, pf.ExpectedHash) {
		pf.Conflict.Suppressed = true
		pf.Detail = "remote version kept; canonical changes are not applied"
	}
}

// classify implements the hash lattice. A missing write record never counts as
// "only the canonical side changed".
func classify(currentHash, expectedHash string, rec *domain.WrittenRecord, hasHeader bool) (domain.SyncStatus, string) {
	if currentHash == expectedHash {
		return domain.StatusSynced, ""
	}
	if rec != nil && rec.Hash == currentHash {
		return domain.StatusOutOfDate, "canonical content changed since last write"
	}
	switch {
	case rec != nil:
		return domain.StatusConflicted, "file was edited after the last write"
	case hasHeader:
		return domain.StatusConflicted, "generated file has no write record"
	default:
		return domain.StatusConflicted, "file exists and was not written by RuleWeaver"
	}
}

func (pf *PlannedFile) addAdapter(id domain.AdapterID) {
	for _, existing := range pf.Adapters {
		if existing == id {
			return
		}
	}
	pf.Adapters = append(pf.Adapters, id)
	sort.Slice(pf.Adapters, func(i, j int) bool { return pf.Adapters[i] < pf.Adapters[j] })
}

func (pf *PlannedFile) addArtifact(a domain.Artifact) {
	for _, existing := range pf.Artifacts {
		if existing.ID == a.ID {
			return
		}
	}
	pf.Artifacts = append(pf.Artifacts, a)
}

func uniqueAdapters(ids []domain.AdapterID) []domain.AdapterID {
	seen := make(map[domain.AdapterID]bool, len(ids))
	out := make([]domain.AdapterID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func adapterNames(ids []domain.AdapterID, adapters map[domain.AdapterID]domain.AdapterDescriptor) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := adapters[id]; ok && d.Name != "" {
			names = append(names, d.Name)
		} else {
			names = append(names, string(id))
		}
	}
	return strings.Join(names, ", ")
}
