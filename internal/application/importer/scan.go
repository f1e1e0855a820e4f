// Package importer finds importable rules, commands and skills in external
// sources and turns them into canonical artifacts.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// Scan limits
const (
	DefaultMaxFileSize   int64 = 10 * 1024 * 1024
	DefaultMaxCandidates       = 1000
)

// SupportedExtensions are read by file and directory scans
var SupportedExtensions = []string{".md", ".txt", ".json", ".yaml", ".yml"}

// Scanner reads the five import sources
type Scanner struct {
	store         ports.ArtifactStore
	registry      ports.AdapterRegistry
	fetcher       ports.URLFetcher
	home          string
	roots         []string
	maxFileSize   int64
	maxCandidates int
}

// ScannerOption configures a Scanner
type ScannerOption func(*Scanner)

// WithFetcher enables URL scans
func WithFetcher(f ports.URLFetcher) ScannerOption {
	return func(s *Scanner) { s.fetcher = f }
}

// WithRepositoryRoots adds local roots probed by AI-tool scans
func WithRepositoryRoots(roots ...string) ScannerOption {
	return func(s *Scanner) { s.roots = append(s.roots, roots...) }
}

// WithLimits overrides the per-file size and candidate limits
func WithLimits(maxFileSize int64, maxCandidates int) ScannerOption {
	return func(s *Scanner) {
		if maxFileSize > 0 {
			s.maxFileSize = maxFileSize
		}
		if maxCandidates > 0 {
			s.maxCandidates = maxCandidates
		}
	}
}

// NewScanner creates a scanner. store is used to flag duplicate content.
func NewScanner(store ports.ArtifactStore, reg ports.AdapterRegistry, home string, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		store:         store,
		registry:      reg,
		home:          home,
		maxFileSize:   DefaultMaxFileSize,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// collector accumulates candidates and non-fatal errors for one scan
type collector struct {
	result domain.ScanResult
	limit  int
	full   bool
}

func (c *collector) add(cand domain.ImportCandidate) bool {
	if len(c.result.Candidates) >= c.limit {
		if !c.full {
			c.full = true
			c.result.Errors = append(c.result.Errors, fmt.Sprintf("candidate limit of %d reached; remaining files were not scanned", c.limit))
		}
		return false
	}
	c.result.Candidates = append(c.result.Candidates, cand)
	return true
}

func (c *collector) fail(source string, err error) {
	c.result.Errors = append(c.result.Errors, (&application.ScanError{Source: source, Err: err}).Error())
}

// source describes where a document came from
type source struct {
	Type  domain.SourceType
	Label string
	Path  string
	Tools []domain.AdapterID
	Scope domain.Scope
	Root  string
}

// ScanFile parses one file
func (s *Scanner) ScanFile(ctx context.Context, path string) (*domain.ScanResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &application.IOError{Op: "resolve", Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &application.IOError{Op: "stat", Path: abs, Err: err}
	}
	if info.IsDir() {
		return nil, &application.ValidationError{Field: "path", Message: fmt.Sprintf("%s is a directory", abs)}
	}

	c := &collector{limit: s.maxCandidates}
	s.readFile(c, source{Type: domain.SourceFile, Label: filepath.Base(abs), Path: abs}, abs, info)
	return s.finish(ctx, c)
}

// ScanDirectory walks a directory for files with supported extensions.
// Cancelling ctx abandons the walk and returns no candidates.
func (s *Scanner) ScanDirectory(ctx context.Context, dir string) (*domain.ScanResult, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &application.IOError{Op: "resolve", Path: dir, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &application.IOError{Op: "stat", Path: abs, Err: err}
	}
	if !info.IsDir() {
		return nil, &application.ValidationError{Field: "path", Message: fmt.Sprintf("%s is not a directory", abs)}
	}

	c := &collector{limit: s.maxCandidates}
	walkErr := filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			c.fail(p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != abs && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !supportedExt(p) {
			return nil
		}
		if c.full {
			return fs.SkipAll
		}
		fi, err := d.Info()
		if err != nil {
			c.fail(p, err)
			return nil
		}
		rel, _ := filepath.Rel(abs, p)
		s.readFile(c, source{Type: domain.SourceDirectory, Label: rel, Path: p}, p, fi)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return s.finish(ctx, c)
}

// ScanURL fetches a remote document after checking the URL against the import policy
func (s *Scanner) ScanURL(ctx context.Context, rawURL string) (*domain.ScanResult, error) {
	u, err := domain.CheckImportURL(rawURL)
	if err != nil {
		return nil, &application.PolicyViolationError{Reason: err.Error()}
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: URL fetching is not configured", application.ErrUnsupportedSource)
	}

	res, err := s.fetcher.Fetch(ctx, u.String(), s.maxFileSize)
	if err != nil {
		if errors.Is(err, application.ErrPolicyViolation) || ctx.Err() != nil {
			return nil, err
		}
		return nil, &application.IOError{Op: "fetch", Path: u.String(), Err: err}
	}
	if _, err := domain.CheckImportURL(res.FinalURL); err != nil {
		return nil, &application.PolicyViolationError{Reason: "redirected to disallowed URL: " + err.Error()}
	}

	c := &collector{limit: s.maxCandidates}
	if int64(len(res.Body)) > s.maxFileSize {
		c.fail(u.String(), fmt.Errorf("response is larger than %s", humanize.IBytes(uint64(s.maxFileSize))))
		return s.finish(ctx, c)
	}

	final, _ := url.Parse(res.FinalURL)
	base := path.Base(final.Path)
	ext := strings.ToLower(path.Ext(base))
	if !supportedExt(base) {
		ext = ""
	}
	nameHint := domain.SanitizeName(strings.TrimSuffix(base, path.Ext(base)))
	if base == "/" || base == "." || base == "" {
		nameHint = domain.SanitizeName(final.Hostname())
	}

	src := source{Type: domain.SourceURL, Label: final.Host, Path: res.FinalURL}
	s.addDocument(c, src, string(res.Body), ext, inferType(final.Path), nameHint, int64(len(res.Body)))
	return s.finish(ctx, c)
}

// ScanClipboard wraps clipboard text. name is optional.
func (s *Scanner) ScanClipboard(ctx context.Context, text, name string) (*domain.ScanResult, error) {
	c := &collector{limit: s.maxCandidates}
	if strings.TrimSpace(text) == "" {
		c.fail("clipboard", errors.New("clipboard is empty"))
		return s.finish(ctx, c)
	}
	if int64(len(text)) > s.maxFileSize {
		c.fail("clipboard", fmt.Errorf("clipboard text is larger than %s", humanize.IBytes(uint64(s.maxFileSize))))
		return s.finish(ctx, c)
	}

	nameHint := "clipboard-import"
	if strings.TrimSpace(name) != "" {
		nameHint = domain.SanitizeName(name)
	}
	src := source{Type: domain.SourceClipboard, Label: "clipboard", Path: "clipboard"}
	s.addDocument(c, src, text, "", domain.ArtifactRule, nameHint, int64(len(text)))

	// An explicit name wins over names found in a payload
	if strings.TrimSpace(name) != "" && len(c.result.Candidates) == 1 {
		c.result.Candidates[0].Name = nameHint
		c.result.Candidates[0].ProposedName = nameHint
	}
	return s.finish(ctx, c)
}

// ScanAITools probes every adapter's global locations and the local locations
// under the repository roots and the target paths of local artifacts.
func (s *Scanner) ScanAITools(ctx context.Context) (*domain.ScanResult, error) {
	roots, err := s.localRoots(ctx)
	if err != nil {
		return nil, err
	}

	c := &collector{limit: s.maxCandidates}
	for _, p := range toolProbes(s.registry, s.home, roots) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.full {
			break
		}
		s.readProbe(c, p)
	}

	return s.finish(ctx, c)
}

func (s *Scanner) readProbe(c *collector, p probe) {
	info, err := os.Stat(p.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.fail(p.Path, err)
		}
		return
	}

	src := source{Type: domain.SourceAITool, Label: string(p.Tools[0]), Tools: p.Tools, Scope: p.Scope, Root: p.Root}

	switch p.Kind {
	case probeRuleFile:
		if !info.IsDir() {
			src.Path = p.Path
			s.readFile(c, src, p.Path, info)
			return
		}
		// Rule directories such as .clinerules/ hold one markdown file per rule
		s.readDirFiles(c, src, p.Path, func(name string) bool {
			return strings.HasSuffix(strings.ToLower(name), ".md")
		})
	case probeCommandDir:
		ext := "." + p.Ext
		s.readDirFiles(c, src, p.Path, func(name string) bool {
			return strings.HasSuffix(strings.ToLower(name), ext) && !strings.EqualFold(name, domain.CommandStubFileName)
		})
	case probeSkillDir:
		entries, err := os.ReadDir(p.Path)
		if err != nil {
			c.fail(p.Path, err)
			return
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			skillPath := filepath.Join(p.Path, e.Name(), domain.SkillFileName)
			fi, err := os.Stat(skillPath)
			if err != nil {
				continue
			}
			src.Path = skillPath
			s.readFile(c, src, skillPath, fi)
		}
	}
}

func (s *Scanner) readDirFiles(c *collector, src source, dir string, match func(string) bool) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.fail(dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !match(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		fi, err := e.Info()
		if err != nil {
			c.fail(p, err)
			continue
		}
		src.Path = p
		s.readFile(c, src, p, fi)
	}
}

// readFile reads one file into the collector, recording failures instead of returning them
func (s *Scanner) readFile(c *collector, src source, p string, info fs.FileInfo) {
	if info.Size() > s.maxFileSize {
		c.fail(p, fmt.Errorf("file is %s, larger than the %s limit",
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(s.maxFileSize))))
		return
	}
	data, err := os.ReadFile(p)
	if err != nil {
		c.fail(p, err)
		return
	}

	var tool domain.AdapterID
	if len(src.Tools) > 0 {
		tool = src.Tools[0]
	}
	ext := strings.ToLower(filepath.Ext(p))
	if ext == filepath.Base(p) {
		ext = ""
	}
	s.addDocument(c, src, string(data), ext, inferType(p), inferName(p, tool), info.Size())
}

// addDocument parses text and appends one candidate per artifact found
func (s *Scanner) addDocument(c *collector, src source, text, ext string, hint domain.ArtifactType, nameHint string, size int64) {
	items, err := parseDocument(text, ext, hint, nameHint)
	if err != nil {
		if errors.Is(err, errGenerated) {
			slog.Debug("skipping generated file", "path", src.Path)
			return
		}
		c.fail(src.Path, err)
		return
	}

	for i, item := range items {
		name := domain.SanitizeName(item.Name)
		cand := domain.ImportCandidate{
			ID:              domain.CandidateID(src.Type, src.Path, item.Type, name, i),
			SourceType:      src.Type,
			SourceLabel:     src.Label,
			SourcePath:      src.Path,
			ArtifactType:    item.Type,
			Name:            name,
			ProposedName:    name,
			Description:     item.Description,
			Content:         item.Content,
			Scope:           domain.ScopeGlobal,
			EnabledAdapters: item.Adapters,
			ContentHash:     domain.ContentHash(item.Content),
			FileSize:        size,
		}
		if len(src.Tools) > 0 {
			cand.SourceTool = src.Tools[0]
			if len(cand.EnabledAdapters) == 0 {
				cand.EnabledAdapters = append([]domain.AdapterID(nil), src.Tools...)
			}
		}
		if len(cand.EnabledAdapters) == 0 {
			cand.EnabledAdapters = append([]domain.AdapterID(nil), domain.DefaultImportAdapters...)
		}
		if src.Scope == domain.ScopeLocal {
			cand.Scope = domain.ScopeLocal
			cand.TargetPaths = []string{src.Root}
		} else if item.Scope != "" {
			cand.Scope = item.Scope
		}
		if !c.add(cand) {
			return
		}
	}
}

// finish flags duplicates of existing content and orders candidates
func (s *Scanner) finish(ctx context.Context, c *collector) (*domain.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existing, err := s.store.ListArtifacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	byHash := make(map[string]string, len(existing))
	for _, a := range existing {
		byHash[string(a.Type)+":"+a.ContentHash()] = a.Name
	}
	for i := range c.result.Candidates {
		cand := &c.result.Candidates[i]
		cand.DuplicateOf = byHash[string(cand.ArtifactType)+":"+cand.ContentHash]
	}
	disambiguateNames(c.result.Candidates)

	sort.SliceStable(c.result.Candidates, func(i, j int) bool {
		a, b := c.result.Candidates[i], c.result.Candidates[j]
		if a.ArtifactType != b.ArtifactType {
			return a.ArtifactType < b.ArtifactType
		}
		return a.ProposedName < b.ProposedName
	})

	result := c.result
	return &result, nil
}

// localRoots merges configured roots with the target paths of local artifacts
func (s *Scanner) localRoots(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var roots []string
	add := func(root string) {
		root = filepath.Clean(root)
		if root != "" && !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	for _, r := range s.roots {
		add(r)
	}

	artifacts, err := s.store.ListArtifacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	for _, a := range artifacts {
		if a.Scope == domain.ScopeLocal {
			for _, p := range a.TargetPaths {
				add(p)
			}
		}
	}
	sort.Strings(roots)
	return roots, nil
}

// disambiguateNames gives every candidate of a type a distinct proposed name.
// Names found in several tools become name-tool; other repeats get a numeric suffix.
func disambiguateNames(cands []domain.ImportCandidate) {
	counts := make(map[string]int)
	key := func(c domain.ImportCandidate) string {
		return string(c.ArtifactType) + ":" + strings.ToLower(c.Name)
	}
	for _, c := range cands {
		counts[key(c)]++
	}

	taken := make(map[string]bool)
	for i := range cands {
		c := &cands[i]
		name := c.Name
		if counts[key(*c)] > 1 && c.SourceTool != "" {
			name = c.Name + "-" + string(c.SourceTool)
		}
		typed := make(map[string]bool)
		prefix := string(c.ArtifactType) + ":"
		for k := range taken {
			if strings.HasPrefix(k, prefix) {
				typed[strings.TrimPrefix(k, prefix)] = true
			}
		}
		name = domain.MakeUniqueName(name, typed)
		taken[prefix+strings.ToLower(name)] = true
		c.ProposedName = name
	}
}

func supportedExt(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func skipDir(name string) bool {
	return name == ".git" || name == "node_modules" || name == "vendor"
}
