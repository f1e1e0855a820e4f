package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// Repository implements ports.ArtifactStore as one markdown file per artifact
// under <root>/{rules,commands,skills}/<id>.md. Metadata lives in YAML frontmatter.
type Repository struct {
	root string
	mu   sync.Mutex
}

var (
	_ ports.ArtifactStore  = (*Repository)(nil)
	_ ports.ArtifactCopier = (*Repository)(nil)
)

// meta is the frontmatter of an artifact file
type meta struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Description     string    `yaml:"description,omitempty"`
	Scope           string    `yaml:"scope"`
	TargetPaths     []string  `yaml:"targetPaths,omitempty"`
	EnabledAdapters []string  `yaml:"enabledAdapters"`
	Enabled         bool      `yaml:"enabled"`
	CreatedAt       time.Time `yaml:"createdAt"`
	UpdatedAt       time.Time `yaml:"updatedAt"`
}

// NewRepository creates a repository rooted at root
func NewRepository(root string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	return &Repository{root: root}
}

// Root returns the repository directory
func (r *Repository) Root() string {
	return r.root
}

func typeDir(t domain.ArtifactType) string {
	return string(t) + "s"
}

func (r *Repository) pathFor(t domain.ArtifactType, id string) string {
	return filepath.Join(r.root, typeDir(t), id+".md")
}

// ListArtifacts reads every artifact file. Unreadable files are an error.
func (r *Repository) ListArtifacts(ctx context.Context, t domain.ArtifactType) ([]domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := domain.ArtifactTypes
	if t != "" {
		types = []domain.ArtifactType{t}
	}

	var out []domain.Artifact
	for _, typ := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := filepath.Join(r.root, typeDir(typ))
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			a, err := readArtifact(filepath.Join(dir, entry.Name()), typ)
			if err != nil {
				return nil, err
			}
			out = append(out, *a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name); li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetArtifact looks the id up in every type directory
func (r *Repository) GetArtifact(_ context.Context, id string) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *Repository) get(id string) (*domain.Artifact, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return nil, &application.NotFoundError{Kind: "artifact", ID: id}
	}
	for _, t := range domain.ArtifactTypes {
		p := r.pathFor(t, id)
		if _, err := os.Stat(p); err == nil {
			return readArtifact(p, t)
		}
	}
	return nil, &application.NotFoundError{Kind: "artifact", ID: id}
}

// CreateArtifact writes a new artifact file
func (r *Repository) CreateArtifact(_ context.Context, in domain.ArtifactInput) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a := domain.Artifact{
		ID:              uuid.NewString(),
		Type:            in.Type,
		Name:            in.Name,
		Description:     in.Description,
		Content:         in.Content,
		Scope:           in.Scope,
		TargetPaths:     in.TargetPaths,
		EnabledAdapters: in.EnabledAdapters,
		Enabled:         in.Enabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.write(a); err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}
	return &a, nil
}

// UpdateArtifact rewrites the artifact file with patch applied
func (r *Repository) UpdateArtifact(_ context.Context, id string, patch domain.ArtifactPatch) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.get(id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*current, time.Now().UTC())
	if err := r.write(updated); err != nil {
		return nil, fmt.Errorf("failed to update artifact: %w", err)
	}
	return &updated, nil
}

// DeleteArtifact removes the artifact file
func (r *Repository) DeleteArtifact(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.get(id)
	if err != nil {
		return err
	}
	if err := os.Remove(r.pathFor(a.Type, id)); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

// SetEnabled toggles whether an artifact is synced
func (r *Repository) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.Artifact, error) {
	return r.UpdateArtifact(ctx, id, domain.ArtifactPatch{Enabled: &enabled})
}

// PutArtifact writes a, keeping its id and timestamps
func (r *Repository) PutArtifact(_ context.Context, a domain.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, err := r.get(a.ID); err == nil && existing.Type != a.Type {
		if err := os.Remove(r.pathFor(existing.Type, a.ID)); err != nil {
			return err
		}
	}
	return r.write(a)
}

// Close is a no-op
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) write(a domain.Artifact) error {
	m := meta{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		Scope:           string(a.Scope),
		TargetPaths:     a.TargetPaths,
		EnabledAdapters: domain.AdapterIDStrings(a.EnabledAdapters),
		Enabled:         a.Enabled,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	front, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(front)
	sb.WriteString("---\n")
	sb.WriteString(a.Content)
	return writeAtomic(r.pathFor(a.Type, a.ID), []byte(sb.String()), 0644)
}

func readArtifact(path string, t domain.ArtifactType) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	front, body, ok := domain.SplitFrontmatter(string(data))
	if !ok {
		return nil, fmt.Errorf("%s: missing frontmatter", path)
	}

	var m meta
	if err := yaml.Unmarshal([]byte(front), &m); err != nil {
		return nil, fmt.Errorf("%s: invalid frontmatter: %w", path, err)
	}
	if m.ID == "" {
		m.ID = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	a := &domain.Artifact{
		ID:          m.ID,
		Type:        t,
		Name:        m.Name,
		Description: m.Description,
		Content:     body,
		Scope:       domain.Scope(m.Scope),
		TargetPaths: m.TargetPaths,
		Enabled:     m.Enabled,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if a.Scope == "" {
		a.Scope = domain.ScopeGlobal
	}
	for _, id := range m.EnabledAdapters {
		a.EnabledAdapters = append(a.EnabledAdapters, domain.AdapterID(id))
	}
	return a, nil
}
