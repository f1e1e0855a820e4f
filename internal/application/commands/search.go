package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// SearchResult is an artifact with its match score
type SearchResult struct {
	Artifact domain.Artifact
	// MatchedIndexes are byte offsets into Artifact.Name
	MatchedIndexes []int
	Score          int
}

// SearchCommand fuzzy-matches artifact names and descriptions
type SearchCommand struct {
	store ports.ArtifactStore
	Query string
	Type  domain.ArtifactType
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(store ports.ArtifactStore, query string, t domain.ArtifactType) *SearchCommand {
	return &SearchCommand{
		store: store,
		Query: query,
		Type:  t,
	}
}

// Execute runs the search command and returns results, best first
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if query == "" {
		return nil, nil
	}

	artifacts, err := c.store.ListArtifacts(ctx, c.Type)
	if err != nil {
		return nil, err
	}
	return FuzzySort(artifacts, query), nil
}

// FuzzySort ranks artifacts by how well their name, or failing that their
// description, matches query. Non-matching artifacts are dropped.
func FuzzySort(artifacts []domain.Artifact, query string) []SearchResult {
	best := make(map[int]SearchResult)

	for _, m := range fuzzy.FindFrom(query, nameSource(artifacts)) {
		best[m.Index] = SearchResult{Artifact: artifacts[m.Index], MatchedIndexes: m.MatchedIndexes, Score: m.Score}
	}
	for _, m := range fuzzy.FindFrom(query, descriptionSource(artifacts)) {
		if _, ok := best[m.Index]; ok {
			continue
		}
		// Description hits rank below any name hit of similar quality
		best[m.Index] = SearchResult{Artifact: artifacts[m.Index], Score: m.Score / 2}
	}

	results := make([]SearchResult, 0, len(best))
	for i := range artifacts {
		if r, ok := best[i]; ok {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

type nameSource []domain.Artifact

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

type descriptionSource []domain.Artifact

func (s descriptionSource) String(i int) string { return s[i].Description }
func (s descriptionSource) Len() int            { return len(s) }
