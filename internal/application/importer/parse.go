package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ruleweaver/internal/domain"
)

// errGenerated marks files written by the engine itself; they are skipped silently
var errGenerated = errors.New("generated by RuleWeaver")

// parsed is one artifact extracted from a source document
type parsed struct {
	Type        domain.ArtifactType
	Name        string
	Description string
	Content     string
	Scope       domain.Scope
	Adapters    []domain.AdapterID
}

// payload is the structured import format. Target paths are never read from it.
type payload struct {
	Name            string   `json:"name" yaml:"name"`
	Type            string   `json:"type" yaml:"type"`
	Description     string   `json:"description" yaml:"description"`
	Content         string   `json:"content" yaml:"content"`
	Instructions    string   `json:"instructions" yaml:"instructions"`
	Script          string   `json:"script" yaml:"script"`
	Scope           string   `json:"scope" yaml:"scope"`
	EnabledAdapters []string `json:"enabledAdapters" yaml:"enabledAdapters"`
}

type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type tomlCommand struct {
	Description string `toml:"description"`
	Prompt      string `toml:"prompt"`
}

// parseDocument extracts artifacts from text. ext selects the parser; hint is
// the type inferred from the path and nameHint the fallback name.
func parseDocument(text, ext string, hint domain.ArtifactType, nameHint string) ([]parsed, error) {
	if domain.HasGeneratedHeader(text) {
		return nil, errGenerated
	}

	switch strings.ToLower(ext) {
	case ".json":
		return parsePayload(text, hint, nameHint, json.Unmarshal)
	case ".yaml", ".yml":
		return parsePayload(text, hint, nameHint, yaml.Unmarshal)
	case ".toml":
		return parseTOMLCommand(text, nameHint)
	case "":
		// Clipboard and URL bodies have no extension: try a JSON payload first
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			if items, err := parsePayload(text, hint, nameHint, json.Unmarshal); err == nil {
				return items, nil
			}
		}
	}
	return parseMarkdown(text, hint, nameHint)
}

func parseMarkdown(text string, hint domain.ArtifactType, nameHint string) ([]parsed, error) {
	item := parsed{Type: hint, Name: nameHint, Content: strings.TrimSpace(text)}

	if front, body, ok := domain.SplitFrontmatter(text); ok {
		var fm frontmatter
		if err := yaml.Unmarshal([]byte(front), &fm); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
		if fm.Name != "" {
			item.Name = fm.Name
		}
		item.Description = fm.Description
		item.Content = strings.TrimSpace(body)
	}
	return []parsed{item}, nil
}

func parseTOMLCommand(text, nameHint string) ([]parsed, error) {
	var cmd tomlCommand
	if _, err := toml.Decode(text, &cmd); err != nil {
		return nil, fmt.Errorf("invalid TOML command: %w", err)
	}
	prompt := strings.TrimSpace(strings.ReplaceAll(cmd.Prompt, "{{args}}", ""))
	return []parsed{{
		Type:        domain.ArtifactCommand,
		Name:        nameHint,
		Description: cmd.Description,
		Content:     prompt,
	}}, nil
}

func parsePayload(text string, hint domain.ArtifactType, nameHint string, unmarshal func([]byte, any) error) ([]parsed, error) {
	var items []payload

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "- ") {
		if err := unmarshal([]byte(text), &items); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
	} else {
		var single payload
		if err := unmarshal([]byte(text), &single); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		items = []payload{single}
	}

	out := make([]parsed, 0, len(items))
	for i, p := range items {
		item, err := p.toParsed(hint, nameHint)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (p payload) toParsed(hint domain.ArtifactType, nameHint string) (parsed, error) {
	item := parsed{Type: hint, Name: p.Name, Description: p.Description}
	if item.Name == "" {
		item.Name = nameHint
	}

	if p.Type != "" {
		t, err := domain.ParseArtifactType(p.Type)
		if err != nil {
			return parsed{}, err
		}
		item.Type = t
	}

	switch {
	case p.Content != "":
		item.Content = p.Content
	case p.Instructions != "":
		item.Content = p.Instructions
	default:
		item.Content = p.Script
	}
	item.Content = strings.TrimSpace(item.Content)

	if p.Scope != "" {
		scope, err := domain.ParseScope(p.Scope)
		if err != nil {
			return parsed{}, err
		}
		// A local scope without trusted target paths cannot be honoured
		if scope == domain.ScopeGlobal {
			item.Scope = scope
		}
	}
	for _, id := range p.EnabledAdapters {
		if id = strings.TrimSpace(id); id != "" {
			item.Adapters = append(item.Adapters, domain.AdapterID(id))
		}
	}
	return item, nil
}

var genericStems = map[string]bool{
	"agents":        true,
	"commands":      true,
	"gemini":        true,
	"claude":        true,
	"rules":         true,
	"clinerules":    true,
	"cursorrules":   true,
	"windsurfrules": true,
	"skill":         true,
}

// inferName derives a candidate name from a file path
func inferName(path string, tool domain.AdapterID) string {
	base := filepath.Base(path)
	stem := base
	if ext := filepath.Ext(base); ext != base {
		stem = strings.TrimSuffix(base, ext)
	}
	stem = strings.TrimPrefix(stem, ".")

	if strings.EqualFold(base, domain.SkillFileName) {
		stem = filepath.Base(filepath.Dir(path))
	}
	if genericStems[strings.ToLower(stem)] {
		if tool != "" {
			return string(tool) + "-import"
		}
	}
	return domain.SanitizeName(stem)
}

// inferType guesses the artifact type from a path
func inferType(path string) domain.ArtifactType {
	if strings.EqualFold(filepath.Base(path), domain.SkillFileName) {
		return domain.ArtifactSkill
	}
	slashed := filepath.ToSlash(path)
	for _, marker := range []string{"/commands/", "/workflows/", "/Workflows/", "/prompts/"} {
		if strings.Contains(slashed, marker) {
			return domain.ArtifactCommand
		}
	}
	return domain.ArtifactRule
}
