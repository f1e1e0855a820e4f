package domain

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GeneratedMarker is the first header line of every file the engine writes
const GeneratedMarker = "Generated by RuleWeaver. Do not edit manually."

const (
	lastSyncedPrefix = "Last synced: "
	artifactsPrefix  = "Artifacts: "
)

// PathCollisionError is returned when several artifacts claim a per-artifact file
type PathCollisionError struct {
	Names []string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("path collision between %s", strings.Join(e.Names, ", "))
}

// Render produces the exact bytes expected at a target path. Output depends only
// on the arguments: the timestamp is the maximum UpdatedAt of the artifacts.
func Render(kind OutputKind, artifacts []Artifact, d AdapterDescriptor) ([]byte, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("nothing to render for %s", d.ID)
	}

	sorted := sortArtifacts(artifacts)
	if !kind.Aggregated() && len(sorted) > 1 {
		return nil, &PathCollisionError{Names: artifactNames(sorted)}
	}

	header := Header(d.FormatFor(kind), sorted)

	switch kind {
	case OutputRule:
		return renderRules(header, sorted), nil
	case OutputCommandStub:
		return renderCommandStub(header, sorted), nil
	case OutputSlashCommand:
		if d.FormatFor(kind) == FormatTOML {
			return renderTOMLCommand(header, sorted[0], d.SlashCommand.ArgumentPattern)
		}
		return renderMarkdownCommand(header, sorted[0], d.SlashCommand.ArgumentPattern)
	case OutputSkill:
		return renderSkill(header, sorted[0])
	}
	return nil, fmt.Errorf("unknown output kind %q", kind)
}

// LastSynced is the maximum UpdatedAt among artifacts, in UTC
func LastSynced(artifacts []Artifact) time.Time {
	var latest time.Time
	for _, a := range artifacts {
		if a.UpdatedAt.After(latest) {
			latest = a.UpdatedAt
		}
	}
	return latest.UTC()
}

// Header builds the generated-file header in the comment syntax of format
func Header(format FileFormat, artifacts []Artifact) string {
	lines := []string{
		GeneratedMarker,
		lastSyncedPrefix + LastSynced(artifacts).Format(time.RFC3339),
		artifactsPrefix + strings.Join(artifactNames(artifacts), ", "),
	}

	var sb strings.Builder
	for _, line := range lines {
		switch format {
		case FormatMarkdown:
			sb.WriteString("<!-- " + line + " -->\n")
		default:
			sb.WriteString("# " + line + "\n")
		}
	}
	return sb.String()
}

// HasGeneratedHeader reports whether content was written by the engine
func HasGeneratedHeader(content string) bool {
	for i, line := range strings.SplitN(content, "\n", 16) {
		if i >= 15 {
			break
		}
		if strings.Contains(line, GeneratedMarker) {
			return true
		}
	}
	return false
}

func renderRules(header string, artifacts []Artifact) []byte {
	var sb strings.Builder
	sb.WriteString(header)
	for _, a := range artifacts {
		sb.WriteString("\n## " + a.Name + "\n\n")
		if body := strings.TrimSpace(a.Content); body != "" {
			sb.WriteString(body + "\n")
		}
	}
	return []byte(sb.String())
}

func renderCommandStub(header string, artifacts []Artifact) []byte {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n# Commands\n")
	for _, a := range artifacts {
		sb.WriteString("\n## /" + Slugify(a.Name) + "\n\n")
		if a.Description != "" {
			sb.WriteString(strings.TrimSpace(a.Description) + "\n\n")
		}
		sb.WriteString(strings.TrimSpace(a.Content) + "\n")
	}
	return []byte(sb.String())
}

type commandFrontmatter struct {
	Description string `yaml:"description,omitempty"`
}

func renderMarkdownCommand(header string, a Artifact, argPattern string) ([]byte, error) {
	var buf bytes.Buffer
	if a.Description != "" {
		if err := writeFrontmatter(&buf, commandFrontmatter{Description: a.Description}); err != nil {
			return nil, err
		}
	}
	buf.WriteString(header)
	buf.WriteString("\n" + commandPrompt(a, argPattern) + "\n")
	return buf.Bytes(), nil
}

type tomlCommand struct {
	Description string `toml:"description,omitempty"`
	Prompt      string `toml:"prompt,multiline"`
}

func renderTOMLCommand(header string, a Artifact, argPattern string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")
	cmd := tomlCommand{Description: a.Description, Prompt: commandPrompt(a, argPattern)}
	if err := toml.NewEncoder(&buf).Encode(cmd); err != nil {
		return nil, fmt.Errorf("failed to encode command %s: %w", a.Name, err)
	}
	return buf.Bytes(), nil
}

// commandPrompt appends the adapter's argument placeholder unless the script already uses it
func commandPrompt(a Artifact, argPattern string) string {
	prompt := strings.TrimSpace(a.Content)
	if argPattern != "" && !strings.Contains(prompt, argPattern) {
		prompt += "\n\n" + argPattern
	}
	return prompt
}

type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func renderSkill(header string, a Artifact) ([]byte, error) {
	desc := a.Description
	if desc == "" {
		desc = a.Name
	}

	var buf bytes.Buffer
	if err := writeFrontmatter(&buf, skillFrontmatter{Name: Slugify(a.Name), Description: desc}); err != nil {
		return nil, err
	}
	buf.WriteString(header)
	buf.WriteString("\n" + strings.TrimSpace(a.Content) + "\n")
	return buf.Bytes(), nil
}

func writeFrontmatter(buf *bytes.Buffer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString("---\n")
	buf.Write(data)
	buf.WriteString("---\n")
	return nil
}

func sortArtifacts(artifacts []Artifact) []Artifact {
	sorted := append([]Artifact(nil), artifacts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func artifactNames(artifacts []Artifact) []string {
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	return names
}
