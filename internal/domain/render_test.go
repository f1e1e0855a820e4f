package domain

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func testAdapter(format FileFormat) AdapterDescriptor {
	return AdapterDescriptor{
		ID:         "gemini",
		Name:       "Gemini CLI",
		FileFormat: format,
		Capabilities: Capabilities{
			Rules: true, CommandStubs: true, SlashCommands: true, Skills: true,
			GlobalScope: true, LocalScope: true,
		},
		Paths: PathTemplates{
			GlobalRules:    "~/.gemini/GEMINI.md",
			LocalRules:     ".gemini/GEMINI.md",
			GlobalCommands: ".gemini/commands",
			LocalCommands:  ".gemini/commands",
			GlobalSkills:   ".gemini/skills",
			LocalSkills:    ".gemini/skills",
		},
		SlashCommand: SlashCommandFormat{Extension: "toml", ArgumentPattern: "{{args}}"},
	}
}

func rule(name, content string, updated time.Time) Artifact {
	return Artifact{
		ID: "id-" + name, Type: ArtifactRule, Name: name, Content: content,
		Scope: ScopeGlobal, Enabled: true, UpdatedAt: updated,
	}
}

func TestRender_Deterministic(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	artifacts := []Artifact{rule("zeta", "Z body", t1), rule("alpha", "A body", t2)}

	first, err := Render(OutputRule, artifacts, testAdapter(FormatMarkdown))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	reversed := []Artifact{artifacts[1], artifacts[0]}
	second, err := Render(OutputRule, reversed, testAdapter(FormatMarkdown))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Render() not deterministic:\n%s\n---\n%s", first, second)
	}

	out := string(first)
	if !strings.Contains(out, "<!-- Last synced: 2025-04-01T10:00:00Z -->") {
		t.Errorf("expected max updatedAt in header, got:\n%s", out)
	}
	if !strings.Contains(out, "<!-- Artifacts: alpha, zeta -->") {
		t.Errorf("expected provenance line, got:\n%s", out)
	}
	if strings.Index(out, "## alpha") > strings.Index(out, "## zeta") {
		t.Errorf("rules not sorted by name:\n%s", out)
	}
}

func TestRender_CommentStyle(t *testing.T) {
	a := []Artifact{rule("r", "body", time.Unix(0, 0))}

	tests := []struct {
		format FileFormat
		prefix string
	}{
		{FormatMarkdown, "<!-- " + GeneratedMarker + " -->"},
		{FormatPlainText, "# " + GeneratedMarker},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			out, err := Render(OutputRule, a, testAdapter(tt.format))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !strings.HasPrefix(string(out), tt.prefix) {
				t.Errorf("got %q, want prefix %q", out, tt.prefix)
			}
			if !HasGeneratedHeader(string(out)) {
				t.Error("HasGeneratedHeader() = false for rendered output")
			}
		})
	}
}

func TestRender_TOMLCommand(t *testing.T) {
	cmd := Artifact{
		ID: "c1", Type: ArtifactCommand, Name: "Review PR", Description: "Review a pull request",
		Content: "Review the diff carefully.", UpdatedAt: time.Unix(100, 0),
	}

	out, err := Render(OutputSlashCommand, []Artifact{cmd}, testAdapter(FormatMarkdown))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded struct {
		Description string `toml:"description"`
		Prompt      string `toml:"prompt"`
	}
	if _, err := toml.Decode(string(out), &decoded); err != nil {
		t.Fatalf("rendered TOML does not parse: %v\n%s", err, out)
	}
	if decoded.Description != "Review a pull request" {
		t.Errorf("description = %q", decoded.Description)
	}
	if !strings.HasSuffix(decoded.Prompt, "{{args}}") {
		t.Errorf("prompt missing argument pattern: %q", decoded.Prompt)
	}
}

func TestRender_SkillFrontmatterFirst(t *testing.T) {
	skill := Artifact{ID: "s1", Type: ArtifactSkill, Name: "Go Testing", Content: "Use table tests."}

	out, err := Render(OutputSkill, []Artifact{skill}, testAdapter(FormatMarkdown))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	front, body, ok := SplitFrontmatter(string(out))
	if !ok {
		t.Fatalf("expected frontmatter, got:\n%s", out)
	}
	if !strings.Contains(front, "name: go-testing") {
		t.Errorf("frontmatter = %q", front)
	}
	if !HasGeneratedHeader(body) {
		t.Errorf("header should follow frontmatter, body = %q", body)
	}
}

func TestRender_Collision(t *testing.T) {
	a := Artifact{ID: "1", Name: "deploy", Content: "x"}
	b := Artifact{ID: "2", Name: "Deploy", Content: "y"}

	_, err := Render(OutputSlashCommand, []Artifact{a, b}, testAdapter(FormatMarkdown))
	if err == nil {
		t.Fatal("expected collision error")
	}
	if _, ok := err.(*PathCollisionError); !ok {
		t.Errorf("error type = %T, want *PathCollisionError", err)
	}
}

func TestStripGeneratedHeader(t *testing.T) {
	out, err := Render(OutputRule, []Artifact{rule("r", "keep me", time.Unix(0, 0))}, testAdapter(FormatMarkdown))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	stripped := StripGeneratedHeader(string(out))
	if HasGeneratedHeader(stripped) {
		t.Errorf("header still present:\n%s", stripped)
	}
	if !strings.Contains(stripped, "keep me") {
		t.Errorf("body lost:\n%s", stripped)
	}
}
