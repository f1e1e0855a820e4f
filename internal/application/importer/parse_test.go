package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleweaver/internal/domain"
)

func TestParseDocument_Payload(t *testing.T) {
	yamlDoc := `
name: Deploy
type: skill
description: release steps
instructions: |
  1. tag
  2. push
scope: local
enabledAdapters: [claude-code, codex]
targetPaths: [/etc]
`
	items, err := parseDocument(yamlDoc, ".yaml", domain.ArtifactRule, "fallback")
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, domain.ArtifactSkill, got.Type)
	assert.Equal(t, "Deploy", got.Name)
	assert.Equal(t, "1. tag\n2. push", got.Content)
	assert.Empty(t, got.Scope, "local scope from a payload is dropped")
	assert.Equal(t, []domain.AdapterID{"claude-code", "codex"}, got.Adapters)
}

func TestParseDocument_PayloadErrors(t *testing.T) {
	_, err := parseDocument(`{"name":"x","type":"macro"}`, ".json", domain.ArtifactRule, "x")
	assert.Error(t, err)

	_, err = parseDocument(`{"name":`, ".json", domain.ArtifactRule, "x")
	assert.Error(t, err)
}

func TestParseDocument_NoExtension(t *testing.T) {
	items, err := parseDocument(`[{"name":"a","content":"1"},{"name":"b","content":"2"}]`, "", domain.ArtifactRule, "x")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Text that only looks like JSON falls back to markdown
	items, err = parseDocument("{not json} just prose", "", domain.ArtifactRule, "note")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "note", items[0].Name)
	assert.Equal(t, "{not json} just prose", items[0].Content)
}

func TestParseDocument_Generated(t *testing.T) {
	text := "# " + domain.GeneratedMarker + "\n\nbody"
	_, err := parseDocument(text, ".md", domain.ArtifactRule, "x")
	assert.ErrorIs(t, err, errGenerated)
}

func TestInferName(t *testing.T) {
	tests := []struct {
		path string
		tool domain.AdapterID
		want string
	}{
		{"/home/dev/notes/go style.md", "", "go-style"},
		{"/home/dev/.claude/CLAUDE.md", "claude-code", "claude-code-import"},
		{"/home/dev/.clinerules", "cline", "cline-import"},
		{"/home/dev/.claude/skills/deploy/SKILL.md", "claude-code", "deploy"},
		{"/home/dev/AGENTS.md", "", "AGENTS"},
		{"/home/dev/.gemini/commands/explain.toml", "gemini", "explain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, inferName(tt.path, tt.tool))
		})
	}
}

func TestInferType(t *testing.T) {
	assert.Equal(t, domain.ArtifactSkill, inferType("/x/skills/a/SKILL.md"))
	assert.Equal(t, domain.ArtifactCommand, inferType("/x/.claude/commands/a.md"))
	assert.Equal(t, domain.ArtifactCommand, inferType("/x/.clinerules/workflows/a.md"))
	assert.Equal(t, domain.ArtifactCommand, inferType("/x/.codex/prompts/a.md"))
	assert.Equal(t, domain.ArtifactRule, inferType("/x/.claude/CLAUDE.md"))
}
