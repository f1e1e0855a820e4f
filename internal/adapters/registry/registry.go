// Package registry holds the static table of supported AI tools.
package registry

import (
	"sort"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// Adapter ids
const (
	Antigravity domain.AdapterID = "antigravity"
	Gemini      domain.AdapterID = "gemini"
	OpenCode    domain.AdapterID = "opencode"
	Cline       domain.AdapterID = "cline"
	ClaudeCode  domain.AdapterID = "claude-code"
	Codex       domain.AdapterID = "codex"
	Kilo        domain.AdapterID = "kilo"
	Cursor      domain.AdapterID = "cursor"
	Windsurf    domain.AdapterID = "windsurf"
	RooCode     domain.AdapterID = "roocode"
)

var full = domain.Capabilities{
	Rules: true, CommandStubs: true, SlashCommands: true, Skills: true,
	GlobalScope: true, LocalScope: true,
}

var markdownCommands = domain.SlashCommandFormat{Extension: "md"}

var descriptors = []domain.AdapterDescriptor{
	{
		ID:           Antigravity,
		Name:         "Antigravity",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: full,
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.gemini/GEMINI.md",
			LocalRules:     ".gemini/GEMINI.md",
			GlobalCommands: ".gemini/antigravity/global_workflows",
			LocalCommands:  ".agents/workflows",
			GlobalSkills:   ".gemini/antigravity/skills",
			LocalSkills:    ".agents/skills",
		},
		SlashCommand: markdownCommands,
	},
	{
		ID:           Gemini,
		Name:         "Gemini CLI",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: full,
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.gemini/GEMINI.md",
			LocalRules:     ".gemini/GEMINI.md",
			GlobalCommands: ".gemini/commands",
			LocalCommands:  ".gemini/commands",
			GlobalSkills:   ".gemini/skills",
			LocalSkills:    ".gemini/skills",
		},
		SlashCommand: domain.SlashCommandFormat{Extension: "toml", ArgumentPattern: "{{args}}"},
	},
	{
		ID:           OpenCode,
		Name:         "OpenCode",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: full,
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.config/opencode/AGENTS.md",
			LocalRules:     ".config/opencode/AGENTS.md",
			GlobalCommands: ".config/opencode/commands",
			LocalCommands:  ".opencode/commands",
			GlobalSkills:   ".config/opencode/skills",
			LocalSkills:    ".opencode/skills",
		},
		SlashCommand: domain.SlashCommandFormat{Extension: "md", ArgumentPattern: "$ARGUMENTS"},
	},
	{
		ID:         Cline,
		Name:       "Cline",
		FileFormat: domain.FormatPlainText,
		Capabilities: domain.Capabilities{
			Rules: true, CommandStubs: true, SlashCommands: true,
			GlobalScope: true, LocalScope: true,
		},
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.clinerules",
			LocalRules:     ".clinerules",
			GlobalCommands: "Documents/Cline/Workflows",
			LocalCommands:  ".clinerules/workflows",
		},
		SlashCommand: markdownCommands,
	},
	{
		ID:           ClaudeCode,
		Name:         "Claude Code",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: full,
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.claude/CLAUDE.md",
			LocalRules:     ".claude/CLAUDE.md",
			GlobalCommands: ".claude/commands",
			LocalCommands:  ".claude/commands",
			GlobalSkills:   ".claude/skills",
			LocalSkills:    ".claude/skills",
		},
		SlashCommand: domain.SlashCommandFormat{Extension: "md", ArgumentPattern: "$ARGUMENTS"},
	},
	{
		ID:           Codex,
		Name:         "Codex",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: full,
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.codex/AGENTS.md",
			LocalRules:     ".codex/AGENTS.md",
			GlobalCommands: ".codex/prompts",
			LocalCommands:  ".codex/prompts",
			GlobalSkills:   ".codex/skills",
			LocalSkills:    ".codex/skills",
		},
		SlashCommand: markdownCommands,
	},
	{
		ID:           Kilo,
		Name:         "Kilo Code",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: domain.Capabilities{Rules: true, GlobalScope: true, LocalScope: true},
		Paths: domain.PathTemplates{
			GlobalRules: "~/.kilocode/rules/AGENTS.md",
			LocalRules:  ".kilocode/rules/AGENTS.md",
		},
	},
	{
		ID:         Cursor,
		Name:       "Cursor",
		FileFormat: domain.FormatPlainText,
		Capabilities: domain.Capabilities{
			Rules: true, SlashCommands: true, GlobalScope: true, LocalScope: true,
		},
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.cursorrules",
			LocalRules:     ".cursorrules",
			GlobalCommands: ".cursor/commands",
			LocalCommands:  ".cursor/commands",
		},
		SlashCommand: markdownCommands,
	},
	{
		ID:         Windsurf,
		Name:       "Windsurf",
		FileFormat: domain.FormatMarkdown,
		Capabilities: domain.Capabilities{
			Rules: true, Skills: true, GlobalScope: true, LocalScope: true,
		},
		Paths: domain.PathTemplates{
			GlobalRules:  "~/.windsurf/rules/rules.md",
			LocalRules:   ".windsurf/rules/rules.md",
			GlobalSkills: ".windsurf/skills",
			LocalSkills:  ".windsurf/skills",
		},
	},
	{
		ID:           RooCode,
		Name:         "Roo Code",
		FileFormat:   domain.FormatMarkdown,
		Capabilities: full,
		Paths: domain.PathTemplates{
			GlobalRules:    "~/.roo/rules/rules.md",
			LocalRules:     ".roo/rules/rules.md",
			GlobalCommands: ".roo/commands",
			LocalCommands:  ".roo/commands",
			GlobalSkills:   ".roo/skills",
			LocalSkills:    ".roo/skills",
		},
		SlashCommand: markdownCommands,
	},
}

// Registry implements ports.AdapterRegistry over a fixed descriptor table
type Registry struct {
	byID  map[domain.AdapterID]domain.AdapterDescriptor
	order []domain.AdapterDescriptor
}

var _ ports.AdapterRegistry = (*Registry)(nil)

// New returns the built-in registry
func New() *Registry {
	return FromDescriptors(descriptors)
}

// FromDescriptors builds a registry from custom descriptors, sorted by id
func FromDescriptors(ds []domain.AdapterDescriptor) *Registry {
	r := &Registry{byID: make(map[domain.AdapterID]domain.AdapterDescriptor, len(ds))}
	for _, d := range ds {
		r.byID[d.ID] = d
		r.order = append(r.order, d)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i].ID < r.order[j].ID })
	return r
}

// ListAdapters returns all descriptors sorted by id
func (r *Registry) ListAdapters() []domain.AdapterDescriptor {
	return append([]domain.AdapterDescriptor(nil), r.order...)
}

// GetAdapter looks up a descriptor
func (r *Registry) GetAdapter(id domain.AdapterID) (domain.AdapterDescriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}
