package importer

import (
	"path/filepath"
	"strings"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// legacyRulePaths are older rule locations still read during AI-tool scans.
// They are relative to the home directory (global) or a repository root (local).
var legacyRulePaths = map[domain.AdapterID][]string{
	"antigravity": {".antigravity/GEMINI.md"},
	"opencode":    {".opencode/AGENTS.md"},
	"codex":       {".agents/AGENTS.md"},
	"kilo":        {".kilo/rules/AGENTS.md"},
	"windsurf":    {".windsurfrules", ".windsurf/rules/AGENTS.md"},
	"roocode":     {".roo/rules/AGENTS.md", ".roocode/rules/AGENTS.md", ".roocode/rules/rules.md"},
}

// probeKind tells the scanner how to read a location
type probeKind int

const (
	probeRuleFile probeKind = iota
	probeCommandDir
	probeSkillDir
)

// probe is one location to inspect during an AI-tool scan
type probe struct {
	Path  string
	Kind  probeKind
	Tools []domain.AdapterID
	Scope domain.Scope
	Root  string
	Ext   string
}

// toolProbes lists global locations under home and local locations under each root.
// Locations shared by several tools are probed once and attributed to all of them.
func toolProbes(reg ports.AdapterRegistry, home string, roots []string) []probe {
	var probes []probe
	index := make(map[string]int)

	add := func(p probe, tool domain.AdapterID) {
		if p.Path == "" {
			return
		}
		if i, ok := index[p.Path]; ok {
			probes[i].Tools = append(probes[i].Tools, tool)
			return
		}
		p.Tools = []domain.AdapterID{tool}
		index[p.Path] = len(probes)
		probes = append(probes, p)
	}

	for _, d := range reg.ListAdapters() {
		global := func(rel string) string { return domain.ExpandHome(rel, home) }
		add(probe{Path: global(d.Paths.GlobalRules), Kind: probeRuleFile, Scope: domain.ScopeGlobal}, d.ID)
		for _, legacy := range legacyRulePaths[d.ID] {
			add(probe{Path: global(legacy), Kind: probeRuleFile, Scope: domain.ScopeGlobal}, d.ID)
		}
		if d.Capabilities.SlashCommands && d.Paths.GlobalCommands != "" {
			add(probe{Path: global(d.Paths.GlobalCommands), Kind: probeCommandDir, Scope: domain.ScopeGlobal, Ext: d.SlashCommand.Extension}, d.ID)
		}
		if d.Capabilities.Skills && d.Paths.GlobalSkills != "" {
			add(probe{Path: global(d.Paths.GlobalSkills), Kind: probeSkillDir, Scope: domain.ScopeGlobal}, d.ID)
		}

		for _, root := range roots {
			local := func(rel string) string {
				if rel == "" {
					return ""
				}
				return filepath.Join(root, strings.TrimPrefix(rel, "~/"))
			}
			add(probe{Path: local(d.Paths.LocalRules), Kind: probeRuleFile, Scope: domain.ScopeLocal, Root: root}, d.ID)
			for _, legacy := range legacyRulePaths[d.ID] {
				add(probe{Path: local(legacy), Kind: probeRuleFile, Scope: domain.ScopeLocal, Root: root}, d.ID)
			}
			if d.Capabilities.SlashCommands && d.Paths.LocalCommands != "" {
				add(probe{Path: local(d.Paths.LocalCommands), Kind: probeCommandDir, Scope: domain.ScopeLocal, Root: root, Ext: d.SlashCommand.Extension}, d.ID)
			}
			if d.Capabilities.Skills && d.Paths.LocalSkills != "" {
				add(probe{Path: local(d.Paths.LocalSkills), Kind: probeSkillDir, Scope: domain.ScopeLocal, Root: root}, d.ID)
			}
		}
	}
	return probes
}
