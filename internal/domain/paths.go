package domain

import (
	"path/filepath"
	"strings"
)

// PathResolver turns adapter templates into absolute target paths.
// Home is an explicit input so that resolution is a pure function.
type PathResolver struct {
	Home string
}

// Resolve returns the target path of an artifact for one adapter, kind and repository root.
// Root is ignored for global scope.
func (r PathResolver) Resolve(d AdapterDescriptor, kind OutputKind, scope Scope, root string, a Artifact) string {
	tmpl := d.template(kind, scope)
	if tmpl == "" {
		return ""
	}

	var base string
	if scope == ScopeGlobal {
		base = r.expand(tmpl)
	} else {
		base = filepath.Join(root, tmpl)
	}

	switch kind {
	case OutputSlashCommand:
		return filepath.Join(base, Slugify(a.Name)+"."+d.SlashCommand.Extension)
	case OutputCommandStub:
		return filepath.Join(base, CommandStubFileName)
	case OutputSkill:
		return filepath.Join(base, Slugify(a.Name), SkillFileName)
	}
	return base
}

// expand resolves ~ and home-relative templates
func (r PathResolver) expand(tmpl string) string {
	return ExpandHome(tmpl, r.Home)
}

// ExpandHome expands a leading ~ against home. Relative paths are taken as home relative.
func ExpandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case filepath.IsAbs(path):
		return path
	}
	return filepath.Join(home, path)
}
