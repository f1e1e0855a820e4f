package domain

import "fmt"

// FileFormat selects the comment syntax and layout of a rendered file
type FileFormat string

const (
	FormatMarkdown  FileFormat = "markdown"
	FormatPlainText FileFormat = "plaintext"
	FormatTOML      FileFormat = "toml"
)

// OutputKind is the kind of file an artifact renders into for one adapter
type OutputKind string

const (
	OutputRule         OutputKind = "rule"
	OutputCommandStub  OutputKind = "command_stub"
	OutputSlashCommand OutputKind = "slash_command"
	OutputSkill        OutputKind = "skill"
)

// Aggregated reports whether several artifacts render into one file
func (k OutputKind) Aggregated() bool {
	return k == OutputRule || k == OutputCommandStub
}

// Capabilities are the adapter's support flags
type Capabilities struct {
	Rules         bool
	CommandStubs  bool
	SlashCommands bool
	Skills        bool
	GlobalScope   bool
	LocalScope    bool
}

// PathTemplates holds per-scope locations. Global templates may start with ~;
// command and skill directories are relative to the home directory (global)
// or the repository root (local).
type PathTemplates struct {
	GlobalRules    string
	LocalRules     string
	GlobalCommands string
	LocalCommands  string
	GlobalSkills   string
	LocalSkills    string
}

// SlashCommandFormat describes per-command files
type SlashCommandFormat struct {
	Extension       string
	ArgumentPattern string
}

// AdapterDescriptor is the static metadata of one AI tool
type AdapterDescriptor struct {
	ID           AdapterID
	Name         string
	FileFormat   FileFormat
	Capabilities Capabilities
	Paths        PathTemplates
	SlashCommand SlashCommandFormat
}

// Command stub and skill file names
const (
	CommandStubFileName = "COMMANDS.md"
	SkillFileName       = "SKILL.md"
)

// UnsupportedError describes a capability mismatch between an artifact and an adapter
type UnsupportedError struct {
	Adapter AdapterID
	Type    ArtifactType
	Scope   Scope
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s %ss", e.Adapter, e.Scope, e.Type)
}

// OutputKindFor maps an artifact type and scope to the output kind this adapter
// produces, or an *UnsupportedError when the capability flags reject it.
func (d AdapterDescriptor) OutputKindFor(t ArtifactType, scope Scope) (OutputKind, error) {
	unsupported := &UnsupportedError{Adapter: d.ID, Type: t, Scope: scope}

	if scope == ScopeGlobal && !d.Capabilities.GlobalScope {
		return "", unsupported
	}
	if scope == ScopeLocal && !d.Capabilities.LocalScope {
		return "", unsupported
	}

	var kind OutputKind
	switch t {
	case ArtifactRule:
		if !d.Capabilities.Rules {
			return "", unsupported
		}
		kind = OutputRule
	case ArtifactCommand:
		switch {
		case d.Capabilities.SlashCommands && d.SlashCommand.Extension != "":
			kind = OutputSlashCommand
		case d.Capabilities.CommandStubs:
			kind = OutputCommandStub
		default:
			return "", unsupported
		}
	case ArtifactSkill:
		if !d.Capabilities.Skills {
			return "", unsupported
		}
		kind = OutputSkill
	default:
		return "", unsupported
	}

	if d.template(kind, scope) == "" {
		return "", unsupported
	}
	return kind, nil
}

// template returns the path template used for kind in scope
func (d AdapterDescriptor) template(kind OutputKind, scope Scope) string {
	global := scope == ScopeGlobal
	switch kind {
	case OutputRule:
		if global {
			return d.Paths.GlobalRules
		}
		return d.Paths.LocalRules
	case OutputCommandStub, OutputSlashCommand:
		if global {
			return d.Paths.GlobalCommands
		}
		return d.Paths.LocalCommands
	case OutputSkill:
		if global {
			return d.Paths.GlobalSkills
		}
		return d.Paths.LocalSkills
	}
	return ""
}

// FormatFor returns the file format used for an output kind
func (d AdapterDescriptor) FormatFor(kind OutputKind) FileFormat {
	switch kind {
	case OutputRule:
		return d.FileFormat
	case OutputSlashCommand:
		if d.SlashCommand.Extension == "toml" {
			return FormatTOML
		}
		return FormatMarkdown
	}
	return FormatMarkdown
}
