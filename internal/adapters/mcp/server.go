// Package mcp exposes the reconciliation and import operations as MCP tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/application/importer"
	"ruleweaver/internal/ports"
)

// Services are the dependencies of the tool handlers
type Services struct {
	Engine  commands.Reconciler
	History ports.ImportHistoryStore
	// NewSession returns a fresh import session; every import tool call uses its own
	NewSession func() *importer.Session
	// Clipboard is read when a clipboard scan carries no text; may be nil
	Clipboard    ports.ClipboardReader
	HistoryLimit int
}

// NewServer creates an MCP server with every tool registered
func NewServer(name, version string, svc Services) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	RegisterReadTools(s, svc)
	RegisterWriteTools(s, svc)
	return s
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func filterParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("artifact_type", mcp.Description("Only entries of this type: rule, command or skill")),
		mcp.WithString("artifact_id", mcp.Description("Only entries of this artifact")),
		mcp.WithString("adapter", mcp.Description("Only entries of this adapter id, e.g. codex")),
		mcp.WithString("scope", mcp.Description("global or local")),
		mcp.WithString("repo_root", mcp.Description("Only entries under this repository root")),
		mcp.WithString("status", mcp.Description("synced, out_of_date, missing, conflicted, unsupported or error")),
	}
}

func filterArgs(req mcp.CallToolRequest) commands.FilterArgs {
	return commands.FilterArgs{
		Type:       req.GetString("artifact_type", ""),
		ArtifactID: req.GetString("artifact_id", ""),
		Adapter:    req.GetString("adapter", ""),
		Scope:      req.GetString("scope", ""),
		RepoRoot:   req.GetString("repo_root", ""),
		Status:     req.GetString("status", ""),
	}
}
