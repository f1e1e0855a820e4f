package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/domain"
)

// RegisterReadTools adds every tool that leaves the disk untouched
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(statusTool(), statusHandler(svc))
	s.AddTool(summaryTool(), summaryHandler(svc))
	s.AddTool(previewSyncTool(), previewSyncHandler(svc))
	s.AddTool(listConflictsTool(), listConflictsHandler(svc))
	s.AddTool(conflictDiffTool(), conflictDiffHandler(svc))
	s.AddTool(scanTool(), scanHandler(svc))
	s.AddTool(importHistoryTool(), importHistoryHandler(svc))
}

// --- get_status ---

func statusTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List every (artifact, adapter, target) entry with its sync status and expected file path."),
	}, filterParams()...)
	return mcp.NewTool("get_status", opts...)
}

func statusHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := filterArgs(req).Filter()
		if err != nil {
			return toolError(err)
		}
		res, err := commands.NewStatusCommand(svc.Engine, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(res.Entries) == 0 {
			return mcp.NewToolResultText("No entries."), nil
		}

		var sb strings.Builder
		for _, e := range res.Entries {
			fmt.Fprintf(&sb, "%s  %s  %s  %s/%s  %s", e.ID, e.Status, e.Adapter, e.ArtifactType, e.ArtifactName, e.ExpectedPath)
			if e.Detail != "" {
				fmt.Fprintf(&sb, "  (%s)", e.Detail)
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(res.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_summary ---

func summaryTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Count status entries per sync status."),
	}, filterParams()...)
	return mcp.NewTool("get_summary", opts...)
}

func summaryHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := filterArgs(req).Filter()
		if err != nil {
			return toolError(err)
		}
		res, err := commands.NewStatusCommand(svc.Engine, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- preview_sync ---

func previewSyncTool() mcp.Tool {
	return mcp.NewTool("preview_sync",
		mcp.WithDescription("Show which files a sync would write and which conflicts it would leave alone. Writes nothing."),
	)
}

func previewSyncHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewSyncCommand(svc.Engine, domain.TriggerMCP, true).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSync(res)), nil
	}
}

// --- list_conflicts ---

func listConflictsTool() mcp.Tool {
	return mcp.NewTool("list_conflicts",
		mcp.WithDescription("List generated files that were edited outside ruleweaver."),
	)
}

func listConflictsHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		conflicts, err := commands.NewListConflictsCommand(svc.Engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(conflicts) == 0 {
			return mcp.NewToolResultText("No conflicts."), nil
		}
		var sb strings.Builder
		for _, c := range conflicts {
			sb.WriteString(formatConflict(c))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- conflict_diff ---

func conflictDiffTool() mcp.Tool {
	return mcp.NewTool("conflict_diff",
		mcp.WithDescription("Show the line diff of a conflict. Lines starting with - are the canonical content, + the content on disk."),
		mcp.WithString("conflict_id",
			mcp.Description("Conflict id from list_conflicts"),
			mcp.Required(),
		),
	)
}

func conflictDiffHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewDiffCommand(svc.Engine, req.GetString("conflict_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatConflict(*res.Conflict) + "\n\n" + res.Unified), nil
	}
}

// --- scan_source ---

func scanTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Scan an import source and list candidate artifacts. Imports nothing."),
	}, sourceParams()...)
	return mcp.NewTool("scan_source", opts...)
}

func scanHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewScanCommand(svc.NewSession(), scanRequest(req)).WithClipboard(svc.Clipboard).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, c := range res.Scan.Candidates {
			fmt.Fprintf(&sb, "%s  %s  %s  %s", c.ID, c.ArtifactType, c.ProposedName, c.SourcePath)
			if c.DuplicateOf != "" {
				fmt.Fprintf(&sb, "  (same content as %s)", c.DuplicateOf)
			}
			sb.WriteByte('\n')
		}
		for _, e := range res.Scan.Errors {
			fmt.Fprintf(&sb, "error: %s\n", e)
		}
		sb.WriteString(res.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- import_history ---

func importHistoryTool() mcp.Tool {
	return mcp.NewTool("import_history",
		mcp.WithDescription("List recent imports, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return")),
	)
}

func importHistoryHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", svc.HistoryLimit)
		entries, err := commands.NewImportHistoryCommand(svc.History, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No imports yet."), nil
		}
		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "%s  %s %s  imported %d, skipped %d, %d conflict(s), %d error(s)\n",
				e.At.Format("2006-01-02 15:04"), e.SourceType, e.SourceLabel,
				e.Imported, e.Skipped, e.Conflicts, e.Errors)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatConflict(c domain.Conflict) string {
	line := fmt.Sprintf("%s  %s  %s  +%d -%d", c.ID, c.AdapterName, c.FilePath, c.Summary.Added, c.Summary.Removed)
	if c.Suppressed {
		line += "  (kept remote)"
	}
	return line
}

func formatSync(res *commands.SyncCommandResult) string {
	var sb strings.Builder
	for _, p := range res.Result.FilesWritten {
		fmt.Fprintf(&sb, "write  %s\n", p)
	}
	for _, c := range res.Result.Conflicts {
		fmt.Fprintf(&sb, "conflict  %s\n", formatConflict(c))
	}
	for _, e := range res.Result.Errors {
		fmt.Fprintf(&sb, "error  %s: %s\n", e.FilePath, e.Message)
	}
	sb.WriteString(res.Message)
	return sb.String()
}
