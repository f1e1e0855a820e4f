package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/application/importer"
	"ruleweaver/internal/domain"
)

// RegisterWriteTools adds every tool that writes generated files or the canonical store
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(syncTool(), syncHandler(svc))
	s.AddTool(repairTool(), repairHandler(svc))
	s.AddTool(repairAllTool(), repairAllHandler(svc))
	s.AddTool(resolveTool(), resolveHandler(svc))
	s.AddTool(importTool(), importHandler(svc))
}

// --- sync ---

func syncTool() mcp.Tool {
	return mcp.NewTool("sync",
		mcp.WithDescription("Write every missing or out-of-date generated file. Conflicted files are never written."),
	)
}

func syncHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewSyncCommand(svc.Engine, domain.TriggerMCP, false).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSync(res)), nil
	}
}

// --- repair ---

func repairTool() mcp.Tool {
	return mcp.NewTool("repair",
		mcp.WithDescription("Rewrite the file of one status entry. Fails for conflicted and unsupported entries."),
		mcp.WithString("entry_id",
			mcp.Description("Entry id from get_status"),
			mcp.Required(),
		),
	)
}

func repairHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewRepairCommand(svc.Engine, req.GetString("entry_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- repair_all ---

func repairAllTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Repair every missing, out-of-date or errored entry matching the filter."),
	}, filterParams()...)
	return mcp.NewTool("repair_all", opts...)
}

func repairAllHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := filterArgs(req).Filter()
		if err != nil {
			return toolError(err)
		}
		res, err := commands.NewRepairAllCommand(svc.Engine, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, r := range res.Results {
			if r.Success {
				fmt.Fprintf(&sb, "ok    %s\n", r.Path)
			} else {
				fmt.Fprintf(&sb, "fail  %s: %s\n", r.Path, r.Error)
			}
		}
		sb.WriteString(res.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- resolve_conflict ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve_conflict",
		mcp.WithDescription("Resolve a conflict. overwrite writes the canonical content; keep_remote keeps the edited file until it or its artifacts change."),
		mcp.WithString("conflict_id",
			mcp.Description("Conflict id from list_conflicts"),
			mcp.Required(),
		),
		mcp.WithString("resolution",
			mcp.Description("overwrite or keep_remote"),
			mcp.Required(),
			mcp.Enum("overwrite", "keep_remote"),
		),
		mcp.WithString("current_hash",
			mcp.Description("Hash of the file as reviewed; the resolution is refused if the file changed since"),
		),
	)
}

func resolveHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewResolveCommand(svc.Engine,
			req.GetString("conflict_id", ""),
			req.GetString("resolution", ""),
			req.GetString("current_hash", ""),
		)
		res, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- import_source ---

func importTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Scan an import source and import the candidates as canonical artifacts."),
	}, sourceParams()...)
	opts = append(opts,
		mcp.WithString("conflict_mode",
			mcp.Description("What to do when a name is taken: rename (default), skip or replace"),
			mcp.Enum("rename", "skip", "replace"),
		),
		mcp.WithString("scope", mcp.Description("Override the scope of every imported artifact")),
		mcp.WithString("adapters", mcp.Description("Comma separated adapter ids to enable on every imported artifact")),
		mcp.WithString("target_paths", mcp.Description("Comma separated repository roots for local artifacts")),
		mcp.WithString("select", mcp.Description("Comma separated candidate ids from scan_source; omit to import all")),
		mcp.WithBoolean("sync", mcp.Description("Sync after importing")),
	)
	return mcp.NewTool("import_source", opts...)
}

func importHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts, err := commands.ImportArgs{
			Mode:     req.GetString("conflict_mode", ""),
			Scope:    req.GetString("scope", ""),
			Adapters: req.GetString("adapters", ""),
			Paths:    req.GetString("target_paths", ""),
			Select:   req.GetString("select", ""),
		}.Options()
		if err != nil {
			return toolError(err)
		}

		session := svc.NewSession()
		scan, err := commands.NewScanCommand(session, scanRequest(req)).WithClipboard(svc.Clipboard).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		res, err := commands.NewImportCommand(session, svc.Engine, opts, req.GetBool("sync", false)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(scan.Message)
		sb.WriteByte('\n')
		for _, a := range res.Result.Imported {
			fmt.Fprintf(&sb, "imported  %s %s (%s)\n", a.Type, a.Name, a.ArtifactID)
		}
		for _, s := range res.Result.Skipped {
			fmt.Fprintf(&sb, "skipped   %s: %s\n", s.Name, s.Reason)
		}
		for _, c := range res.Result.Conflicts {
			fmt.Fprintf(&sb, "conflict  %s: %s\n", c.Name, c.Reason)
		}
		for _, e := range res.Result.Errors {
			fmt.Fprintf(&sb, "error     %s: %s\n", e.Name, e.Message)
		}
		sb.WriteString(res.Message)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func sourceParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("source",
			mcp.Description("ai_tool, file, directory, url or clipboard"),
			mcp.Required(),
		),
		mcp.WithString("path", mcp.Description("File or directory path for file and directory sources")),
		mcp.WithString("url", mcp.Description("http(s) URL for the url source")),
		mcp.WithString("text", mcp.Description("Text to import as the clipboard source")),
		mcp.WithString("name", mcp.Description("Name for a clipboard candidate")),
	}
}

func scanRequest(req mcp.CallToolRequest) importer.ScanRequest {
	source, _ := domain.ParseSourceType(req.GetString("source", ""))
	return importer.ScanRequest{
		Source: source,
		Path:   req.GetString("path", ""),
		URL:    req.GetString("url", ""),
		Text:   req.GetString("text", ""),
		Name:   req.GetString("name", ""),
	}
}
