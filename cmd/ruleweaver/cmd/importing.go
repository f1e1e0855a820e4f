package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/application/importer"
	"ruleweaver/internal/domain"
)

var (
	importArgs    commands.ImportArgs
	importName    string
	importText    string
	importSync    bool
	importYes     bool
	importPreview bool
)

var importCmd = &cobra.Command{
	Use:   "import <ai-tool|file|directory|url|clipboard> [path-or-url]",
	Short: "Import rules, commands and skills into the canonical store",
	Long: `Scan a source for candidate artifacts and import them.

Sources:
  ai-tool    files already written by installed AI tools
  file       one markdown, text, JSON or YAML file
  directory  every supported file under a directory
  url        a document fetched over http(s)
  clipboard  the system clipboard, or --text

In a terminal you pick the candidates from a list unless --select or --yes
is given. When a name is taken, --mode decides: rename (default), skip or
replace.

Examples:
  ruleweaver import ai-tool
  ruleweaver import directory ./prompts --adapters codex,gemini --sync
  ruleweaver import url https://example.com/AGENTS.md --mode skip
  ruleweaver import clipboard --name review-checklist`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := GetServices()
		ctx := cmd.Context()

		source, err := domain.ParseSourceType(args[0])
		if err != nil {
			return err
		}
		opts, err := importArgs.Options()
		if err != nil {
			return err
		}

		req := importer.ScanRequest{Source: source, Text: importText, Name: importName}
		if len(args) == 2 {
			req.Path = args[1]
			req.URL = args[1]
		}

		session := svc.NewSession()
		scan, err := commands.NewScanCommand(session, req).WithClipboard(svc.Clipboard).Execute(ctx)
		if err != nil {
			return err
		}
		printCandidates(scan.Scan)
		fmt.Println(scan.Message)
		if len(scan.Scan.Candidates) == 0 || importPreview {
			return nil
		}

		if len(opts.SelectedCandidateIDs) == 0 && !importYes && isInteractive() {
			selected, err := selectCandidates(scan.Scan.Candidates)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Println("Nothing selected")
				return nil
			}
			opts.SelectedCandidateIDs = selected
		}

		result, err := commands.NewImportCommand(session, svc.Engine, opts, importSync).Execute(ctx)
		if result != nil {
			printImport(result.Result)
			fmt.Println(result.Message)
		}
		return err
	},
}

func printCandidates(scan *domain.ScanResult) {
	for _, c := range scan.Candidates {
		line := fmt.Sprintf("  %s %-8s %s  %s", styles.MutedText.Render(c.ID), c.ArtifactType, c.ProposedName,
			styles.MutedText.Render(fmt.Sprintf("%s, %s", c.SourcePath, humanize.IBytes(uint64(c.FileSize)))))
		if c.DuplicateOf != "" {
			line += styles.WarningMsg.Render(" same content as " + c.DuplicateOf)
		}
		fmt.Println(line)
	}
	for _, e := range scan.Errors {
		fmt.Fprintf(os.Stderr, "  %s %s\n", styles.ErrorMsg.Render("skipped"), e)
	}
}

func selectCandidates(candidates []domain.ImportCandidate) ([]string, error) {
	options := make([]huh.Option[string], 0, len(candidates))
	for _, c := range candidates {
		label := fmt.Sprintf("%s %s (%s)", c.ArtifactType, c.ProposedName, c.SourceLabel)
		options = append(options, huh.NewOption(label, c.ID).Selected(true))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Import which candidates?").
				Description("space toggles, enter confirms").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

func printImport(res *domain.ImportExecutionResult) {
	for _, a := range res.Imported {
		note := ""
		switch {
		case a.Replaced:
			note = " (replaced)"
		case a.Renamed:
			note = " (renamed)"
		}
		fmt.Printf("  %s %s %s%s\n", styles.Success.Render("imported"), a.Type, a.Name, note)
	}
	for _, s := range res.Skipped {
		fmt.Printf("  %s %s: %s\n", styles.MutedText.Render("skipped"), s.Name, s.Reason)
	}
	for _, c := range res.Conflicts {
		fmt.Printf("  %s %s: %s\n", styles.WarningMsg.Render("conflict"), c.Name, c.Reason)
	}
	for _, e := range res.Errors {
		fmt.Printf("  %s %s: %s\n", styles.ErrorMsg.Render("error"), e.Name, e.Message)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
	f := importCmd.Flags()
	f.StringVar(&importArgs.Mode, "mode", "rename", "when a name is taken: rename, skip or replace")
	f.StringVar(&importArgs.Scope, "scope", "", "scope for every imported artifact: global or local")
	f.StringVar(&importArgs.Adapters, "adapters", "", "comma separated adapters to enable on every imported artifact")
	f.StringVar(&importArgs.Paths, "paths", "", "comma separated repository roots for local artifacts")
	f.StringVar(&importArgs.Select, "select", "", "comma separated candidate ids to import")
	f.StringVar(&importName, "name", "", "name of a clipboard candidate")
	f.StringVar(&importText, "text", "", "import this text instead of reading the clipboard")
	f.BoolVar(&importSync, "sync", false, "sync after importing")
	f.BoolVarP(&importYes, "yes", "y", false, "import every candidate without asking")
	f.BoolVar(&importPreview, "preview", false, "scan and list candidates only")
}
