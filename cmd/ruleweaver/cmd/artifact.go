package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ruleweaver/internal/adapters/tui/styles"
	"ruleweaver/internal/adapters/tui/views"
	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/domain"
)

var (
	listType  string
	listQuery string

	addType        string
	addName        string
	addDescription string
	addContent     string
	addFile        string
	addScope       string
	addPaths       string
	addAdapters    string
	addDisabled    bool
)

var artifactCmd = &cobra.Command{
	Use:     "artifact",
	Aliases: []string{"a"},
	Short:   "Manage canonical rules, commands and skills",
}

var artifactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts, optionally fuzzy matching a query",
	Long: `List artifacts in the canonical store.

Examples:
  ruleweaver artifact list
  ruleweaver artifact list --type skill
  ruleweaver artifact list --query revw`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var t domain.ArtifactType
		if listType != "" {
			parsed, err := domain.ParseArtifactType(listType)
			if err != nil {
				return err
			}
			t = parsed
		}

		artifacts, err := listArtifacts(cmd.Context(), t)
		if err != nil {
			return err
		}
		if len(artifacts) == 0 {
			fmt.Println("No artifacts found")
			return nil
		}

		rows := make([][]string, 0, len(artifacts))
		for _, a := range artifacts {
			state := "enabled"
			if !a.Enabled {
				state = "disabled"
			}
			rows = append(rows, []string{
				a.ID, string(a.Type), a.Name, string(a.Scope),
				strings.Join(domain.AdapterIDStrings(a.EnabledAdapters), ","), state,
			})
		}
		fmt.Println(renderTable([]string{"ID", "Type", "Name", "Scope", "Adapters", "State"}, rows, nil))
		return nil
	},
}

var artifactShowCmd = &cobra.Command{
	Use:   "show <artifact-id>",
	Short: "Show an artifact and its rendered content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := commands.NewGetArtifactCommand(GetServices().Store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(styles.Title.Render(a.Name))
		fmt.Printf("%s %s, %s scope, updated %s\n", a.Type, a.ID, a.Scope, a.UpdatedAt.Format("2006-01-02 15:04"))
		if a.Description != "" {
			fmt.Println(styles.Subtitle.Render(a.Description))
		}
		fmt.Printf("Adapters: %s\n", strings.Join(domain.AdapterIDStrings(a.EnabledAdapters), ", "))
		if len(a.TargetPaths) > 0 {
			fmt.Printf("Targets:  %s\n", strings.Join(a.TargetPaths, ", "))
		}
		fmt.Println()

		if isInteractive() {
			fmt.Print(views.RenderMarkdown(a.Content, terminalWidth()))
		} else {
			fmt.Println(a.Content)
		}
		return nil
	},
}

var artifactAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a rule, command or skill",
	Long: `Add an artifact to the canonical store. Content comes from --content,
--file, or standard input when neither is given.

Examples:
  ruleweaver artifact add --type rule --name tabs --adapters codex,gemini --content "Use tabs."
  ruleweaver artifact add --type command --name review --adapters claude-code --file review.md
  ruleweaver artifact add --type rule --name api-style --scope local --paths ~/src/api --adapters cursor < style.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := GetServices()

		t, err := domain.ParseArtifactType(addType)
		if err != nil {
			return err
		}
		scope, err := domain.ParseScope(addScope)
		if err != nil {
			return err
		}
		content, err := readContent()
		if err != nil {
			return err
		}

		in := domain.ArtifactInput{
			Type:            t,
			Name:            addName,
			Description:     addDescription,
			Content:         content,
			Scope:           scope,
			EnabledAdapters: domain.ParseAdapterIDs(addAdapters),
			Enabled:         !addDisabled,
		}
		for _, p := range strings.Split(addPaths, ",") {
			if p = strings.TrimSpace(p); p != "" {
				in.TargetPaths = append(in.TargetPaths, p)
			}
		}

		result, err := commands.NewCreateArtifactCommand(svc.Store, svc.Registry, in).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var artifactRmCmd = &cobra.Command{
	Use:   "rm <artifact-id>",
	Short: "Delete an artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteCommand(GetServices().Store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var artifactRenameCmd = &cobra.Command{
	Use:   "rename <artifact-id> <new-name>",
	Short: "Rename an artifact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenameCommand(GetServices().Store, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

// listArtifacts lists every artifact of type t, or the fuzzy matches of --query best first
func listArtifacts(ctx context.Context, t domain.ArtifactType) ([]domain.Artifact, error) {
	store := GetServices().Store
	if strings.TrimSpace(listQuery) == "" {
		return commands.NewListArtifactsCommand(store, t).Execute(ctx)
	}
	results, err := commands.NewSearchCommand(store, listQuery, t).Execute(ctx)
	if err != nil {
		return nil, err
	}
	artifacts := make([]domain.Artifact, len(results))
	for i, r := range results {
		artifacts[i] = r.Artifact
	}
	return artifacts, nil
}

func toggleCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <artifact-id>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewToggleCommand(GetServices().Store, args[0], enabled).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func readContent() (string, error) {
	switch {
	case addContent != "" && addFile != "":
		return "", fmt.Errorf("use either --content or --file")
	case addContent != "":
		return addContent, nil
	case addFile != "":
		data, err := os.ReadFile(addFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", addFile, err)
		}
		return string(data), nil
	case isInteractive():
		return "", fmt.Errorf("content required: use --content, --file or pipe it on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(artifactCmd)

	artifactCmd.AddCommand(artifactListCmd)
	artifactListCmd.Flags().StringVar(&listType, "type", "", "rule, command or skill")
	artifactListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "fuzzy match names and descriptions")

	artifactCmd.AddCommand(artifactShowCmd)

	artifactCmd.AddCommand(artifactAddCmd)
	f := artifactAddCmd.Flags()
	f.StringVar(&addType, "type", "rule", "rule, command or skill")
	f.StringVar(&addName, "name", "", "artifact name (letters, digits, - and _)")
	f.StringVar(&addDescription, "description", "", "one-line description")
	f.StringVar(&addContent, "content", "", "artifact content")
	f.StringVar(&addFile, "file", "", "read content from a file")
	f.StringVar(&addScope, "scope", "global", "global or local")
	f.StringVar(&addPaths, "paths", "", "comma separated repository roots for local scope")
	f.StringVar(&addAdapters, "adapters", "", "comma separated adapter ids")
	f.BoolVar(&addDisabled, "disabled", false, "create the artifact disabled")
	artifactAddCmd.MarkFlagRequired("name")
	artifactAddCmd.MarkFlagRequired("adapters")

	artifactCmd.AddCommand(artifactRmCmd)
	artifactCmd.AddCommand(artifactRenameCmd)
	artifactCmd.AddCommand(toggleCmd("enable", true))
	artifactCmd.AddCommand(toggleCmd("disable", false))
}
