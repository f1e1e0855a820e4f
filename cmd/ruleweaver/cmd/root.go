package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ruleweaver/internal/bootstrap"
	"ruleweaver/internal/config"
	"ruleweaver/internal/logging"
)

var (
	homeDir string
	verbose bool

	services  *bootstrap.Services
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "ruleweaver",
	Short: "Keep AI tool rules, commands and skills in sync",
	Long: `ruleweaver keeps one canonical set of rules, slash commands and skills
and writes it into the files each AI coding tool reads: AGENTS.md,
GEMINI.md, .cursorrules, command directories and skill folders.

Generated files that were edited by hand are reported as conflicts and
never overwritten without an explicit resolution.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		teardown()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "ruleweaver home directory (default $RULEWEAVER_HOME or ~/.ruleweaver)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

func setup() error {
	home := config.Home()
	if homeDir != "" {
		home = homeDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadFrom(home, cwd)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logCloser, err = logging.Setup(cfg.Log, logging.Options{Console: os.Stderr, ConsoleLevel: level})
	if err != nil {
		return err
	}

	services, err = bootstrap.Open(cfg, "")
	if err != nil {
		return err
	}
	slog.Debug("ruleweaver started", "home", cfg.Home, "storage", cfg.Storage)
	return nil
}

func teardown() error {
	var errs []error
	if services != nil {
		errs = append(errs, services.Close())
		services = nil
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
		logCloser = nil
	}
	return errors.Join(errs...)
}

// GetServices returns the wired services
func GetServices() *bootstrap.Services {
	return services
}
