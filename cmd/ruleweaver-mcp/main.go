package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "ruleweaver/internal/adapters/mcp"
	"ruleweaver/internal/bootstrap"
	"ruleweaver/internal/config"
	"ruleweaver/internal/logging"
)

const version = "0.1.0"

func main() {
	homeFlag := flag.String("home", config.Home(), "ruleweaver home directory")
	flag.Parse()

	if err := run(*homeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "ruleweaver-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(home string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(home, cwd)
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs only go to the log file
	closer, err := logging.Setup(cfg.Log, logging.Options{})
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := bootstrap.Open(cfg, "")
	if err != nil {
		return err
	}
	defer svc.Close()

	s := mcpadapter.NewServer("ruleweaver-mcp", version, mcpadapter.Services{
		Engine:       svc.Engine,
		History:      svc.State,
		NewSession:   svc.NewSession,
		Clipboard:    svc.Clipboard,
		HistoryLimit: cfg.Import.HistoryLimit,
	})

	slog.Info("mcp server starting", "home", cfg.Home, "storage", cfg.Storage)
	return server.ServeStdio(s)
}
