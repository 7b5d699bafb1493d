package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tentwenty/ticktock/internal/api"
	"github.com/tentwenty/ticktock/internal/cli"
	"github.com/tentwenty/ticktock/internal/config"
	"github.com/tentwenty/ticktock/internal/service"
	"github.com/tentwenty/ticktock/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	sessionFile, err := cfg.ResolveSessionFile()
	if err != nil {
		return fmt.Errorf("resolving session file: %w", err)
	}
	sessions, err := session.Open(sessionFile)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(cfg, sessions, observer)

	app := &cli.App{
		Auth:       service.NewAuthService(client, sessions),
		Timesheets: service.NewTimesheetService(client),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
