package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/steelbuild/internal/app"
	"github.com/alexanderramin/steelbuild/internal/cli"
	"github.com/alexanderramin/steelbuild/internal/config"
	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/logging"
	"github.com/alexanderramin/steelbuild/internal/metrics"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	m := metrics.New()
	services, err := app.New(database, cfg, app.Options{Logger: log, Metrics: m})
	if err != nil {
		return err
	}

	a := &cli.App{
		Services:      services,
		Config:        cfg,
		Logger:        log,
		Metrics:       m,
		IsInteractive: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
	}

	return cli.NewRootCmd(a).Execute()
}
