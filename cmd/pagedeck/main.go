package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pagedeck/pagedeck/internal/config"
	"github.com/pagedeck/pagedeck/pkg/logging"
)

func main() {
	configPath := flag.String("config", config.BaseConfigFile, "path to the configuration file")
	flag.Parse()

	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootstrap.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := cfg.Finalize(); err != nil {
		bootstrap.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(&cfg.Logging)

	sh := newShell(cfg, logger)
	if err := sh.run(os.Stdin, os.Stdout); err != nil {
		logger.Error("shell terminated", "error", err)
		os.Exit(1)
	}
}
