package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ruralsoc/backend/internal/infrastructure/config"
	"github.com/ruralsoc/backend/internal/infrastructure/logger"
	"github.com/ruralsoc/backend/internal/infrastructure/migration"
)

func main() {
	var (
		action = flag.String("action", "up", "migration action: up, down, steps, version, force")
		steps  = flag.Int("steps", 0, "number of steps for the steps action (negative = down)")
		target = flag.Int("target", 0, "version for the force action")
		path   = flag.String("path", "migrations", "path to migration files")
	)
	flag.Parse()

	if err := run(*action, *steps, *target, *path); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(action string, steps, target int, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	migrator, err := migration.New(cfg.Database.DSN(), path, log)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	switch action {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "steps":
		if steps == 0 {
			return fmt.Errorf("steps action requires a non-zero -steps value")
		}
		return migrator.Steps(steps)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty))
		return nil
	case "force":
		return migrator.Force(target)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
