package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/comprae/marketplace/internal/storage/postgres"
)

type command struct {
	name  string
	steps int
}

// parseCommand accepts: up, down [n], version, force <version>. Empty means up.
func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "up"}, nil
	}
	cmd := command{name: args[0]}
	switch cmd.name {
	case "up", "version":
		if len(args) > 1 {
			return command{}, fmt.Errorf("%s takes no arguments", cmd.name)
		}
	case "down":
		cmd.steps = 1
		if len(args) > 2 {
			return command{}, errors.New("down takes at most one argument")
		}
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return command{}, fmt.Errorf("invalid step count %q", args[1])
			}
			cmd.steps = n
		}
	case "force":
		if len(args) != 2 {
			return command{}, errors.New("force requires a version")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return command{}, fmt.Errorf("invalid version %q", args[1])
		}
		cmd.steps = n
	default:
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}
	return cmd, nil
}

func run(dsn string, cmd command, logger *slog.Logger) error {
	if dsn == "" {
		return errors.New("database URI is required")
	}
	if cmd.name == "up" {
		return postgres.Migrate(dsn, logger)
	}

	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	switch cmd.name {
	case "down":
		err = m.Steps(-cmd.steps)
	case "force":
		err = m.Force(cmd.steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		logger.Info("schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		return nil
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	logger.Info("migration command finished", slog.String("command", cmd.name), slog.Int("steps", cmd.steps))
	return nil
}
