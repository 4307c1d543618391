// Command migrate applies database schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/cory-johannsen/menagerie/internal/config"
	"github.com/cory-johannsen/menagerie/internal/observability"
)

func main() {
	var (
		configPath    = flag.String("config", "configs/dev.yaml", "path to configuration file")
		migrationsDir = flag.String("migrations", "migrations", "path to migrations directory")
		direction     = flag.String("direction", "up", "migration direction: up or down")
		steps         = flag.Int("steps", 0, "number of steps to run (0 means all)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	m, err := migrate.New("file://"+*migrationsDir, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("creating migrator", zap.Error(err))
	}
	defer m.Close()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		logger.Fatal("unknown direction", zap.String("direction", *direction))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("running migrations", zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Fatal("reading migration version", zap.Error(err))
	}
	logger.Info("migrations complete",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
}
