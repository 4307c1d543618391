// Command worldserver runs the area progression and encounter HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/menagerie/internal/api"
	"github.com/cory-johannsen/menagerie/internal/config"
	"github.com/cory-johannsen/menagerie/internal/game/ability"
	"github.com/cory-johannsen/menagerie/internal/game/area"
	"github.com/cory-johannsen/menagerie/internal/game/encounter"
	"github.com/cory-johannsen/menagerie/internal/game/shop"
	"github.com/cory-johannsen/menagerie/internal/game/species"
	"github.com/cory-johannsen/menagerie/internal/game/unlock"
	"github.com/cory-johannsen/menagerie/internal/observability"
	"github.com/cory-johannsen/menagerie/internal/rng"
	"github.com/cory-johannsen/menagerie/internal/server"
	"github.com/cory-johannsen/menagerie/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worldserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	areaDefs, err := area.LoadDirectory(cfg.Content.AreasDir)
	if err != nil {
		return fmt.Errorf("loading areas: %w", err)
	}
	areas, err := area.NewRegistry(areaDefs)
	if err != nil {
		return fmt.Errorf("building area registry: %w", err)
	}
	if err := areas.ValidateConnections(); err != nil {
		return fmt.Errorf("validating area graph: %w", err)
	}

	speciesReg, err := species.LoadDirectory(cfg.Content.SpeciesDir)
	if err != nil {
		return fmt.Errorf("loading species: %w", err)
	}
	abilities, err := ability.LoadDirectory(cfg.Content.AbilitiesDir)
	if err != nil {
		return fmt.Errorf("loading abilities: %w", err)
	}
	if err := speciesReg.ValidateAbilityRefs(abilities.Has); err != nil {
		return fmt.Errorf("validating species ability refs: %w", err)
	}
	shops, err := shop.LoadDirectory(cfg.Content.ShopsDir)
	if err != nil {
		return fmt.Errorf("loading shops: %w", err)
	}

	logger.Info("content loaded",
		zap.Int("areas", areas.Count()),
		zap.Int("species", speciesReg.Count()),
		zap.Int("abilities", len(abilities.All())),
		zap.Int("shops", shops.Count()))

	pool, err := postgres.NewPool(ctx, cfg.Database, observability.Component(logger, "storage"))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	players := postgres.NewPlayerRepository(pool)
	progress := postgres.NewProgressRepository(pool)

	src := rng.NewCryptoSource()
	unlocks := unlock.NewCachedEvaluator(areas, observability.Component(logger, "unlock"), cfg.Unlock.CacheTTL, nil)
	picker := species.NewPicker(speciesReg, src)
	generator := encounter.NewGenerator(areas, picker, nil, src, observability.Component(logger, "encounter"))

	apiServer := api.NewServer(areas, shops, unlocks, generator, players, progress, src,
		observability.Component(logger, "api"))

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Register(&server.FuncService{
		ServiceName: "http",
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("http server listening", zap.String("addr", httpServer.Addr))
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})

	return lifecycle.Run(ctx)
}
