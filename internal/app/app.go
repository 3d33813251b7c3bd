package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/lunarday/internal/controllers/restserver"
	"github.com/chrissnell/lunarday/internal/log"
	"github.com/chrissnell/lunarday/pkg/config"
	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/chrissnell/lunarday/pkg/moonrise"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Engine builds the lunar engine with the configured ephemeris
func (a *App) Engine() (*lunar.Engine, error) {
	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	solver, err := moonrise.New(cfg.Ephemeris)
	if err != nil {
		return nil, err
	}
	a.logger.Infof("using %s ephemeris for moon rise and set", cfg.Ephemeris)

	return lunar.NewEngine(solver, lunar.WithLogger(a.logger)), nil
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine, err := a.Engine()
	if err != nil {
		return err
	}

	rest, err := restserver.NewController(ctx, &wg, a.configProvider, engine, a.logger)
	if err != nil {
		return err
	}
	if err := rest.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for the REST server to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
