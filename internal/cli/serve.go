package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnc_simulator/internal/config"
	"cnc_simulator/internal/handlers"
	"cnc_simulator/internal/logger"
	"cnc_simulator/internal/metrics"
	"cnc_simulator/internal/repository"
	"cnc_simulator/internal/repository/db"
	"cnc_simulator/internal/server"
	"cnc_simulator/internal/service"
	"cnc_simulator/internal/simulation"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func buildServeCommand(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulator and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

// randomSource seeds from config, or from the clock when seed is 0.
func randomSource(seed uint64) simulation.RandomSource {
	if seed == 0 {
		return simulation.NewTimeSeededSource()
	}
	return simulation.NewRandomSource(seed)
}

func serve(cfg *config.Config) error {
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	deps := service.Deps{
		Engine: simulation.New(cfg.EngineConfig(), randomSource(cfg.Simulation.Seed)),
		Info:   cfg.Machine,
		Auth:   service.AuthConfig{SigningKey: cfg.Auth.SigningKey, TokenTTL: cfg.Auth.TokenTTL},
		Log:    log,
	}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(nil)
		deps.Observer = collector
		metricsHandler = collector.Handler()
	}

	services := service.NewService(repository.NewRepository(conn), deps)
	apiHandler := handlers.NewHandler(services, log, metricsHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go services.Simulator.Run(ctx, cfg.Simulation.UpdateInterval)

	srv := &server.Server{}
	errc := make(chan error, 1)
	go func() {
		log.Infow("http_server_started", "port", cfg.Port, "metrics", cfg.Metrics.Enabled)
		errc <- srv.Run(cfg.Port, apiHandler.InitRoutes())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	// stop the simulator before draining requests
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errc
}
