package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/dca-lab/internal/config"
	"github.com/aristath/dca-lab/internal/database"
	"github.com/aristath/dca-lab/internal/events"
	"github.com/aristath/dca-lab/internal/modules/holdings"
	"github.com/aristath/dca-lab/internal/modules/risk"
	"github.com/aristath/dca-lab/internal/modules/simulation"
	"github.com/aristath/dca-lab/internal/pricefeed"
	"github.com/aristath/dca-lab/internal/scheduler"
	"github.com/aristath/dca-lab/internal/scheduler/jobs"
	"github.com/aristath/dca-lab/internal/server"
	"github.com/aristath/dca-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Str("database", cfg.DatabasePath).
		Str("history_dir", cfg.HistoryDir).
		Msg("Starting dca-lab")

	// Open the application database and run migrations
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Event manager
	eventManager := events.NewManager(log)

	// Price feed: on-disk history databases with synthetic fallback
	historyDB := pricefeed.NewHistoryDB(cfg.HistoryDir, log)
	synthetic := pricefeed.NewSynthetic(cfg.SyntheticDays, time.Now().UTC())
	feed := pricefeed.NewFeed(historyDB, synthetic, log)

	// Risk scoring
	riskComputer := risk.NewComputer()
	riskHandler := risk.NewHandler(riskComputer, feed, log)

	// Simulation module
	simEngine := simulation.NewEngine(log)
	simRepo := simulation.NewRepository(db)
	simService := simulation.NewService(simEngine, riskComputer, simRepo, log)
	simHandler := simulation.NewHandler(simService, simRepo, feed, eventManager, log)

	// Holdings module
	holdingsRepo := holdings.NewRepository(db)
	holdingsService := holdings.NewService(holdingsRepo, feed, riskComputer, log)
	holdingsHandler := holdings.NewHandler(holdingsRepo, holdingsService, eventManager, log)

	// Background jobs
	sched := scheduler.New(log)
	rescoreJob := jobs.NewHoldingsRescore(holdingsService, eventManager, log)
	if err := sched.AddJob(cfg.RescoreSchedule, rescoreJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register rescore job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
		Log:     log,
		DB:      db,

		SimulationHandler: simHandler,
		HoldingsHandler:   holdingsHandler,
		RiskHandler:       riskHandler,
	})

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("Server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Shutdown complete")
}
