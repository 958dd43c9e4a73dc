package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/driftline/worldgen/internal/api"
	"github.com/driftline/worldgen/internal/config"
	"github.com/driftline/worldgen/internal/engine"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "world_size", cfg.World.Size, "log_level", cfg.Logging.Level)

	// Setup logging
	setupLogging(cfg.Logging)
	log.Debug("Logging configured", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	// Initialize the world engine
	log.Debug("Initializing world engine", "seed", cfg.World.Seed, "size", cfg.World.Size)
	eng := engine.New(engine.Config{
		Seed:            cfg.World.Seed,
		WorldSize:       cfg.World.Size,
		BlockSize:       cfg.World.BlockSize,
		Octaves:         cfg.World.Octaves,
		SampleStride:    cfg.World.SampleStride,
		ChunkSize:       cfg.Streaming.ChunkSize,
		TileSize:        cfg.Streaming.TileSize,
		StreamRadius:    cfg.Streaming.Radius,
		SpatialCellSize: cfg.Streaming.SpatialCellSize,
	}, nil)

	// Kick off the initial generation run
	eng.Generate(cfg.World.Seed)

	// Start background services
	log.Debug("Starting background services")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startBackgroundServices(ctx, eng, cfg.Streaming.TickInterval)
	log.Debug("Background services started")

	// Initialize API handlers
	log.Debug("Initializing API handlers")
	handler := api.NewHandler(eng)
	stream := api.NewStreamHandler(eng)
	router := api.SetupRoutes(handler, stream)
	log.Debug("API routes configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting worldgen API server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) {
	switch cfg.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warn("Invalid log level, using info", "level", cfg.Level)
		log.SetLevel(log.InfoLevel)
	}

	if cfg.Format == "pretty" {
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	}

	log.SetPrefix("[worldgen-api] ")
}

// startBackgroundServices drives the engine's control tick: polling for
// finished generation runs and logging progress. The HTTP server has no
// attached viewer, so chunk streaming stays idle here; WebSocket clients
// compute their own diffs per connection.
func startBackgroundServices(ctx context.Context, eng *engine.Engine, interval time.Duration) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastStage := ""
	for {
		select {
		case <-ctx.Done():
			log.Info("Background services stopped")
			return

		case <-ticker.C:
			if eng.PollGeneration() {
				state := eng.State()
				log.Info("World ready", "seed", state.Map.Seed(), "size", state.Map.Size())
				continue
			}
			if p := eng.Progress(); p.Generating && p.Stage != lastStage {
				log.Debug("Generation progress", "stage", p.Stage, "fraction", p.Fraction)
				lastStage = p.Stage
			}
		}
	}
}
