package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/statebus/internal/application/heartbeat"
	"github.com/aescanero/statebus/internal/config"
	"github.com/aescanero/statebus/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/statebus/pkg/api/http"
	"github.com/aescanero/statebus/pkg/eventbus"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting statebus",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	metricsCollector := prometheus.NewCollector(nil)

	ticks := eventbus.Key("ticks")
	lastTick := eventbus.Key("last_tick")
	tickEvent := eventbus.Key(cfg.Heartbeat.Event)

	bus, err := eventbus.New(
		eventbus.WithState(eventbus.State{ticks: 0}),
		eventbus.WithEvents(map[eventbus.Name]*eventbus.Callback{
			tickEvent: eventbus.NewCallback(func(s eventbus.State, args ...any) error {
				s[ticks] = s[ticks].(int) + 1
				if len(args) > 0 {
					s[lastTick] = args[0]
				}
				return nil
			}),
		}),
		eventbus.WithLogger(logger.Named("eventbus")),
		eventbus.WithMetrics(metricsCollector),
	)
	if err != nil {
		logger.Fatal("failed to create event bus", zap.Error(err))
	}

	// Emits and state reads share one lock
	var stateLock sync.Mutex

	beat, err := heartbeat.New(&heartbeat.Config{
		Bus:       bus,
		Event:     tickEvent,
		Interval:  cfg.Heartbeat.Interval,
		StateLock: &stateLock,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("failed to create heartbeat", zap.Error(err))
	}

	httpServer := http.NewServer(&http.Config{
		Port:      cfg.HTTPPort,
		Bus:       bus,
		StateLock: &stateLock,
		Logger:    logger,
	})

	beat.Start()

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("statebus started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("heartbeat_event", cfg.Heartbeat.Event),
		zap.Duration("heartbeat_interval", cfg.Heartbeat.Interval))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	beat.Stop()

	logger.Info("statebus shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
