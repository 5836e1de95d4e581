package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/upkeep-app/upkeep/internal/config"
	"github.com/upkeep-app/upkeep/internal/migration"
	"github.com/upkeep-app/upkeep/internal/notification"
	"github.com/upkeep-app/upkeep/internal/ops"
	"github.com/upkeep-app/upkeep/internal/repository"
	"github.com/upkeep-app/upkeep/internal/scheduler"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	once := flag.Bool("once", false, "run a single notification cycle and exit")
	flag.Parse()

	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Optional .env for local runs; deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	if err := migration.Run(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	mailer, err := notification.NewSMTPMailer(cfg.Email)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure mailer")
	}

	batcher := notification.NewBatcher(
		repository.NewItemRepository(db),
		repository.NewMaintenanceEventRepository(db),
		repository.NewNotificationLogRepository(db),
		mailer,
		cfg.Email.RecipientList(),
		notification.Windows{
			AlertWindowDays: cfg.Notify.AlertWindowDays,
			CompletedWindow: cfg.Notify.CompletedWindow(),
			RepeatWindow:    cfg.Notify.RepeatWindow(),
		},
		logger,
	)

	// One-shot invocation: run a single cycle and exit.
	if *once {
		if err := batcher.RunCycle(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("Notification cycle failed")
		}
		return
	}

	var sched *scheduler.Scheduler
	if cfg.Notify.Enabled {
		sched, err = scheduler.NewDaily(cfg.Notify.Hour, batcher, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create scheduler")
		}
		sched.Start()
	} else {
		logger.Info().Msg("Scheduler disabled by configuration")
	}

	var opsServer *ops.Server
	serverErrCh := make(chan error, 1)
	if cfg.Ops.Enabled {
		opsServer = ops.NewServer(cfg.Ops.Port, batcher, logger)
		go func() {
			if err := opsServer.Start(); err != nil {
				serverErrCh <- err
			}
		}()
	}

	// Wait for an interrupt signal or an ops server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Ops server error occurred")
	}

	if sched != nil {
		sched.Stop()
	}
	if opsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := opsServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Ops server shutdown error")
		}
	}

	logger.Info().Msg("Application terminated.")
}
