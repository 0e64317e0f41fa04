package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/subhajit/appointment-booking/internal/api"
	"github.com/subhajit/appointment-booking/internal/config"
	"github.com/subhajit/appointment-booking/internal/factory"
)

func main() {
	// Layered config: defaults, YAML file, .env, environment
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run serves until ctx is done or the server fails. The application is
// closed before run returns on every path.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Create application factory
	app, err := factory.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("error closing application", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		Sessions:            app.Sessions,
		AllowedOrigins:      cfg.AllowedOrigins,
		DoctorService:       app.DoctorService,
		DoctorsRequireLogin: cfg.DoctorsRequireLogin,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.Any("allowed_origins", cfg.AllowedOrigins),
		slog.String("session_store", cfg.Session.Store),
		slog.String("storage_type", cfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errCh
	}
}
