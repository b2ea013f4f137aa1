// Package cli provides common CLI initialization utilities shared by the
// interactive shell and the one-shot subcommands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spese-tracker/internal/amqp"
	"spese-tracker/internal/backend"
	"spese-tracker/internal/config"
	applog "spese-tracker/internal/log"
	"spese-tracker/internal/services"
	"spese-tracker/internal/sheets"
)

// SetupLogger initializes structured logging on stderr at the configured
// level and installs it as the slog default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment, applies
// the backend override when non-empty and validates the result.
func LoadAndValidateConfig(backendOverride string) (*config.Config, error) {
	cfg := config.Load()
	if backendOverride != "" {
		cfg.DataBackend = backendOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App bundles what every command needs.
type App struct {
	Config  *config.Config
	Logger  *applog.Logger
	Service *services.ExpenseService
	Store   sheets.ExpenseStore
	Events  *amqp.Client // nil unless AMQP is configured and reachable
	backend *backend.BackendResult
}

// InitApp builds the backend selected by cfg and the expense service on top.
func InitApp(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", bcfg.Type, err)
	}

	var publisher services.Publisher
	if result.Publisher != nil {
		publisher = result.Publisher
	}
	return &App{
		Config:  cfg,
		Logger:  logger,
		Service: services.NewExpenseService(result.Store, publisher, logger),
		Store:   result.Store,
		Events:  result.Publisher,
		backend: result,
	}, nil
}

// Close releases the backend resources.
func (a *App) Close() error {
	return a.backend.Close()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
