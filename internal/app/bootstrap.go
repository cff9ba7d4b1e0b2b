package app

import (
	"errors"
	"log/slog"

	"island_go/internal/domain"
	"island_go/internal/infra"
	"island_go/internal/infra/storage"
)

// DefaultConfigPath is where the commands look for configuration.
const DefaultConfigPath = "configs/config.yaml"

// Bootstrap orchestrates the startup sequence shared by every command
type Bootstrap struct {
	Config  *infra.Config
	Logger  *slog.Logger
	Storage *storage.Storage
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and installs the logger.
// A missing config file falls back to defaults plus environment overrides.
func (b *Bootstrap) Initialize(configPath string) error {
	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if errors.Is(err, domain.ErrConfigNotFound) {
		slog.Warn("Config file not found, using defaults", slog.String("path", configPath))
		cfg, err = infra.ParseConfig(nil)
	}
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	b.Logger = infra.NewLogger(cfg)
	slog.SetDefault(b.Logger)

	slog.Info("Bootstrapped",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.Int("history_default_bound", cfg.History.DefaultBound))
	return nil
}

// OpenStorage opens the analysis database. Only the offline tools need it.
func (b *Bootstrap) OpenStorage() (*storage.Storage, error) {
	if b.Storage != nil {
		return b.Storage, nil
	}
	store, err := storage.NewStorage(b.Config.Analysis.DBPath)
	if err != nil {
		return nil, err
	}
	b.Storage = store
	slog.Info("Database initialized")
	return store, nil
}

// Close releases whatever Initialize and OpenStorage acquired.
func (b *Bootstrap) Close() {
	if b.Storage != nil {
		if err := b.Storage.Close(); err != nil {
			slog.Warn("Failed to close storage", slog.Any("error", err))
		}
	}
}
