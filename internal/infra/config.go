package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"island_go/internal/domain"
	"island_go/internal/history"
	"island_go/internal/strategy"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the trader and its tools.
// LoadConfig starts from DefaultConfig, overlays the YAML file, then lets
// environment variables override selected fields.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Logging struct {
		Level      string `yaml:"level"`
		Dir        string `yaml:"dir"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logging"`

	History struct {
		// DefaultBound caps series of unknown products. 0 keeps them unbounded.
		DefaultBound int `yaml:"default_bound"`
	} `yaml:"history"`

	Strategy strategy.Params `yaml:"strategy"`

	Gateway struct {
		ListenAddr string `yaml:"listen_addr"`
		ReadLimit  int64  `yaml:"read_limit"`
	} `yaml:"gateway"`

	Analysis struct {
		DataDir   string `yaml:"data_dir"`
		Round     int    `yaml:"round"`
		Days      []int  `yaml:"days"`
		Separator string `yaml:"separator"`
		DBPath    string `yaml:"db_path"`
	} `yaml:"analysis"`
}

// DefaultConfig returns the competition defaults.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "island_go"
	cfg.App.Version = "dev"

	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"
	cfg.Logging.File = "trader.log"
	cfg.Logging.MaxSizeMB = 10
	cfg.Logging.MaxBackups = 3
	cfg.Logging.MaxAgeDays = 28
	cfg.Logging.Compress = true

	cfg.History.DefaultBound = history.Unbounded

	cfg.Strategy = strategy.DefaultParams()

	cfg.Gateway.ListenAddr = "localhost:8765"
	cfg.Gateway.ReadLimit = 1 << 20

	cfg.Analysis.DataDir = "round-1-island-data-bottle"
	cfg.Analysis.Round = 1
	cfg.Analysis.Days = []int{0, -1, -2}
	cfg.Analysis.Separator = ";"
	cfg.Analysis.DBPath = ""

	return &cfg
}

// LoadConfig reads and parses the configuration file.
// A missing file is reported as domain.ErrConfigNotFound.
func LoadConfig(path string) (*Config, error) {
	// .env is optional; real environment variables still win
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig parses YAML on top of the defaults, applies env overrides and validates.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return domain.NewConfigError("logging.level", fmt.Errorf("unknown level %q", c.Logging.Level))
	}

	if c.History.DefaultBound < 0 {
		return domain.NewConfigError("history.default_bound", errors.New("must not be negative"))
	}

	mm := c.Strategy.MarketMaking
	if err := validateWindow("strategy.rainforest_resin", mm.Warmup, history.RainforestResinBound); err != nil {
		return err
	}
	if err := validateSize("strategy.rainforest_resin.max_order_size", mm.MaxOrderSize); err != nil {
		return err
	}
	if mm.Offset < 0 {
		return domain.NewConfigError("strategy.rainforest_resin.offset", errors.New("must not be negative"))
	}

	tr := c.Strategy.Trend
	if err := validateWindow("strategy.kelp", tr.Warmup, history.KelpBound); err != nil {
		return err
	}
	if err := validateSize("strategy.kelp.max_order_size", tr.MaxOrderSize); err != nil {
		return err
	}
	if tr.ShortWindow < 1 || tr.ShortWindow > history.KelpBound {
		return domain.NewConfigError("strategy.kelp.short_window",
			fmt.Errorf("must be in [1, %d], got %d", history.KelpBound, tr.ShortWindow))
	}

	mr := c.Strategy.MeanReversion
	if err := validateWindow("strategy.squid_ink", mr.Warmup, history.SquidInkBound); err != nil {
		return err
	}
	if err := validateSize("strategy.squid_ink.max_order_size", mr.MaxOrderSize); err != nil {
		return err
	}
	if mr.Threshold < 0 {
		return domain.NewConfigError("strategy.squid_ink.z_threshold", errors.New("must not be negative"))
	}

	if c.Gateway.ListenAddr == "" {
		return domain.NewConfigError("gateway.listen_addr", errors.New("required"))
	}
	if c.Gateway.ReadLimit <= 0 {
		return domain.NewConfigError("gateway.read_limit", errors.New("must be positive"))
	}

	if len(c.Analysis.Separator) != 1 {
		return domain.NewConfigError("analysis.separator", fmt.Errorf("must be a single character, got %q", c.Analysis.Separator))
	}

	return nil
}

// validateWindow rejects warm-ups the history window can never reach.
func validateWindow(field string, warmup, bound int) error {
	if warmup < 1 || warmup > bound {
		return domain.NewConfigError(field+".warmup", fmt.Errorf("must be in [1, %d], got %d", bound, warmup))
	}
	return nil
}

func validateSize(field string, size int) error {
	if size < 1 || size > domain.PositionLimit {
		return domain.NewConfigError(field, fmt.Errorf("must be in [1, %d], got %d", domain.PositionLimit, size))
	}
	return nil
}

// overrideWithEnv overrides selected fields from the environment.
func overrideWithEnv(cfg *Config) error {
	if level := os.Getenv("ISLAND_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if addr := os.Getenv("ISLAND_LISTEN_ADDR"); addr != "" {
		cfg.Gateway.ListenAddr = addr
	}
	if dir := os.Getenv("ISLAND_DATA_DIR"); dir != "" {
		cfg.Analysis.DataDir = dir
	}
	if path := os.Getenv("ISLAND_DB_PATH"); path != "" {
		cfg.Analysis.DBPath = path
	}
	if bound := os.Getenv("ISLAND_HISTORY_DEFAULT_BOUND"); bound != "" {
		n, err := strconv.Atoi(bound)
		if err != nil {
			return domain.NewConfigError("ISLAND_HISTORY_DEFAULT_BOUND", err)
		}
		cfg.History.DefaultBound = n
	}
	return nil
}

// HistoryBounds converts the history section into store bounds.
func (c *Config) HistoryBounds() history.Bounds {
	return history.Bounds{Unknown: c.History.DefaultBound}
}
