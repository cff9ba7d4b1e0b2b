package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"island_go/internal/analysis"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage persists analysis summaries and replay runs.
// Trader state never goes here; it lives only in the trader data blob.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the SQLite database at path.
// An empty path resolves to the per-user data directory.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		var err error
		path, err = getDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&TradeSummaryRecord{}, &PriceSummaryRecord{}, &ReplayRun{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "IslandGo", "data", "island.db"), nil
}

// Close releases the underlying connection.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ======================================================================================
// Analysis Summaries
// ======================================================================================

// SaveDayReport upserts every summary row of a day report.
func (s *Storage) SaveDayReport(round int, report analysis.DayReport) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range report.Trades {
			rec := TradeSummaryRecord{
				Round:       round,
				Day:         report.Day,
				Symbol:      t.Symbol,
				Count:       t.Count,
				AvgPrice:    t.AvgPrice,
				TotalVolume: t.TotalVolume,
				StdPrice:    t.StdPrice,
				MinPrice:    t.MinPrice,
				MaxPrice:    t.MaxPrice,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("save trade summary %s: %w", t.Symbol, err)
			}
		}
		for _, p := range report.Prices {
			rec := PriceSummaryRecord{
				Round:     round,
				Day:       report.Day,
				Product:   p.Product,
				Count:     p.Count,
				AvgMid:    p.AvgMid,
				StdMid:    p.StdMid,
				MinMid:    p.MinMid,
				MaxMid:    p.MaxMid,
				AvgSpread: p.AvgSpread,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("save price summary %s: %w", p.Product, err)
			}
		}
		return nil
	})
}

// TradeSummaries returns the stored trade summaries of a day, ordered by symbol.
func (s *Storage) TradeSummaries(round, day int) ([]TradeSummaryRecord, error) {
	var recs []TradeSummaryRecord
	err := s.db.Where("round = ? AND day = ?", round, day).Order("symbol").Find(&recs).Error
	return recs, err
}

// PriceSummaries returns the stored price summaries of a day, ordered by product.
func (s *Storage) PriceSummaries(round, day int) ([]PriceSummaryRecord, error) {
	var recs []PriceSummaryRecord
	err := s.db.Where("round = ? AND day = ?", round, day).Order("product").Find(&recs).Error
	return recs, err
}

// ======================================================================================
// Replay Runs
// ======================================================================================

// SaveReplayRun stores a finished replay.
func (s *Storage) SaveReplayRun(run *ReplayRun) error {
	return s.db.Save(run).Error
}

// GetReplayRun retrieves a replay by ID
func (s *Storage) GetReplayRun(id string) (*ReplayRun, error) {
	var run ReplayRun
	err := s.db.First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &run, err
}

// RecentReplayRuns returns up to limit runs, newest first.
func (s *Storage) RecentReplayRuns(limit int) ([]ReplayRun, error) {
	var runs []ReplayRun
	err := s.db.Order("started_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}
