package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSummaryRecord is one symbol's trade statistics for one day.
type TradeSummaryRecord struct {
	Round       int             `gorm:"primaryKey" json:"round"`
	Day         int             `gorm:"primaryKey" json:"day"`
	Symbol      string          `gorm:"primaryKey" json:"symbol"`
	Count       int             `json:"count"`
	AvgPrice    decimal.Decimal `gorm:"type:text" json:"avg_price"`
	TotalVolume decimal.Decimal `gorm:"type:text" json:"total_volume"`
	StdPrice    decimal.Decimal `gorm:"type:text" json:"std_price"`
	MinPrice    decimal.Decimal `gorm:"type:text" json:"min_price"`
	MaxPrice    decimal.Decimal `gorm:"type:text" json:"max_price"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PriceSummaryRecord is one product's quote statistics for one day.
type PriceSummaryRecord struct {
	Round     int             `gorm:"primaryKey" json:"round"`
	Day       int             `gorm:"primaryKey" json:"day"`
	Product   string          `gorm:"primaryKey" json:"product"`
	Count     int             `json:"count"`
	AvgMid    decimal.Decimal `gorm:"type:text" json:"avg_mid"`
	StdMid    decimal.Decimal `gorm:"type:text" json:"std_mid"`
	MinMid    decimal.Decimal `gorm:"type:text" json:"min_mid"`
	MaxMid    decimal.Decimal `gorm:"type:text" json:"max_mid"`
	AvgSpread decimal.Decimal `gorm:"type:text" json:"avg_spread"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ReplayRun records the outcome of one offline replay.
type ReplayRun struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Source            string    `json:"source"`
	Ticks             int       `json:"ticks"`
	Orders            int       `json:"orders"`
	LiquidityFailures int       `json:"liquidity_failures"`
	StartedAt         time.Time `gorm:"index" json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
}
