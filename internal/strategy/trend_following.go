package strategy

import (
	"island_go/internal/domain"
	"island_go/pkg/quant"
)

// TrendParams configures TrendFollower.
type TrendParams struct {
	Warmup       int `yaml:"warmup"`
	ShortWindow  int `yaml:"short_window"`
	MaxOrderSize int `yaml:"max_order_size"`
}

// DefaultTrendParams compares the last 5 mids with the full 20-sample window.
var DefaultTrendParams = TrendParams{
	Warmup:       20,
	ShortWindow:  5,
	MaxOrderSize: 10,
}

// TrendFollower crosses the spread in the direction of a moving-average
// crossover. Used for KELP.
type TrendFollower struct {
	params TrendParams
}

// NewTrendFollower creates a new instance.
func NewTrendFollower(params TrendParams) *TrendFollower {
	if params.ShortWindow <= 0 {
		panic("TrendFollower: short window must be positive")
	}
	return &TrendFollower{params: params}
}

// Orders emits at most one aggressive order per tick.
func (s *TrendFollower) Orders(in Input) []domain.Order {
	if len(in.Prices) < s.params.Warmup {
		return nil
	}

	shortMA := quant.Mean(quant.Tail(in.Prices, s.params.ShortWindow))
	longMA := quant.Mean(in.Prices)

	bid, ask, err := in.Depth.Touch()
	if err != nil {
		return nil
	}

	switch {
	case shortMA < longMA && in.Position > -domain.PositionLimit:
		// Downtrend: hit the bid
		if qty := orderSize(s.params.MaxOrderSize, domain.SellHeadroom(in.Position)); qty > 0 {
			return []domain.Order{domain.NewSellOrder(in.Symbol, bid, qty)}
		}
	case shortMA > longMA && in.Position < domain.PositionLimit:
		// Uptrend: lift the ask
		if qty := orderSize(s.params.MaxOrderSize, domain.BuyHeadroom(in.Position)); qty > 0 {
			return []domain.Order{domain.NewBuyOrder(in.Symbol, ask, qty)}
		}
	}
	return nil
}
