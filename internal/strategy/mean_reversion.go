package strategy

import (
	"island_go/internal/domain"
	"island_go/pkg/quant"
)

// MeanReversionParams configures MeanReverter.
type MeanReversionParams struct {
	Warmup       int     `yaml:"warmup"`
	Threshold    float64 `yaml:"z_threshold"`
	MaxOrderSize int     `yaml:"max_order_size"`
}

// DefaultMeanReversionParams trades 1-sigma moves over a 10-sample window.
var DefaultMeanReversionParams = MeanReversionParams{
	Warmup:       10,
	Threshold:    1,
	MaxOrderSize: 5,
}

// MeanReverter buys dips and sells spikes measured by the z-score of the
// latest mid. Used for SQUID_INK.
type MeanReverter struct {
	params MeanReversionParams
}

// NewMeanReverter creates a new instance.
func NewMeanReverter(params MeanReversionParams) *MeanReverter {
	return &MeanReverter{params: params}
}

// Orders emits at most one aggressive order per tick.
func (s *MeanReverter) Orders(in Input) []domain.Order {
	if len(in.Prices) < s.params.Warmup {
		return nil
	}

	z := quant.ZScore(in.Prices)

	bid, ask, err := in.Depth.Touch()
	if err != nil {
		return nil
	}

	switch {
	case z < -s.params.Threshold && in.Position < domain.PositionLimit:
		if qty := orderSize(s.params.MaxOrderSize, domain.BuyHeadroom(in.Position)); qty > 0 {
			return []domain.Order{domain.NewBuyOrder(in.Symbol, ask, qty)}
		}
	case z > s.params.Threshold && in.Position > -domain.PositionLimit:
		if qty := orderSize(s.params.MaxOrderSize, domain.SellHeadroom(in.Position)); qty > 0 {
			return []domain.Order{domain.NewSellOrder(in.Symbol, bid, qty)}
		}
	}
	return nil
}
