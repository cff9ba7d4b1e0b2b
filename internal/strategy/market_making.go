package strategy

import (
	"island_go/internal/domain"
	"island_go/pkg/quant"
)

// MarketMakingParams configures MarketMaker.
type MarketMakingParams struct {
	Warmup       int     `yaml:"warmup"`
	Offset       float64 `yaml:"offset"`
	MaxOrderSize int     `yaml:"max_order_size"`
}

// DefaultMarketMakingParams quotes ±2 around the 100-sample mean, 10 lots a side.
var DefaultMarketMakingParams = MarketMakingParams{
	Warmup:       100,
	Offset:       2,
	MaxOrderSize: 10,
}

// MarketMaker posts a passive bid and ask around the rolling fair value.
// Used for RAINFOREST_RESIN, which trades around a stable price.
type MarketMaker struct {
	params MarketMakingParams
}

// NewMarketMaker creates a new instance.
func NewMarketMaker(params MarketMakingParams) *MarketMaker {
	return &MarketMaker{params: params}
}

// Orders quotes both sides once the window is warm.
func (m *MarketMaker) Orders(in Input) []domain.Order {
	if len(in.Prices) < m.params.Warmup {
		return nil
	}

	fair := quant.Mean(in.Prices)
	bidPrice := quant.RoundPrice(fair - m.params.Offset)
	askPrice := quant.RoundPrice(fair + m.params.Offset)

	var orders []domain.Order
	if qty := orderSize(m.params.MaxOrderSize, domain.BuyHeadroom(in.Position)); qty > 0 {
		orders = append(orders, domain.NewBuyOrder(in.Symbol, bidPrice, qty))
	}
	if qty := orderSize(m.params.MaxOrderSize, domain.SellHeadroom(in.Position)); qty > 0 {
		orders = append(orders, domain.NewSellOrder(in.Symbol, askPrice, qty))
	}
	return orders
}
