package strategy

import (
	"island_go/internal/domain"
)

// Input is everything a strategy sees for one product on one tick.
type Input struct {
	Symbol   string
	Depth    domain.OrderDepth
	Position int
	// Prices is the retained mid-price window, oldest first, including
	// the mid computed for this tick.
	Prices []float64
}

// Strategy is the interface that all trading strategies must implement.
// Implementations are pure: the same Input always yields the same orders,
// and nothing is remembered between calls.
type Strategy interface {
	// Orders returns zero, one or two orders for the product.
	// Every order keeps the position within ±domain.PositionLimit.
	Orders(in Input) []domain.Order
}

// Noop never trades. It backs products without a dedicated strategy.
type Noop struct{}

func (Noop) Orders(Input) []domain.Order { return nil }

// orderSize caps a desired size by the available headroom.
// Non-positive results mean the side must be skipped.
func orderSize(maxSize, headroom int) int {
	if headroom < maxSize {
		return headroom
	}
	return maxSize
}
