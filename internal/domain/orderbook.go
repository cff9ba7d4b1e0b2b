package domain

import (
	"fmt"

	"island_go/pkg/quant"
)

// OrderDepth is one product's order book for a single tick.
// Keys are prices, values are available quantity. Sell quantities follow the
// exchange convention and may be negative.
type OrderDepth struct {
	BuyOrders  map[int]int `json:"buy_orders"`
	SellOrders map[int]int `json:"sell_orders"`
}

// BestBid returns the highest bid price.
func (d OrderDepth) BestBid() (int, error) {
	if len(d.BuyOrders) == 0 {
		return 0, fmt.Errorf("%w: no bid levels", ErrNoLiquidity)
	}
	first := true
	best := 0
	for price := range d.BuyOrders {
		if first || price > best {
			best = price
			first = false
		}
	}
	return best, nil
}

// BestAsk returns the lowest ask price.
func (d OrderDepth) BestAsk() (int, error) {
	if len(d.SellOrders) == 0 {
		return 0, fmt.Errorf("%w: no ask levels", ErrNoLiquidity)
	}
	first := true
	best := 0
	for price := range d.SellOrders {
		if first || price < best {
			best = price
			first = false
		}
	}
	return best, nil
}

// Touch returns best bid and best ask together.
func (d OrderDepth) Touch() (bid, ask int, err error) {
	if bid, err = d.BestBid(); err != nil {
		return 0, 0, err
	}
	if ask, err = d.BestAsk(); err != nil {
		return 0, 0, err
	}
	return bid, ask, nil
}

// MidPrice is the average of best bid and best ask.
// A book with an empty side has no mid price and returns ErrNoLiquidity.
func (d OrderDepth) MidPrice() (float64, error) {
	bid, ask, err := d.Touch()
	if err != nil {
		return 0, err
	}
	return quant.Mid(bid, ask), nil
}
