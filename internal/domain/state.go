package domain

import "sort"

// TradingState is the snapshot handed to the trader on every tick.
// TraderData is the opaque blob returned by the previous tick ("" on the first).
type TradingState struct {
	TraderData  string                `json:"trader_data"`
	Timestamp   int64                 `json:"timestamp"`
	OrderDepths map[string]OrderDepth `json:"order_depths"`
	Position    map[string]int        `json:"position"`
}

// PositionOf returns the current signed position for symbol, 0 if flat or unknown.
func (s TradingState) PositionOf(symbol string) int {
	return s.Position[symbol]
}

// Symbols returns the products present in the snapshot, sorted.
func (s TradingState) Symbols() []string {
	symbols := make([]string, 0, len(s.OrderDepths))
	for sym := range s.OrderDepths {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}
