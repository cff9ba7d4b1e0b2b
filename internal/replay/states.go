// Package replay drives the trader over recorded quote files, one snapshot
// per timestamp, without matching or fills.
package replay

import (
	"sort"

	"island_go/internal/analysis"
	"island_go/internal/domain"
)

// Tick is one reconstructed snapshot and the day it belongs to.
type Tick struct {
	Day   int
	State domain.TradingState
}

type tickKey struct {
	day       int64
	timestamp int64
}

// BuildTicks groups price rows by (day, timestamp) into trading states,
// ordered by day then timestamp. Rows without a valid day or timestamp are
// dropped, as are levels missing a price or volume. Ask volumes are stored
// negative to match the exchange convention.
func BuildTicks(rows []analysis.PriceRow) []Tick {
	byKey := make(map[tickKey]domain.TradingState)

	for _, row := range rows {
		if !row.Day.Valid || !row.Timestamp.Valid || row.Product == "" {
			continue
		}
		key := tickKey{day: row.Day.Decimal.IntPart(), timestamp: row.Timestamp.Decimal.IntPart()}

		state, ok := byKey[key]
		if !ok {
			state = domain.TradingState{
				Timestamp:   key.timestamp,
				OrderDepths: make(map[string]domain.OrderDepth),
				Position:    make(map[string]int),
			}
			byKey[key] = state
		}
		state.OrderDepths[row.Product] = depthOf(row)
	}

	keys := make([]tickKey, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].timestamp < keys[j].timestamp
	})

	ticks := make([]Tick, len(keys))
	for i, k := range keys {
		ticks[i] = Tick{Day: int(k.day), State: byKey[k]}
	}
	return ticks
}

func depthOf(row analysis.PriceRow) domain.OrderDepth {
	depth := domain.OrderDepth{
		BuyOrders:  make(map[int]int, analysis.Depth),
		SellOrders: make(map[int]int, analysis.Depth),
	}
	for _, lvl := range row.Bids {
		if lvl.Price.Valid && lvl.Volume.Valid {
			depth.BuyOrders[int(lvl.Price.Decimal.IntPart())] += int(lvl.Volume.Decimal.IntPart())
		}
	}
	for _, lvl := range row.Asks {
		if lvl.Price.Valid && lvl.Volume.Valid {
			depth.SellOrders[int(lvl.Price.Decimal.IntPart())] -= int(lvl.Volume.Decimal.Abs().IntPart())
		}
	}
	return depth
}
