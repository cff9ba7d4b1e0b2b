package analysis

import (
	"sort"

	"island_go/pkg/quant"

	"github.com/shopspring/decimal"
)

// column accumulates the valid values of one numeric column for one group.
type column struct {
	values []decimal.Decimal
}

func (c *column) add(v decimal.NullDecimal) {
	if v.Valid {
		c.values = append(c.values, v.Decimal)
	}
}

func (c *column) sum() decimal.Decimal {
	return decimal.Sum(decimal.Zero, c.values...)
}

func (c *column) mean() decimal.Decimal {
	if len(c.values) == 0 {
		return decimal.Zero
	}
	return c.sum().Div(decimal.NewFromInt(int64(len(c.values))))
}

func (c *column) min() decimal.Decimal {
	if len(c.values) == 0 {
		return decimal.Zero
	}
	return decimal.Min(c.values[0], c.values[1:]...)
}

func (c *column) max() decimal.Decimal {
	if len(c.values) == 0 {
		return decimal.Zero
	}
	return decimal.Max(c.values[0], c.values[1:]...)
}

// std is the sample standard deviation (ddof=1). Fewer than two values yield 0.
func (c *column) std() decimal.Decimal {
	xs := make([]float64, len(c.values))
	for i, v := range c.values {
		xs[i] = v.InexactFloat64()
	}
	return decimal.NewFromFloat(quant.SampleStdDev(xs))
}

// SummarizeTrades groups trades by symbol, sorted by symbol.
func SummarizeTrades(trades []Trade) []TradeSummary {
	type group struct {
		count  int
		price  column
		volume column
	}
	groups := make(map[string]*group)
	for _, t := range trades {
		g, ok := groups[t.Symbol]
		if !ok {
			g = &group{}
			groups[t.Symbol] = g
		}
		g.count++
		g.price.add(t.Price)
		g.volume.add(t.Quantity)
	}

	out := make([]TradeSummary, 0, len(groups))
	for sym, g := range groups {
		out = append(out, TradeSummary{
			Symbol:      sym,
			Count:       g.count,
			AvgPrice:    g.price.mean(),
			TotalVolume: g.volume.sum(),
			StdPrice:    g.price.std(),
			MinPrice:    g.price.min(),
			MaxPrice:    g.price.max(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// SummarizePrices groups quote rows by product, sorted by product.
// Rows missing either top-of-book price are left out of the spread average.
func SummarizePrices(rows []PriceRow) []PriceSummary {
	type group struct {
		count  int
		mid    column
		spread column
	}
	groups := make(map[string]*group)
	for _, r := range rows {
		g, ok := groups[r.Product]
		if !ok {
			g = &group{}
			groups[r.Product] = g
		}
		g.count++
		g.mid.add(r.MidPrice)
		g.spread.add(r.Spread())
	}

	out := make([]PriceSummary, 0, len(groups))
	for product, g := range groups {
		out = append(out, PriceSummary{
			Product:   product,
			Count:     g.count,
			AvgMid:    g.mid.mean(),
			StdMid:    g.mid.std(),
			MinMid:    g.mid.min(),
			MaxMid:    g.mid.max(),
			AvgSpread: g.spread.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product < out[j].Product })
	return out
}
