// Package analysis loads the exchange's historical trade and quote CSVs and
// computes the descriptive statistics used to pick a strategy per product.
// Nothing here feeds back into the live trader.
package analysis

import "github.com/shopspring/decimal"

// Trade is one row of a trades_round_{r}_day_{d}.csv file.
// Numeric fields that fail to parse are left invalid rather than failing the load.
type Trade struct {
	Timestamp decimal.NullDecimal
	Buyer     string
	Seller    string
	Symbol    string
	Currency  string
	Price     decimal.NullDecimal
	Quantity  decimal.NullDecimal
}

// Level is one price/volume pair of the quoted book.
type Level struct {
	Price  decimal.NullDecimal
	Volume decimal.NullDecimal
}

// Depth is the number of quoted levels per side in the prices files.
const Depth = 3

// PriceRow is one row of a prices_round_{r}_day_{d}.csv file.
type PriceRow struct {
	Day           decimal.NullDecimal
	Timestamp     decimal.NullDecimal
	Product       string
	Bids          [Depth]Level
	Asks          [Depth]Level
	MidPrice      decimal.NullDecimal
	ProfitAndLoss decimal.NullDecimal
}

// Spread returns ask_price_1 - bid_price_1, invalid when either side is missing.
func (r PriceRow) Spread() decimal.NullDecimal {
	bid, ask := r.Bids[0].Price, r.Asks[0].Price
	if !bid.Valid || !ask.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(ask.Decimal.Sub(bid.Decimal))
}

// TradeSummary aggregates trades of one symbol.
type TradeSummary struct {
	Symbol      string
	Count       int
	AvgPrice    decimal.Decimal
	TotalVolume decimal.Decimal
	StdPrice    decimal.Decimal
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
}

// PriceSummary aggregates quotes of one product.
type PriceSummary struct {
	Product   string
	Count     int
	AvgMid    decimal.Decimal
	StdMid    decimal.Decimal
	MinMid    decimal.Decimal
	MaxMid    decimal.Decimal
	AvgSpread decimal.Decimal
}
