package quant

import "github.com/shopspring/decimal"

// Mid returns the midpoint of a bid and an ask.
func Mid(bid, ask int) float64 {
	return float64(bid+ask) / 2
}

// RoundPrice rounds x to the nearest integer price, ties to even.
// Going through decimal avoids binary-float surprises on values like 9997.5.
func RoundPrice(x float64) int {
	return int(decimal.NewFromFloat(x).RoundBank(0).IntPart())
}
