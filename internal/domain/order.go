package domain

// Order is a limit order emitted by the trader.
// Quantity is signed: positive buys, negative sells.
type Order struct {
	Symbol   string `json:"symbol"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// PositionLimit is the absolute inventory bound per product.
const PositionLimit = 50

// NewBuyOrder creates a buy order for qty units.
func NewBuyOrder(symbol string, price, qty int) Order {
	return Order{Symbol: symbol, Price: price, Quantity: qty}
}

// NewSellOrder creates a sell order for qty units. qty is given as a positive size.
func NewSellOrder(symbol string, price, qty int) Order {
	return Order{Symbol: symbol, Price: price, Quantity: -qty}
}

// Side returns SideBuy or SideSell.
func (o Order) Side() string {
	if o.Quantity < 0 {
		return SideSell
	}
	return SideBuy
}

// Size returns the unsigned order quantity.
func (o Order) Size() int {
	if o.Quantity < 0 {
		return -o.Quantity
	}
	return o.Quantity
}

// BuyHeadroom is how many units can still be bought before hitting +PositionLimit.
func BuyHeadroom(position int) int {
	return PositionLimit - position
}

// SellHeadroom is how many units can still be sold before hitting -PositionLimit.
func SellHeadroom(position int) int {
	return PositionLimit + position
}

// WithinLimit reports whether filling the order keeps the position inside the envelope.
func (o Order) WithinLimit(position int) bool {
	after := position + o.Quantity
	return after <= PositionLimit && after >= -PositionLimit
}
