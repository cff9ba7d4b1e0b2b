package domain

// Product identifies a tradable instrument on the island exchange.
// Routing is done on this tagged value rather than on raw symbol strings.
type Product int

const (
	UnknownProduct Product = iota
	RainforestResin
	Kelp
	SquidInk
)

// Exchange symbols for the known products.
const (
	SymbolRainforestResin = "RAINFOREST_RESIN"
	SymbolKelp            = "KELP"
	SymbolSquidInk        = "SQUID_INK"
)

// KnownProducts lists every product the trader has a strategy for.
var KnownProducts = []Product{RainforestResin, Kelp, SquidInk}

// ParseProduct maps an exchange symbol to its Product.
// Unrecognized symbols yield UnknownProduct.
func ParseProduct(symbol string) Product {
	switch symbol {
	case SymbolRainforestResin:
		return RainforestResin
	case SymbolKelp:
		return Kelp
	case SymbolSquidInk:
		return SquidInk
	default:
		return UnknownProduct
	}
}

// String returns the exchange symbol of the product.
func (p Product) String() string {
	switch p {
	case RainforestResin:
		return SymbolRainforestResin
	case Kelp:
		return SymbolKelp
	case SquidInk:
		return SymbolSquidInk
	default:
		return "UNKNOWN"
	}
}

// IsKnown reports whether the product has a dedicated strategy.
func (p Product) IsKnown() bool {
	return p != UnknownProduct
}
