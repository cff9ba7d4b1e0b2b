package strategy

import "island_go/internal/domain"

// Params bundles the per-product strategy parameters.
type Params struct {
	MarketMaking  MarketMakingParams  `yaml:"rainforest_resin"`
	Trend         TrendParams         `yaml:"kelp"`
	MeanReversion MeanReversionParams `yaml:"squid_ink"`
}

// DefaultParams returns the competition defaults.
func DefaultParams() Params {
	return Params{
		MarketMaking:  DefaultMarketMakingParams,
		Trend:         DefaultTrendParams,
		MeanReversion: DefaultMeanReversionParams,
	}
}

// Registry routes a product to its strategy.
type Registry struct {
	byProduct map[domain.Product]Strategy
}

// NewRegistry wires the default product assignments.
func NewRegistry(params Params) *Registry {
	return &Registry{
		byProduct: map[domain.Product]Strategy{
			domain.RainforestResin: NewMarketMaker(params.MarketMaking),
			domain.Kelp:            NewTrendFollower(params.Trend),
			domain.SquidInk:        NewMeanReverter(params.MeanReversion),
		},
	}
}

// For returns the strategy for product, or Noop if none is registered.
func (r *Registry) For(product domain.Product) Strategy {
	if s, ok := r.byProduct[product]; ok {
		return s
	}
	return Noop{}
}

// Register replaces the strategy for product.
func (r *Registry) Register(product domain.Product, s Strategy) {
	r.byProduct[product] = s
}
