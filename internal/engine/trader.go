package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"island_go/internal/domain"
	"island_go/internal/history"
	"island_go/internal/infra"
	"island_go/internal/strategy"
)

// Result is what the trader hands back to the exchange for one tick.
type Result struct {
	Orders      map[string][]domain.Order `json:"orders"`
	Conversions int                       `json:"conversions"`
	TraderData  string                    `json:"trader_data"`
}

// Trader is the per-tick dispatcher.
// It holds only immutable wiring; all trading state travels in
// TradingState.TraderData and Result.TraderData.
type Trader struct {
	registry *strategy.Registry
	bounds   history.Bounds
	metrics  *infra.Metrics
	logger   *slog.Logger
}

// Option customizes a Trader.
type Option func(*Trader)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Trader) { t.logger = l }
}

// WithMetrics sets the metrics sink. Defaults to infra.GlobalMetrics.
func WithMetrics(m *infra.Metrics) Option {
	return func(t *Trader) { t.metrics = m }
}

// WithBounds sets the history bounds. Defaults to history.DefaultBounds.
func WithBounds(b history.Bounds) Option {
	return func(t *Trader) { t.bounds = b }
}

// NewTrader creates a trader over the given strategy registry.
func NewTrader(registry *strategy.Registry, opts ...Option) *Trader {
	t := &Trader{
		registry: registry,
		bounds:   history.DefaultBounds,
		metrics:  infra.GlobalMetrics,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTraderFromConfig wires a trader from the loaded configuration.
func NewTraderFromConfig(cfg *infra.Config, opts ...Option) *Trader {
	base := []Option{WithBounds(cfg.HistoryBounds())}
	return NewTrader(strategy.NewRegistry(cfg.Strategy), append(base, opts...)...)
}

// Run processes one tick: decode history, update every product present in
// the snapshot, collect its orders and re-encode history.
// Problems confined to one product or to the incoming blob are logged and
// absorbed; the only returned error is a failure to encode the new blob.
func (t *Trader) Run(ctx context.Context, state domain.TradingState) (Result, error) {
	start := time.Now()

	store, err := history.Decode(state.TraderData, t.bounds)
	if err != nil {
		t.metrics.RecordStateReset()
		t.logger.WarnContext(ctx, "Trader data discarded, starting fresh history",
			slog.Int64("timestamp", state.Timestamp), slog.Any("error", err))
	}

	result := Result{
		Orders:      make(map[string][]domain.Order, len(state.OrderDepths)),
		Conversions: 0,
	}

	orderCount := 0
	for _, symbol := range state.Symbols() {
		orders := t.processProduct(ctx, store, state, symbol)
		result.Orders[symbol] = orders
		orderCount += len(orders)
	}

	result.TraderData, err = store.Encode()
	if err != nil {
		t.metrics.RecordError()
		return Result{}, fmt.Errorf("tick %d: %w", state.Timestamp, err)
	}

	t.metrics.RecordTick(time.Since(start).Nanoseconds(), orderCount)
	t.logger.DebugContext(ctx, "Tick processed",
		slog.Int64("timestamp", state.Timestamp),
		slog.Int("products", len(state.OrderDepths)),
		slog.Int("orders", orderCount))

	return result, nil
}

// processProduct updates one product's history and asks its strategy for orders.
// It never returns nil so every product in the snapshot gets an entry.
func (t *Trader) processProduct(ctx context.Context, store *history.Store, state domain.TradingState, symbol string) (orders []domain.Order) {
	orders = []domain.Order{}

	// A misbehaving strategy loses its product for this tick, not the whole tick
	defer func() {
		if r := recover(); r != nil {
			t.metrics.RecordError()
			t.logger.ErrorContext(ctx, "STRATEGY_PANIC",
				slog.String("symbol", symbol), slog.Any("panic", r))
			orders = []domain.Order{}
		}
	}()

	depth := state.OrderDepths[symbol]
	mid, err := depth.MidPrice()
	if err != nil {
		if errors.Is(err, domain.ErrNoLiquidity) {
			t.metrics.RecordLiquidityFailure()
		}
		t.logger.WarnContext(ctx, "Product skipped",
			slog.String("symbol", symbol),
			slog.Int64("timestamp", state.Timestamp),
			slog.Any("error", err))
		return orders
	}

	store.Append(symbol, mid)

	in := strategy.Input{
		Symbol:   symbol,
		Depth:    depth,
		Position: state.PositionOf(symbol),
		Prices:   store.Prices(symbol),
	}
	for _, o := range t.registry.For(domain.ParseProduct(symbol)).Orders(in) {
		if o.Quantity == 0 || !o.WithinLimit(in.Position) {
			t.logger.ErrorContext(ctx, "Order dropped: outside position envelope",
				slog.String("symbol", symbol), slog.Int("position", in.Position), slog.Any("order", o))
			continue
		}
		orders = append(orders, o)
	}
	return orders
}
