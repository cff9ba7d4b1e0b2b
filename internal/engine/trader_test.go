package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"island_go/internal/domain"
	"island_go/internal/history"
	"island_go/internal/infra"
	"island_go/internal/strategy"
)

func newTestTrader(t *testing.T) (*Trader, *infra.Metrics) {
	t.Helper()
	m := &infra.Metrics{}
	tr := NewTrader(
		strategy.NewRegistry(strategy.DefaultParams()),
		WithMetrics(m),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return tr, m
}

func book(bid, ask int) domain.OrderDepth {
	return domain.OrderDepth{
		BuyOrders:  map[int]int{bid: 20, bid - 1: 10},
		SellOrders: map[int]int{ask: -20, ask + 1: -10},
	}
}

// seed returns a blob whose symbol series holds prices.
func seed(t *testing.T, symbol string, prices ...float64) string {
	t.Helper()
	s := history.New(history.DefaultBounds)
	for _, p := range prices {
		s.Append(symbol, p)
	}
	blob, err := s.Encode()
	if err != nil {
		t.Fatal(err)
	}
	return blob
}

func TestTrader_FirstTickColdStart(t *testing.T) {
	tr, m := newTestTrader(t)

	res, err := tr.Run(context.Background(), domain.TradingState{
		OrderDepths: map[string]domain.OrderDepth{
			domain.SymbolRainforestResin: book(9998, 10002),
			domain.SymbolKelp:            book(2028, 2031),
			domain.SymbolSquidInk:        book(1970, 1972),
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for sym, orders := range res.Orders {
		if orders == nil || len(orders) != 0 {
			t.Errorf("%s: Expected empty order list on first tick, got %v", sym, orders)
		}
	}
	if len(res.Orders) != 3 {
		t.Errorf("Expected an entry per product, got %d", len(res.Orders))
	}
	if res.Conversions != 0 {
		t.Errorf("Expected conversions 0, got %d", res.Conversions)
	}

	store, err := history.Decode(res.TraderData, history.DefaultBounds)
	if err != nil {
		t.Fatalf("Returned blob does not decode: %v", err)
	}
	if got := store.Prices(domain.SymbolKelp); len(got) != 1 || got[0] != 2029.5 {
		t.Errorf("Expected KELP history [2029.5], got %v", got)
	}
	if m.Snapshot().TicksProcessed != 1 {
		t.Error("Expected tick to be recorded")
	}
}

func TestTrader_MarketMakingExample(t *testing.T) {
	tr, _ := newTestTrader(t)

	prices := make([]float64, 99)
	for i := range prices {
		prices[i] = 100
	}

	res, err := tr.Run(context.Background(), domain.TradingState{
		TraderData:  seed(t, domain.SymbolRainforestResin, prices...),
		OrderDepths: map[string]domain.OrderDepth{domain.SymbolRainforestResin: book(99, 101)},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []domain.Order{
		{Symbol: domain.SymbolRainforestResin, Price: 98, Quantity: 10},
		{Symbol: domain.SymbolRainforestResin, Price: 102, Quantity: -10},
	}
	got := res.Orders[domain.SymbolRainforestResin]
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTrader_MeanReversionExample(t *testing.T) {
	tr, _ := newTestTrader(t)

	// nine ticks at mid 10 already stored; this tick's mid is 5
	res, err := tr.Run(context.Background(), domain.TradingState{
		TraderData:  seed(t, domain.SymbolSquidInk, 10, 10, 10, 10, 10, 10, 10, 10, 10),
		OrderDepths: map[string]domain.OrderDepth{domain.SymbolSquidInk: book(4, 6)},
		Position:    map[string]int{domain.SymbolSquidInk: 47},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := res.Orders[domain.SymbolSquidInk]
	want := domain.Order{Symbol: domain.SymbolSquidInk, Price: 6, Quantity: 3}
	if len(got) != 1 || got[0] != want {
		t.Errorf("Expected [%v], got %v", want, got)
	}
}

func TestTrader_UnknownProduct(t *testing.T) {
	tr, _ := newTestTrader(t)

	blob := ""
	for i := 0; i < 150; i++ {
		res, err := tr.Run(context.Background(), domain.TradingState{
			TraderData:  blob,
			OrderDepths: map[string]domain.OrderDepth{"PEARLS": book(9999, 10001)},
		})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if orders := res.Orders["PEARLS"]; len(orders) != 0 {
			t.Fatalf("Unknown product should not trade, got %v", orders)
		}
		blob = res.TraderData
	}

	// No default bound: unknown products keep every sample
	store, _ := history.Decode(blob, history.DefaultBounds)
	if store.Len("PEARLS") != 150 {
		t.Errorf("Expected unbounded PEARLS history of 150, got %d", store.Len("PEARLS"))
	}
}

func TestTrader_UnknownProductWithDefaultBound(t *testing.T) {
	tr := NewTrader(strategy.NewRegistry(strategy.DefaultParams()),
		WithMetrics(&infra.Metrics{}),
		WithBounds(history.Bounds{Unknown: 25}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	blob := ""
	for i := 0; i < 40; i++ {
		res, err := tr.Run(context.Background(), domain.TradingState{
			TraderData:  blob,
			OrderDepths: map[string]domain.OrderDepth{"PEARLS": book(9999, 10001)},
		})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		blob = res.TraderData
	}

	store, _ := history.Decode(blob, history.DefaultBounds)
	if store.Len("PEARLS") != 25 {
		t.Errorf("Expected PEARLS history capped at 25, got %d", store.Len("PEARLS"))
	}
}

func TestTrader_MissingLiquiditySkipsProduct(t *testing.T) {
	tr, m := newTestTrader(t)

	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 2030
	}

	res, err := tr.Run(context.Background(), domain.TradingState{
		TraderData: seed(t, domain.SymbolKelp, prices...),
		OrderDepths: map[string]domain.OrderDepth{
			domain.SymbolKelp:     {BuyOrders: map[int]int{2028: 5}},
			domain.SymbolSquidInk: book(1970, 1972),
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := res.Orders[domain.SymbolKelp]; got == nil || len(got) != 0 {
		t.Errorf("Expected empty KELP orders, got %v", got)
	}
	store, _ := history.Decode(res.TraderData, history.DefaultBounds)
	if store.Len(domain.SymbolKelp) != 20 {
		t.Errorf("KELP history should be untouched, got len %d", store.Len(domain.SymbolKelp))
	}
	if store.Len(domain.SymbolSquidInk) != 1 {
		t.Errorf("Other products should still update, got len %d", store.Len(domain.SymbolSquidInk))
	}
	if m.Snapshot().LiquidityFailures != 1 {
		t.Errorf("Expected 1 liquidity failure, got %d", m.Snapshot().LiquidityFailures)
	}
}

func TestTrader_MalformedBlobResets(t *testing.T) {
	tr, m := newTestTrader(t)

	res, err := tr.Run(context.Background(), domain.TradingState{
		TraderData:  "not json at all",
		OrderDepths: map[string]domain.OrderDepth{domain.SymbolKelp: book(2028, 2031)},
	})
	if err != nil {
		t.Fatalf("Malformed blob must not fail the tick: %v", err)
	}

	store, err := history.Decode(res.TraderData, history.DefaultBounds)
	if err != nil {
		t.Fatalf("New blob should be valid: %v", err)
	}
	if store.Len(domain.SymbolKelp) != 1 {
		t.Errorf("Expected fresh KELP history of 1, got %d", store.Len(domain.SymbolKelp))
	}
	if m.Snapshot().StateResets != 1 {
		t.Errorf("Expected 1 state reset, got %d", m.Snapshot().StateResets)
	}
}

func TestTrader_StatelessAcrossCalls(t *testing.T) {
	tr, _ := newTestTrader(t)

	state := domain.TradingState{
		TraderData:  seed(t, domain.SymbolSquidInk, 10, 10, 10, 10, 10, 10, 10, 10, 10),
		OrderDepths: map[string]domain.OrderDepth{domain.SymbolSquidInk: book(4, 6)},
	}

	first, err := tr.Run(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	second, err := tr.Run(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}

	if first.TraderData != second.TraderData {
		t.Error("Same input must yield the same blob")
	}
	if len(first.Orders[domain.SymbolSquidInk]) != len(second.Orders[domain.SymbolSquidInk]) {
		t.Error("Same input must yield the same orders")
	}
}

type panickingStrategy struct{}

func (panickingStrategy) Orders(strategy.Input) []domain.Order { panic("boom") }

type greedyStrategy struct{}

func (greedyStrategy) Orders(in strategy.Input) []domain.Order {
	return []domain.Order{domain.NewBuyOrder(in.Symbol, 1, 100)}
}

func TestTrader_GuardsStrategies(t *testing.T) {
	reg := strategy.NewRegistry(strategy.DefaultParams())
	reg.Register(domain.Kelp, panickingStrategy{})
	reg.Register(domain.SquidInk, greedyStrategy{})

	m := &infra.Metrics{}
	tr := NewTrader(reg, WithMetrics(m), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	res, err := tr.Run(context.Background(), domain.TradingState{
		OrderDepths: map[string]domain.OrderDepth{
			domain.SymbolKelp:     book(2028, 2031),
			domain.SymbolSquidInk: book(1970, 1972),
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Orders[domain.SymbolKelp]) != 0 {
		t.Error("Panicking strategy should contribute no orders")
	}
	if len(res.Orders[domain.SymbolSquidInk]) != 0 {
		t.Error("Orders breaching the envelope must be dropped")
	}
	if m.Snapshot().ErrorsTotal != 1 {
		t.Errorf("Expected 1 recorded error, got %d", m.Snapshot().ErrorsTotal)
	}
}
