package domain

import (
	"errors"
	"testing"
)

func TestOrderDepth_Touch(t *testing.T) {
	depth := OrderDepth{
		BuyOrders:  map[int]int{9996: 1, 9998: 20, 9995: 30},
		SellOrders: map[int]int{10002: -20, 10004: -5, 10005: -30},
	}

	t.Run("best bid is highest bid", func(t *testing.T) {
		bid, err := depth.BestBid()
		if err != nil {
			t.Fatalf("BestBid failed: %v", err)
		}
		if bid != 9998 {
			t.Errorf("Expected 9998, got %d", bid)
		}
	})

	t.Run("best ask is lowest ask", func(t *testing.T) {
		ask, err := depth.BestAsk()
		if err != nil {
			t.Fatalf("BestAsk failed: %v", err)
		}
		if ask != 10002 {
			t.Errorf("Expected 10002, got %d", ask)
		}
	})

	t.Run("touch returns both", func(t *testing.T) {
		bid, ask, err := depth.Touch()
		if err != nil {
			t.Fatalf("Touch failed: %v", err)
		}
		if bid != 9998 || ask != 10002 {
			t.Errorf("Expected (9998, 10002), got (%d, %d)", bid, ask)
		}
	})

	t.Run("negative prices are ordered correctly", func(t *testing.T) {
		d := OrderDepth{BuyOrders: map[int]int{-5: 1, -3: 1}, SellOrders: map[int]int{-1: -1, -2: -1}}
		bid, ask, err := d.Touch()
		if err != nil {
			t.Fatalf("Touch failed: %v", err)
		}
		if bid != -3 || ask != -2 {
			t.Errorf("Expected (-3, -2), got (%d, %d)", bid, ask)
		}
	})
}

func TestOrderDepth_MissingSide(t *testing.T) {
	tests := []struct {
		name  string
		depth OrderDepth
	}{
		{"no bids", OrderDepth{SellOrders: map[int]int{10: -1}}},
		{"no asks", OrderDepth{BuyOrders: map[int]int{9: 1}}},
		{"empty book", OrderDepth{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.depth.Touch()
			if !errors.Is(err, ErrNoLiquidity) {
				t.Errorf("Expected ErrNoLiquidity, got %v", err)
			}
		})
	}
}

func TestOrder_SideAndLimit(t *testing.T) {
	buy := NewBuyOrder(SymbolKelp, 2030, 10)
	sell := NewSellOrder(SymbolKelp, 2028, 10)

	if buy.Side() != SideBuy || sell.Side() != SideSell {
		t.Errorf("Unexpected sides: %s, %s", buy.Side(), sell.Side())
	}
	if sell.Quantity != -10 || sell.Size() != 10 {
		t.Errorf("Sell order should carry negative quantity, got %d", sell.Quantity)
	}

	if !buy.WithinLimit(40) {
		t.Error("Buying 10 at position 40 stays at the limit")
	}
	if buy.WithinLimit(41) {
		t.Error("Buying 10 at position 41 breaches the limit")
	}
	if !sell.WithinLimit(-40) || sell.WithinLimit(-41) {
		t.Error("Sell limit check is wrong")
	}
}

func TestHeadroom(t *testing.T) {
	if BuyHeadroom(0) != 50 || SellHeadroom(0) != 50 {
		t.Error("Flat position should have 50 headroom both ways")
	}
	if BuyHeadroom(50) != 0 || SellHeadroom(-50) != 0 {
		t.Error("Position at the limit should have no headroom")
	}
	if BuyHeadroom(-20) != 70 || SellHeadroom(20) != 70 {
		t.Error("Headroom should extend across zero")
	}
}

func TestParseProduct(t *testing.T) {
	for _, p := range KnownProducts {
		if got := ParseProduct(p.String()); got != p {
			t.Errorf("ParseProduct(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if ParseProduct("PEARLS").IsKnown() {
		t.Error("PEARLS should be unknown")
	}
}

func TestTradingState_Symbols(t *testing.T) {
	state := TradingState{
		OrderDepths: map[string]OrderDepth{SymbolSquidInk: {}, SymbolKelp: {}, SymbolRainforestResin: {}},
		Position:    map[string]int{SymbolKelp: -7},
	}

	syms := state.Symbols()
	want := []string{SymbolKelp, SymbolRainforestResin, SymbolSquidInk}
	for i := range want {
		if syms[i] != want[i] {
			t.Fatalf("Symbols() = %v, want %v", syms, want)
		}
	}

	if state.PositionOf(SymbolKelp) != -7 || state.PositionOf(SymbolSquidInk) != 0 {
		t.Error("PositionOf returned wrong values")
	}
}

func TestOrderDepth_MidPrice(t *testing.T) {
	depth := OrderDepth{
		BuyOrders:  map[int]int{9998: 1, 9995: 1},
		SellOrders: map[int]int{10001: -1, 10003: -1},
	}
	mid, err := depth.MidPrice()
	if err != nil {
		t.Fatalf("MidPrice failed: %v", err)
	}
	if mid != 9999.5 {
		t.Errorf("Expected 9999.5, got %v", mid)
	}

	if _, err := (OrderDepth{BuyOrders: map[int]int{1: 1}}).MidPrice(); !errors.Is(err, ErrNoLiquidity) {
		t.Errorf("Expected ErrNoLiquidity, got %v", err)
	}
}
