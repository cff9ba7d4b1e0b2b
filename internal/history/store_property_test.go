package history

import (
	"testing"

	"island_go/internal/domain"

	"pgregory.net/rapid"
)

func TestProperty_BoundedHistoryKeepsMostRecent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sym := rapid.SampledFrom([]string{
			domain.SymbolRainforestResin, domain.SymbolKelp, domain.SymbolSquidInk,
		}).Draw(t, "symbol")
		prices := rapid.SliceOfN(rapid.Float64Range(1, 20000), 0, 250).Draw(t, "prices")

		s := New(DefaultBounds)
		for _, p := range prices {
			s.Append(sym, p)
		}

		bound := DefaultBounds.For(sym)
		want := len(prices)
		if want > bound {
			want = bound
		}

		got := s.Prices(sym)
		if len(got) != want {
			t.Fatalf("len = %d, want min(%d, %d)", len(got), len(prices), bound)
		}
		offset := len(prices) - want
		for i := range got {
			if got[i] != prices[offset+i] {
				t.Fatalf("index %d: got %v, want %v", i, got[i], prices[offset+i])
			}
		}
	})
}

func TestProperty_EncodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		syms := []string{domain.SymbolRainforestResin, domain.SymbolKelp, domain.SymbolSquidInk, "PEARLS"}
		n := rapid.IntRange(0, 150).Draw(t, "n")

		s := New(DefaultBounds)
		for i := 0; i < n; i++ {
			sym := rapid.SampledFrom(syms).Draw(t, "sym")
			// half-tick prices like the exchange produces
			p := float64(rapid.IntRange(0, 40000).Draw(t, "halfTicks")) / 2
			s.Append(sym, p)
		}

		blob, err := s.Encode()
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		decoded, err := Decode(blob, DefaultBounds)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		for _, sym := range syms {
			a, b := s.Prices(sym), decoded.Prices(sym)
			if len(a) != len(b) {
				t.Fatalf("%s: len %d != %d", sym, len(a), len(b))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("%s[%d]: %v != %v", sym, i, a[i], b[i])
				}
			}
		}
	})
}
