// Package history keeps the rolling mid-price windows that survive between
// ticks only by being encoded into the trader data blob.
package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"island_go/internal/domain"
)

// Window sizes per known product.
const (
	RainforestResinBound = 100
	KelpBound            = 20
	SquidInkBound        = 10
)

// Unbounded disables truncation for a series.
const Unbounded = 0

// Series is one product's retained mid-prices, oldest first.
type Series struct {
	Prices []float64 `json:"prices"`
}

// Bounds maps a product to its window size.
type Bounds struct {
	// Unknown applies to symbols without a known product. Unbounded keeps
	// every sample, which lets unknown products accumulate forever.
	Unknown int
}

// DefaultBounds keeps unknown products unbounded.
var DefaultBounds = Bounds{Unknown: Unbounded}

// For returns the window size for symbol.
func (b Bounds) For(symbol string) int {
	switch domain.ParseProduct(symbol) {
	case domain.RainforestResin:
		return RainforestResinBound
	case domain.Kelp:
		return KelpBound
	case domain.SquidInk:
		return SquidInkBound
	default:
		return b.Unknown
	}
}

// Store is the decoded trader data: symbol -> series.
// A Store lives for a single tick; it is rebuilt from the blob each call.
type Store struct {
	series map[string]*Series
	opaque map[string]json.RawMessage // entries this version cannot read
	bounds Bounds
}

// New returns a store with one empty series per known product.
func New(bounds Bounds) *Store {
	s := &Store{series: make(map[string]*Series), bounds: bounds}
	for _, p := range domain.KnownProducts {
		s.series[p.String()] = &Series{Prices: []float64{}}
	}
	return s
}

// Decode rebuilds a store from a blob produced by Encode.
// An empty blob yields a fresh store. A malformed blob also yields a fresh
// store, together with an error wrapping domain.ErrMalformedState so the
// caller can report it; the returned store is always usable.
// Symbols not known to this version are carried through untouched.
func Decode(blob string, bounds Bounds) (*Store, error) {
	if strings.TrimSpace(blob) == "" {
		return New(bounds), nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return New(bounds), fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	if raw == nil {
		// "null" decodes without error into a nil map
		return New(bounds), fmt.Errorf("%w: null state", domain.ErrMalformedState)
	}

	s := &Store{series: make(map[string]*Series, len(raw)), bounds: bounds}
	for sym, msg := range raw {
		if !domain.ParseProduct(sym).IsKnown() {
			// kept verbatim until this tick appends to it
			if s.opaque == nil {
				s.opaque = make(map[string]json.RawMessage)
			}
			s.opaque[sym] = msg
			continue
		}
		series, err := decodeSeries(msg)
		if err != nil {
			return New(bounds), fmt.Errorf("%w: %s: %v", domain.ErrMalformedState, sym, err)
		}
		s.series[sym] = series
	}
	return s, nil
}

func decodeSeries(msg json.RawMessage) (*Series, error) {
	var series Series
	if err := json.Unmarshal(msg, &series); err != nil {
		return nil, err
	}
	if series.Prices == nil {
		series.Prices = []float64{}
	}
	return &series, nil
}

// Encode serializes the store back into the trader data blob.
func (s *Store) Encode() (string, error) {
	out := make(map[string]any, len(s.series)+len(s.opaque))
	for sym, msg := range s.opaque {
		out[sym] = msg
	}
	for sym, series := range s.series {
		out[sym] = series
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode trader state: %w", err)
	}
	return string(b), nil
}

// Append pushes price onto symbol's series and evicts the oldest samples
// until the series fits its bound.
func (s *Store) Append(symbol string, price float64) {
	series, ok := s.lookup(symbol)
	if !ok {
		series = &Series{Prices: []float64{}}
	}
	s.series[symbol] = series
	delete(s.opaque, symbol)

	series.Prices = append(series.Prices, price)

	bound := s.bounds.For(symbol)
	if bound > 0 && len(series.Prices) > bound {
		// copy down so the backing array does not grow across appends
		n := copy(series.Prices, series.Prices[len(series.Prices)-bound:])
		series.Prices = series.Prices[:n]
	}
}

// lookup finds symbol's series, reading it out of an opaque entry if needed.
func (s *Store) lookup(symbol string) (*Series, bool) {
	if series, ok := s.series[symbol]; ok {
		return series, true
	}
	msg, ok := s.opaque[symbol]
	if !ok {
		return nil, false
	}
	series, err := decodeSeries(msg)
	if err != nil {
		return nil, false
	}
	return series, true
}

// Prices returns a copy of symbol's retained prices, oldest first.
func (s *Store) Prices(symbol string) []float64 {
	series, ok := s.lookup(symbol)
	if !ok {
		return nil
	}
	out := make([]float64, len(series.Prices))
	copy(out, series.Prices)
	return out
}

// Len returns how many prices are retained for symbol.
func (s *Store) Len(symbol string) int {
	if series, ok := s.lookup(symbol); ok {
		return len(series.Prices)
	}
	return 0
}

// Symbols returns every symbol held by the store, including unknown ones.
func (s *Store) Symbols() []string {
	out := make([]string, 0, len(s.series)+len(s.opaque))
	for sym := range s.series {
		out = append(out, sym)
	}
	for sym := range s.opaque {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
