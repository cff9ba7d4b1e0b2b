package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tradeColumns = 7
	priceColumns = 17
)

// TradesPath returns the trades file for a round and day under dir.
func TradesPath(dir string, round, day int) string {
	return filepath.Join(dir, fmt.Sprintf("trades_round_%d_day_%d.csv", round, day))
}

// PricesPath returns the prices file for a round and day under dir.
func PricesPath(dir string, round, day int) string {
	return filepath.Join(dir, fmt.Sprintf("prices_round_%d_day_%d.csv", round, day))
}

// Loader reads the exchange CSV exports.
type Loader struct {
	sep rune
}

// NewLoader creates a loader for files separated by sep.
func NewLoader(sep rune) *Loader {
	return &Loader{sep: sep}
}

// LoadTrades reads a trades file.
func (l *Loader) LoadTrades(path string) ([]Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trades: %w", err)
	}
	defer f.Close()

	return l.ReadTrades(f)
}

// ReadTrades parses trades from r. The first record is the header.
// Columns are taken by position, not by header name.
func (l *Loader) ReadTrades(r io.Reader) ([]Trade, error) {
	var trades []Trade
	err := l.each(r, tradeColumns, func(rec []string) {
		trades = append(trades, Trade{
			Timestamp: parseNum(rec[0]),
			Buyer:     rec[1],
			Seller:    rec[2],
			Symbol:    rec[3],
			Currency:  rec[4],
			Price:     parseNum(rec[5]),
			Quantity:  parseNum(rec[6]),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	return trades, nil
}

// LoadPrices reads a prices file.
func (l *Loader) LoadPrices(path string) ([]PriceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()

	return l.ReadPrices(f)
}

// ReadPrices parses quote rows from r. The first record is the header.
func (l *Loader) ReadPrices(r io.Reader) ([]PriceRow, error) {
	var rows []PriceRow
	err := l.each(r, priceColumns, func(rec []string) {
		row := PriceRow{
			Day:           parseNum(rec[0]),
			Timestamp:     parseNum(rec[1]),
			Product:       rec[2],
			MidPrice:      parseNum(rec[15]),
			ProfitAndLoss: parseNum(rec[16]),
		}
		for i := 0; i < Depth; i++ {
			row.Bids[i] = Level{Price: parseNum(rec[3+2*i]), Volume: parseNum(rec[4+2*i])}
			row.Asks[i] = Level{Price: parseNum(rec[9+2*i]), Volume: parseNum(rec[10+2*i])}
		}
		rows = append(rows, row)
	})
	if err != nil {
		return nil, fmt.Errorf("read prices: %w", err)
	}
	return rows, nil
}

// each calls fn for every data record, skipping the header.
func (l *Loader) each(r io.Reader, columns int, fn func([]string)) error {
	cr := csv.NewReader(r)
	cr.Comma = l.sep
	cr.FieldsPerRecord = columns
	cr.ReuseRecord = true

	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if header {
			header = false
			continue
		}
		fn(rec)
	}
}

// parseNum coerces a CSV cell to a number; blanks and junk become invalid.
func parseNum(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
