package analysis

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// DayReport holds both summaries for one day of data.
type DayReport struct {
	Day    int
	Trades []TradeSummary
	Prices []PriceSummary
}

// BuildDayReport loads and summarizes one round/day from dir.
func (l *Loader) BuildDayReport(dir string, round, day int) (DayReport, error) {
	trades, err := l.LoadTrades(TradesPath(dir, round, day))
	if err != nil {
		return DayReport{}, err
	}
	prices, err := l.LoadPrices(PricesPath(dir, round, day))
	if err != nil {
		return DayReport{}, err
	}
	return DayReport{
		Day:    day,
		Trades: SummarizeTrades(trades),
		Prices: SummarizePrices(prices),
	}, nil
}

// WriteTo renders the report as aligned text tables.
func (r DayReport) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "\n=== DAY %d ===\n\n", r.Day)
	fmt.Fprintln(tw, "Trade Summary (Grouped by Symbol):")
	fmt.Fprintln(tw, "symbol\tcount\tavg_price\ttotal_volume\tstd_price\tmin_price\tmax_price\t")
	for _, s := range r.Trades {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Symbol, s.Count, s.AvgPrice.StringFixed(4), s.TotalVolume.String(),
			s.StdPrice.StringFixed(4), s.MinPrice.String(), s.MaxPrice.String())
	}

	fmt.Fprintln(tw, "\nPrices Summary (Grouped by Product):")
	fmt.Fprintln(tw, "product\tcount\tavg_mid_price\tstd_mid_price\tmin_mid_price\tmax_mid_price\tavg_spread\t")
	for _, s := range r.Prices {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Product, s.Count, s.AvgMid.StringFixed(4), s.StdMid.StringFixed(4),
			s.MinMid.String(), s.MaxMid.String(), s.AvgSpread.StringFixed(4))
	}

	if err := tw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
