// Package presenter assembles per-company price series into a wide table
// and reshapes it for tabular and chart output.
package presenter

import (
	"log"
	"sort"
	"time"

	"StockBoard/internal/history"
	"StockBoard/internal/model"
)

// Table is a set of price series sorted by display name. All series cover
// the same trailing window; individual series may be shorter when the
// provider had less history.
type Table struct {
	Series []model.PriceSeries
}

// BuildTable fetches one series per configured ticker. Tickers whose
// fetch fails are logged and omitted from the table entirely.
func BuildTable(f *history.Fetcher, tickers map[string]string, days int) Table {
	names := make([]string, 0, len(tickers))
	for name := range tickers {
		names = append(names, name)
	}
	sort.Strings(names)

	var t Table
	for _, name := range names {
		symbol := tickers[name]
		s, err := f.Fetch(name, symbol, days)
		if err != nil {
			log.Printf("[WARN] fetch %q (%s) skipped: %v", name, symbol, err)
			continue
		}
		t.Series = append(t.Series, s)
	}
	return t
}

// Names returns the display names present in the table, in order.
func (t Table) Names() []string {
	names := make([]string, len(t.Series))
	for i, s := range t.Series {
		names[i] = s.Name
	}
	return names
}

// Select restricts the table to the given display names, preserving the
// name order of the table. Unknown names are ignored.
func (t Table) Select(names []string) Table {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out Table
	for _, s := range t.Series {
		if want[s.Name] {
			out.Series = append(out.Series, s)
		}
	}
	return out
}

// WideRow is one date of the tabular view: the display-formatted date and
// the closing price per company. Companies without a price for that date
// are absent from the map (series are left ragged).
type WideRow struct {
	Date   string             `json:"date"`
	Prices map[string]float64 `json:"prices"`
}

// Rows transposes the table so dates become the first axis, ascending.
// Dates are display-formatted here, at the rendering boundary only.
func (t Table) Rows() []WideRow {
	byDate := make(map[time.Time]map[string]float64)
	for _, s := range t.Series {
		for _, p := range s.Points {
			if byDate[p.Date] == nil {
				byDate[p.Date] = make(map[string]float64)
			}
			byDate[p.Date][s.Name] = p.Close
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]WideRow, len(dates))
	for i, d := range dates {
		rows[i] = WideRow{Date: d.Format(model.DisplayDateFormat), Prices: byDate[d]}
	}
	return rows
}
