package presenter

import (
	"errors"
	"testing"
	"time"

	"StockBoard/internal/cache"
	"StockBoard/internal/collector"
	"StockBoard/internal/history"
	"StockBoard/internal/model"
)

// stubSource serves scripted bars or errors per symbol.
type stubSource struct {
	bars map[string][]model.OHLCV
	errs map[string]error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) History(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	if err := s.errs[symbol]; err != nil {
		return nil, err
	}
	var out []model.OHLCV
	for _, b := range s.bars[symbol] {
		if !b.Time.Before(start) && !b.Time.After(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func newFetcher(src collector.Fetcher) *history.Fetcher {
	return history.New(src, cache.NewMemoryStore(), 30, 12)
}

func TestBuildTable_OmitsFailedSymbols(t *testing.T) {
	src := &stubSource{
		bars: map[string][]model.OHLCV{
			"AAPL": collector.GenerateBars(150, 40),
			"META": collector.GenerateBars(300, 40),
		},
		errs: map[string]error{"GHST": errors.New("unknown symbol")},
	}
	tickers := map[string]string{"apple": "AAPL", "meta": "META", "ghost": "GHST"}

	table := BuildTable(newFetcher(src), tickers, 20)
	names := table.Names()
	if len(names) != 2 || names[0] != "apple" || names[1] != "meta" {
		t.Fatalf("expected [apple meta], got %v", names)
	}
	for _, s := range table.Series {
		if s.Len() != 20 {
			t.Errorf("%s: expected 20 points, got %d", s.Name, s.Len())
		}
	}
}

func TestBuildChart_EmptySelection(t *testing.T) {
	var table Table
	if _, err := BuildChart(table, nil, model.DisplayRange{Min: 0, Max: 3500}); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestLong_PreservesCountAndOrder(t *testing.T) {
	table := Table{Series: []model.PriceSeries{
		{Name: "apple", Symbol: "AAPL", Points: []model.PricePoint{
			{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Close: 170},
			{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Close: 171},
		}},
		{Name: "meta", Symbol: "META", Points: []model.PricePoint{
			{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Close: 490},
		}},
	}}

	rows := Long(table)
	if len(rows) != 3 {
		t.Fatalf("expected 3 long rows, got %d", len(rows))
	}
	want := []LongRow{
		{Date: "2024-03-04", Name: "apple", Price: 170},
		{Date: "2024-03-05", Name: "apple", Price: 171},
		{Date: "2024-03-04", Name: "meta", Price: 490},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestRows_DisplayFormatAndRaggedSeries(t *testing.T) {
	table := Table{Series: []model.PriceSeries{
		{Name: "apple", Points: []model.PricePoint{
			{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Close: 170},
			{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Close: 171},
		}},
		{Name: "meta", Points: []model.PricePoint{
			{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Close: 490},
		}},
	}}

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(rows))
	}
	if rows[0].Date != "04 March 2024" || rows[1].Date != "05 March 2024" {
		t.Fatalf("unexpected display dates: %q, %q", rows[0].Date, rows[1].Date)
	}
	if _, ok := rows[0].Prices["meta"]; ok {
		t.Error("meta should be absent on a date it has no price for")
	}
	if got := rows[1].Prices["meta"]; got != 490 {
		t.Errorf("meta price on second date = %v, want 490", got)
	}
}

func TestSelect_PreservesOrderIgnoresUnknown(t *testing.T) {
	table := Table{Series: []model.PriceSeries{
		{Name: "amazon"}, {Name: "apple"}, {Name: "google"},
	}}
	sub := table.Select([]string{"google", "apple", "tesla"})
	names := sub.Names()
	if len(names) != 2 || names[0] != "apple" || names[1] != "google" {
		t.Fatalf("expected [apple google], got %v", names)
	}
}

func TestEndToEnd_ChartForSingleCompany(t *testing.T) {
	src := &stubSource{bars: map[string][]model.OHLCV{
		"AAPL": collector.GenerateBars(150, 40),
		"META": collector.GenerateBars(300, 40),
	}}
	tickers := map[string]string{"apple": "AAPL", "meta": "META"}

	table := BuildTable(newFetcher(src), tickers, 20)
	if len(table.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(table.Series))
	}
	for _, s := range table.Series {
		if s.Len() != 20 {
			t.Fatalf("%s: expected 20 points, got %d", s.Name, s.Len())
		}
	}

	spec, err := BuildChart(table, []string{"apple"}, model.DisplayRange{Min: 0, Max: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := spec.Encoding.Y.Scale.Domain; got != [2]float64{0, 200} {
		t.Errorf("y domain = %v, want [0 200]", got)
	}
	if spec.Encoding.Y.Stack != nil {
		t.Error("expected stack to be null")
	}
	if spec.Mark.Type != "line" || !spec.Mark.Clip {
		t.Errorf("unexpected mark: %+v", spec.Mark)
	}
	if len(spec.Data.Values) != 20 {
		t.Fatalf("expected 20 chart rows, got %d", len(spec.Data.Values))
	}
	for _, row := range spec.Data.Values {
		if row.Name != "apple" {
			t.Fatalf("unexpected series in chart: %q", row.Name)
		}
	}
}
