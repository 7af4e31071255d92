// Package history implements the trailing-window closing-price fetch:
// ask the provider for a window with a safety margin, widen it stepwise
// while the result is empty, then trim to the requested day count.
package history

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"StockBoard/internal/cache"
	"StockBoard/internal/collector"
	"StockBoard/internal/model"
)

// ErrNoData means the provider kept returning empty results until the
// widening bound was exhausted (delisted or invalid symbol, typically).
var ErrNoData = errors.New("no data within maximum lookback")

const (
	defaultLookbackIncrement = 30
	defaultMaxWidenings      = 12
)

// Fetcher retrieves trailing closing-price series and memoizes them per
// (symbol, days, name) for the lifetime of the process.
type Fetcher struct {
	source    collector.Fetcher
	store     cache.Store
	increment int
	maxWiden  int
	now       func() time.Time
}

// New creates a Fetcher. Zero increment or maxWidenings select the
// defaults (30 business days, 12 widenings).
func New(source collector.Fetcher, store cache.Store, increment, maxWidenings int) *Fetcher {
	if increment <= 0 {
		increment = defaultLookbackIncrement
	}
	if maxWidenings <= 0 {
		maxWidenings = defaultMaxWidenings
	}
	return &Fetcher{
		source:    source,
		store:     store,
		increment: increment,
		maxWiden:  maxWidenings,
		now:       time.Now,
	}
}

// Fetch returns the most recent `days` closing prices for symbol, labeled
// with the given display name. The series is ascending by date with no
// duplicate dates; it may be shorter than `days` when the provider has
// less history. A provider error aborts immediately (no retry); only
// empty results trigger window widening, bounded by maxWidenings.
func (f *Fetcher) Fetch(name, symbol string, days int) (model.PriceSeries, error) {
	if days <= 0 {
		return model.PriceSeries{}, fmt.Errorf("days must be positive, got %d", days)
	}

	key := cache.Key{Symbol: symbol, Days: days, Name: name}
	if s, ok, err := f.store.Get(key); err != nil {
		log.Printf("[WARN] cache get %s: %v", symbol, err)
	} else if ok {
		return s, nil
	}

	end := f.now()
	start := SubBusinessDays(model.Day(end), days+f.increment)

	var bars []model.OHLCV
	for widened := 0; ; widened++ {
		var err error
		bars, err = f.source.History(symbol, start, end)
		if err != nil {
			return model.PriceSeries{}, fmt.Errorf("history %s: %w", symbol, err)
		}
		if len(bars) > 0 {
			break
		}
		if widened >= f.maxWiden {
			return model.PriceSeries{}, fmt.Errorf("history %s: %w", symbol, ErrNoData)
		}
		start = SubBusinessDays(start, f.increment)
	}

	series := buildSeries(name, symbol, bars, days)
	if err := f.store.Put(key, series); err != nil {
		log.Printf("[WARN] memoize %s: %v", symbol, err)
	}
	return series, nil
}

// buildSeries collapses bars onto trading dates (last bar wins for a
// date), sorts ascending, trims to the most recent `days` points and
// projects to the closing price.
func buildSeries(name, symbol string, bars []model.OHLCV, days int) model.PriceSeries {
	closes := make(map[time.Time]float64, len(bars))
	for _, b := range bars {
		closes[model.Day(b.Time)] = b.Close
	}

	dates := make([]time.Time, 0, len(closes))
	for d := range closes {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	points := make([]model.PricePoint, len(dates))
	for i, d := range dates {
		points[i] = model.PricePoint{Date: d, Close: closes[d]}
	}
	return model.PriceSeries{Name: name, Symbol: symbol, Points: points}
}

// SubBusinessDays steps t back by n weekdays. Market holidays are not
// modeled; the lookback margin absorbs them.
func SubBusinessDays(t time.Time, n int) time.Time {
	for i := 0; i < n; i++ {
		t = t.AddDate(0, 0, -1)
		for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}
