package collector

import (
	"time"

	"StockBoard/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
type Fetcher interface {
	// History returns the daily bars for symbol between start and end
	// (inclusive), in chronological order. An empty slice with a nil
	// error means the provider has no data for that window.
	History(symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
