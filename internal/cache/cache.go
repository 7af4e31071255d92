package cache

import "StockBoard/internal/model"

// Key identifies one memoized fetch result. The display name is part of
// the key because the series carries it.
type Key struct {
	Symbol string
	Days   int
	Name   string
}

// Store memoizes fetched price series for the lifetime of the process.
// Entries are written at most once per key; there is no eviction.
type Store interface {
	Get(key Key) (model.PriceSeries, bool, error)
	Put(key Key, series model.PriceSeries) error
	Close() error
}
