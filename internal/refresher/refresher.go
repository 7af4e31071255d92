// Package refresher prewarms the memo cache on a cron schedule so
// interactive requests do not block on provider round trips.
package refresher

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockBoard/internal/history"
)

// Refresher periodically fetches every configured ticker at the default
// day count.
type Refresher struct {
	Cron    *cron.Cron
	Fetcher *history.Fetcher
	Tickers map[string]string
	Days    int
}

// New creates a Refresher.
func New(fetcher *history.Fetcher, tickers map[string]string, days int) *Refresher {
	return &Refresher{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: fetcher,
		Tickers: tickers,
		Days:    days,
	}
}

// Register schedules the warm task with the given 6-field cron spec.
func (r *Refresher) Register(spec string) error {
	if _, err := r.Cron.AddFunc(spec, r.WarmNow); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Println("[INFO] refresher started")
}

// Stop stops the cron scheduler gracefully.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresher stopped")
}

// WarmNow fetches all tickers once, immediately.
func (r *Refresher) WarmNow() {
	log.Println("[INFO] warming price cache")
	for name, symbol := range r.Tickers {
		if _, err := r.Fetcher.Fetch(name, symbol, r.Days); err != nil {
			log.Printf("[WARN] warm %q (%s): %v", name, symbol, err)
		}
	}
}
