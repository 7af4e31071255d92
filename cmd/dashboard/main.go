package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockBoard/internal/cache"
	"StockBoard/internal/collector"
	"StockBoard/internal/config"
	"StockBoard/internal/history"
	"StockBoard/internal/refresher"
	"StockBoard/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockBoard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init provider
	var source collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		source = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		source = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", source.Name())

	// Init memo cache
	var store cache.Store
	if cfg.Cache.Backend == "sqlite" {
		ss, err := cache.NewSQLiteStore(cfg.Cache.SQLiteDSN)
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using memory: %v", err)
			store = cache.NewMemoryStore()
		} else {
			store = ss
		}
	} else {
		store = cache.NewMemoryStore()
	}
	defer store.Close()

	// Init history fetcher
	fetcher := history.New(source, store, cfg.Fetch.LookbackIncrement, cfg.Fetch.MaxWidenings)

	// Init HTTP server
	srv, err := server.New(cfg, fetcher)
	if err != nil {
		log.Fatalf("[FATAL] init server: %v", err)
	}
	httpSrv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.Handler(),
	}

	// Optional cache prewarmer
	if cfg.Refresh.Cron != "" {
		ref := refresher.New(fetcher, cfg.Tickers, cfg.Defaults.Days)
		if err := ref.Register(cfg.Refresh.Cron); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		ref.Start()
		defer ref.Stop()

		if os.Getenv("WARM_ON_START") == "true" {
			log.Println("[INFO] WARM_ON_START enabled, warming cache now")
			go ref.WarmNow()
		}
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] StockBoard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] StockBoard stopped")
}
