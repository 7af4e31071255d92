// Package server exposes the dashboard page and its JSON API.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"StockBoard/internal/config"
	"StockBoard/internal/history"
	"StockBoard/internal/model"
	"StockBoard/internal/presenter"
)

//go:embed index.html
var content embed.FS

// msgEmptySelection is the user-facing validation text for an empty
// company selection.
const msgEmptySelection = "少なくとも一社は選んでください。"

// Server serves the dashboard HTTP API.
type Server struct {
	cfg     *config.Config
	fetcher *history.Fetcher
	tmpl    *template.Template
}

// New creates the dashboard server.
func New(cfg *config.Config, fetcher *history.Fetcher) (*Server, error) {
	tmpl, err := template.ParseFS(content, "index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Server{cfg: cfg, fetcher: fetcher, tmpl: tmpl}, nil
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/chart", s.handleChart)
	mux.HandleFunc("GET /api/table", s.handleTable)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

type pageData struct {
	Companies  []string
	Selected   map[string]bool
	Days       int
	MinDays    int
	MaxDays    int
	PriceMin   float64
	PriceMax   float64
	PriceFloor float64
	PriceCeil  float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	companies := make([]string, 0, len(s.cfg.Tickers))
	for name := range s.cfg.Tickers {
		companies = append(companies, name)
	}
	sort.Strings(companies)

	selected := make(map[string]bool, len(s.cfg.Defaults.Selected))
	for _, name := range s.cfg.Defaults.Selected {
		selected[name] = true
	}

	data := pageData{
		Companies:  companies,
		Selected:   selected,
		Days:       s.cfg.Defaults.Days,
		MinDays:    config.MinDays,
		MaxDays:    config.MaxDays,
		PriceMin:   s.cfg.Defaults.PriceMin,
		PriceMax:   s.cfg.Defaults.PriceMax,
		PriceFloor: config.PriceFloor,
		PriceCeil:  config.PriceCeil,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("[ERROR] render index: %v", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	days, rng, companies, err := s.chartParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table := presenter.BuildTable(s.fetcher, s.cfg.Tickers, days)
	spec, err := presenter.BuildChart(table, companies, rng)
	if errors.Is(err, presenter.ErrEmptySelection) {
		writeError(w, http.StatusUnprocessableEntity, msgEmptySelection)
		return
	}
	if err != nil {
		log.Printf("[ERROR] build chart: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	days, _, companies, err := s.chartParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(companies) == 0 {
		writeError(w, http.StatusUnprocessableEntity, msgEmptySelection)
		return
	}

	table := presenter.BuildTable(s.fetcher, s.cfg.Tickers, days).Select(companies)
	writeJSON(w, http.StatusOK, struct {
		Names []string           `json:"names"`
		Rows  []presenter.WideRow `json:"rows"`
	}{Names: table.Names(), Rows: table.Rows()})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// chartParams parses and validates days, ymin/ymax and the company
// selection. Missing parameters fall back to the configured defaults; a
// present-but-empty companies parameter means an empty selection.
func (s *Server) chartParams(r *http.Request) (int, model.DisplayRange, []string, error) {
	q := r.URL.Query()

	days := s.cfg.Defaults.Days
	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, model.DisplayRange{}, nil, fmt.Errorf("invalid days %q", v)
		}
		days = n
	}
	if days < config.MinDays || days > config.MaxDays {
		return 0, model.DisplayRange{}, nil, fmt.Errorf("days must be in [%d,%d]", config.MinDays, config.MaxDays)
	}

	rng := model.DisplayRange{Min: s.cfg.Defaults.PriceMin, Max: s.cfg.Defaults.PriceMax}
	var err error
	if v := q.Get("ymin"); v != "" {
		if rng.Min, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, model.DisplayRange{}, nil, fmt.Errorf("invalid ymin %q", v)
		}
	}
	if v := q.Get("ymax"); v != "" {
		if rng.Max, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, model.DisplayRange{}, nil, fmt.Errorf("invalid ymax %q", v)
		}
	}
	if rng.Min < config.PriceFloor || rng.Max > config.PriceCeil || rng.Min > rng.Max {
		return 0, model.DisplayRange{}, nil, fmt.Errorf("range must stay within [%.1f,%.1f]", config.PriceFloor, config.PriceCeil)
	}

	companies := s.cfg.Defaults.Selected
	if q.Has("companies") {
		companies = nil
		for _, name := range strings.Split(q.Get("companies"), ",") {
			if name = strings.TrimSpace(name); name != "" {
				companies = append(companies, name)
			}
		}
	}
	return days, rng, companies, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
