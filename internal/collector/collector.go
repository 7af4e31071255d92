package collector

import (
	"time"

	"StockBoard/internal/model"
)

// Window records one requested history window, for test assertions.
type Window struct {
	Start time.Time
	End   time.Time
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars       []model.OHLCV // full available history, chronological
	Err        error         // returned on every call if set
	EmptyCalls int           // number of initial calls answered with no data
	Calls      []Window      // every window requested so far
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) History(_ string, start, end time.Time) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, Window{Start: start, End: end})
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Calls) <= m.EmptyCalls {
		return nil, nil
	}
	var out []model.OHLCV
	for _, b := range m.Bars {
		if b.Time.Before(start) || b.Time.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// GenerateBars builds count daily bars on consecutive business days
// ending at the most recent weekday, closing at basePrice with a small
// deterministic drift.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	day := model.Day(time.Now())
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}

	bars := make([]model.OHLCV, count)
	for i := count - 1; i >= 0; i-- {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   day,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
		day = day.AddDate(0, 0, -1)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
	}
	return bars
}
