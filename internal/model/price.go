package model

import "time"

// DisplayDateFormat is the human-readable date layout used for tabular
// output, e.g. "05 March 2024". It is applied only at the rendering
// boundary; everything upstream keeps time.Time so sorting stays correct.
const DisplayDateFormat = "02 January 2006"

// ISODateFormat is the machine-sortable layout used on the chart's
// temporal axis.
const ISODateFormat = "2006-01-02"

// PricePoint is one (trading date, closing price) observation.
// Date is normalized to midnight UTC.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the closing prices for one company, ordered by
// ascending date with no duplicate dates.
type PriceSeries struct {
	Name   string // display name, e.g. "apple"
	Symbol string // exchange ticker, e.g. "AAPL"
	Points []PricePoint
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// DisplayRange bounds the chart's vertical axis. It affects rendering
// only, never what data is fetched.
type DisplayRange struct {
	Min float64
	Max float64
}

// Day normalizes t to midnight UTC so bars from intraday timestamps
// collapse onto their trading date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
