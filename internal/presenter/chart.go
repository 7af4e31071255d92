package presenter

import (
	"errors"

	"StockBoard/internal/model"
)

// ErrEmptySelection is returned when the user selected no companies.
// User-correctable; callers surface it as a validation message.
var ErrEmptySelection = errors.New("at least one company must be selected")

// priceField is the long-form value column label, kept verbatim in the
// chart output.
const priceField = "Stock Prices (USD)"

// LongRow is one (date, company, price) observation of the long-form
// table consumed by the chart.
type LongRow struct {
	Date  string  `json:"Date"`
	Name  string  `json:"Name"`
	Price float64 `json:"Stock Prices (USD)"`
}

// Long reshapes the wide table to long form, one block of ascending
// dates per series, in table order. Dates use the ISO layout so the
// temporal axis stays sortable.
func Long(t Table) []LongRow {
	var rows []LongRow
	for _, s := range t.Series {
		for _, p := range s.Points {
			rows = append(rows, LongRow{
				Date:  p.Date.Format(model.ISODateFormat),
				Name:  s.Name,
				Price: p.Close,
			})
		}
	}
	return rows
}

// ChartSpec is a declarative Vega-Lite line chart document.
type ChartSpec struct {
	Schema   string   `json:"$schema"`
	Width    string   `json:"width"`
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
}

type Data struct {
	Values []LongRow `json:"values"`
}

type Mark struct {
	Type    string  `json:"type"`
	Opacity float64 `json:"opacity"`
	Clip    bool    `json:"clip"`
}

type Encoding struct {
	X     Field  `json:"x"`
	Y     YField `json:"y"`
	Color Field  `json:"color"`
}

type Field struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

// YField carries the axis clamp. Stack marshals as null to disable
// implicit stacking of the line layers.
type YField struct {
	Field string      `json:"field"`
	Type  string      `json:"type"`
	Scale Scale       `json:"scale"`
	Stack interface{} `json:"stack"`
}

type Scale struct {
	Domain [2]float64 `json:"domain"`
}

// BuildChart restricts the table to the selected companies and returns
// the chart spec with the vertical axis clamped to rng. An empty
// selection is a validation error; no spec is produced.
func BuildChart(t Table, selected []string, rng model.DisplayRange) (ChartSpec, error) {
	if len(selected) == 0 {
		return ChartSpec{}, ErrEmptySelection
	}

	sub := t.Select(selected)
	return ChartSpec{
		Schema: "https://vega.github.io/schema/vega-lite/v5.json",
		Width:  "container",
		Data:   Data{Values: Long(sub)},
		Mark:   Mark{Type: "line", Opacity: 0.8, Clip: true},
		Encoding: Encoding{
			X: Field{Field: "Date", Type: "temporal"},
			Y: YField{
				Field: priceField,
				Type:  "quantitative",
				Scale: Scale{Domain: [2]float64{rng.Min, rng.Max}},
			},
			Color: Field{Field: "Name", Type: "nominal"},
		},
	}, nil
}
