// Package record maps a synthesized series onto calendar-stamped rows for
// tabular export.
package record

import (
	"fmt"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
)

const (
	ColumnTime        = "Time"
	ColumnTemperature = "Temperature (°C)"
	ColumnHumidity    = "Humidity (%)"
)

type Row struct {
	Timestamp string
	Values    []float64
}

// Record is a fresh table per run; Headers[0] names the timestamp column
// and the remaining headers name Values in order.
type Record struct {
	Headers []string
	Rows    []Row
}

func (r *Record) Len() int { return len(r.Rows) }

type Builder struct {
	calendar clock.Calendar
	variant  curve.Variant
}

// New returns a builder whose columns follow variant: time and temperature,
// plus humidity for dual-stream runs.
func New(cal clock.Calendar, variant curve.Variant) *Builder {
	return &Builder{calendar: cal, variant: variant}
}

func (b *Builder) Headers() []string {
	h := []string{ColumnTime, ColumnTemperature}
	if b.variant.HasHumidity() {
		h = append(h, ColumnHumidity)
	}
	return h
}

// Build stamps each sample with baseDate plus its clock time, rolling the
// date forward for times past midnight.
func (b *Builder) Build(series *curve.Series, baseDate string) (*Record, error) {
	rec := &Record{
		Headers: b.Headers(),
		Rows:    make([]Row, 0, series.Len()),
	}
	for i, smp := range series.Samples {
		ts, err := b.calendar.Timestamp(baseDate, smp.Time)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		row := Row{Timestamp: ts, Values: []float64{smp.Temperature}}
		if b.variant.HasHumidity() {
			row.Values = append(row.Values, smp.Humidity)
		}
		rec.Rows = append(rec.Rows, row)
	}
	return rec, nil
}
