// Package metrics summarizes a synthesized series.
package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/tempsynth/internal/curve"
)

type Metric interface {
	Name() string
	Observe(s curve.Sample)
	Value() float64
	Reset()
}

// Stream extracts one value from a sample.
type Stream func(s curve.Sample) float64

func Temperature(s curve.Sample) float64 { return s.Temperature }
func Humidity(s curve.Sample) float64    { return s.Humidity }
func Time(s curve.Sample) float64        { return float64(s.Time) }

type statMetric struct {
	name   string
	stream Stream
	reduce func([]float64) float64
	values []float64
}

func newStat(name string, stream Stream, reduce func([]float64) float64) *statMetric {
	return &statMetric{name: name, stream: stream, reduce: reduce}
}

func (m *statMetric) Name() string { return m.name }

func (m *statMetric) Observe(s curve.Sample) { m.values = append(m.values, m.stream(s)) }

func (m *statMetric) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return m.reduce(m.values)
}

func (m *statMetric) Reset() { m.values = m.values[:0] }

func NewMean(name string, stream Stream) Metric {
	return newStat(name, stream, func(v []float64) float64 { return stat.Mean(v, nil) })
}

func NewStdDev(name string, stream Stream) Metric {
	return newStat(name, stream, func(v []float64) float64 {
		if len(v) < 2 {
			return 0
		}
		return stat.StdDev(v, nil)
	})
}

func NewMin(name string, stream Stream) Metric {
	return newStat(name, stream, floats.Min)
}

func NewMax(name string, stream Stream) Metric {
	return newStat(name, stream, floats.Max)
}

// NewSpan reports max - min of a stream.
func NewSpan(name string, stream Stream) Metric {
	return newStat(name, stream, func(v []float64) float64 { return floats.Max(v) - floats.Min(v) })
}

func DefaultMetrics(variant curve.Variant) []Metric {
	ms := []Metric{
		NewMin("temperature_min", Temperature),
		NewMax("temperature_max", Temperature),
		NewMean("temperature_mean", Temperature),
		NewStdDev("temperature_stddev", Temperature),
		NewSpan("hours", Time),
	}
	if variant.HasHumidity() {
		ms = append(ms,
			NewMean("humidity_mean", Humidity),
			NewMin("humidity_min", Humidity),
			NewMax("humidity_max", Humidity),
		)
	}
	return ms
}

// Summarize feeds every sample to the metrics and collects their values.
func Summarize(series *curve.Series, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms)+1)
	for _, m := range ms {
		m.Reset()
		for _, s := range series.Samples {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	out["samples"] = float64(series.Len())
	return out
}
