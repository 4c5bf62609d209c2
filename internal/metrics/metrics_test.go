package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/tempsynth/internal/curve"
)

func TestSummarize(t *testing.T) {
	series := &curve.Series{
		Variant: curve.Dual,
		Samples: []curve.Sample{
			{Time: 8, Temperature: 20, Humidity: 99.3},
			{Time: 9, Temperature: 30, Humidity: 99.5},
			{Time: 10, Temperature: 40, Humidity: 99.4},
		},
	}

	got := Summarize(series, DefaultMetrics(series.Variant))

	tests := map[string]float64{
		"temperature_min":    20,
		"temperature_max":    40,
		"temperature_mean":   30,
		"temperature_stddev": 10,
		"hours":              2,
		"humidity_min":       99.3,
		"humidity_max":       99.5,
		"humidity_mean":      99.4,
		"samples":            3,
	}
	for name, want := range tests {
		v, ok := got[name]
		if !ok {
			t.Errorf("metric %s missing", name)
			continue
		}
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", name, want, v)
		}
	}
}

func TestSingleStreamHasNoHumidity(t *testing.T) {
	for _, m := range DefaultMetrics(curve.Single) {
		if m.Name() == "humidity_mean" {
			t.Error("single-stream metrics should not include humidity")
		}
	}
}

func TestMetricReset(t *testing.T) {
	m := NewMean("mean", Temperature)
	m.Observe(curve.Sample{Temperature: 10})
	if m.Value() != 10 {
		t.Errorf("expected 10, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}
