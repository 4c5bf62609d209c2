// Package synth builds a temperature series from a list of segments.
//
// Each segment is sampled on a half-open interval [start, end): the end
// boundary is never sampled as part of its own segment, so a following
// segment that starts at that boundary owns the transition sample.
//
// A Synthesizer owns its random source and is not safe for concurrent use.
package synth

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/expr"
	"github.com/san-kum/tempsynth/internal/segment"
)

const (
	DefaultIntervalMinutes = 5.0
	DefaultDivisions       = 100

	// tolerance when comparing a sample time against a segment end
	timeEpsilon = 1e-9
)

// DefaultHumidityBand is the range humidity is drawn from.
var DefaultHumidityBand = Band{Min: 99.3, Max: 99.5}

// Source supplies uniform numbers in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type Band struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sampling picks sample times inside a segment: every IntervalMinutes when
// it is positive, otherwise Divisions equal steps.
type Sampling struct {
	IntervalMinutes float64
	Divisions       int
}

type Synthesizer struct {
	rng         Source
	variant     curve.Variant
	sampling    Sampling
	samplingSet bool
	humidity    Band
}

type Option func(*Synthesizer)

func WithSource(src Source) Option {
	return func(s *Synthesizer) { s.rng = src }
}

func WithSeed(seed int64) Option {
	return func(s *Synthesizer) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithVariant(v curve.Variant) Option {
	return func(s *Synthesizer) { s.variant = v }
}

func WithInterval(minutes float64) Option {
	return func(s *Synthesizer) {
		s.sampling = Sampling{IntervalMinutes: minutes}
		s.samplingSet = true
	}
}

func WithDivisions(n int) Option {
	return func(s *Synthesizer) {
		s.sampling = Sampling{Divisions: n}
		s.samplingSet = true
	}
}

func WithHumidityBand(b Band) Option {
	return func(s *Synthesizer) { s.humidity = b }
}

// New returns a dual-stream synthesizer seeded from the clock unless
// options say otherwise. Without an explicit sampling option, dual-stream
// runs sample every 5 minutes and single-stream runs use 100 divisions per
// segment.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		variant:  curve.Dual,
		humidity: DefaultHumidityBand,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if !s.samplingSet {
		if s.variant == curve.Single {
			s.sampling = Sampling{Divisions: DefaultDivisions}
		} else {
			s.sampling = Sampling{IntervalMinutes: DefaultIntervalMinutes}
		}
	}
	return s
}

func (s *Synthesizer) Sampling() Sampling { return s.sampling }

func (s *Synthesizer) Variant() curve.Variant { return s.variant }

// Synthesize samples every segment in list order. All segments are
// validated before any sampling starts; the first evaluation failure
// aborts the run and no partial series is returned.
func (s *Synthesizer) Synthesize(segs []curve.Segment) (*curve.Series, error) {
	if err := s.checkSampling(); err != nil {
		return nil, err
	}
	if err := segment.ValidateList(segs); err != nil {
		return nil, err
	}

	series := &curve.Series{Variant: s.variant, Samples: make([]curve.Sample, 0, s.estimate(segs))}
	for i, seg := range segs {
		e, err := expr.Compile(seg.Equation)
		if err != nil {
			return nil, &curve.SynthesisError{Kind: curve.EvaluationFailed, Segment: i, Time: seg.Start, Err: err}
		}

		for _, t := range s.points(seg) {
			base, err := e.Eval(float64(t))
			if err != nil {
				return nil, &curve.SynthesisError{Kind: curve.EvaluationFailed, Segment: i, Time: t, Err: err}
			}
			series.Samples = append(series.Samples, s.sample(t, base, seg.NoiseBound))
		}
	}

	if degenerate(series) {
		return nil, &curve.SynthesisError{Kind: curve.DegenerateSeries}
	}
	return series, nil
}

func (s *Synthesizer) sample(t curve.TimeValue, base, noiseBound float64) curve.Sample {
	noise := (s.rng.Float64()*2 - 1) * noiseBound
	smp := curve.Sample{Time: t, Temperature: Round1(base + noise)}
	if s.variant.HasHumidity() {
		h := s.humidity.Min + s.rng.Float64()*(s.humidity.Max-s.humidity.Min)
		smp.Humidity = Round1(h)
	}
	return smp
}

// points lists the sample times of seg; the end bound is excluded.
func (s *Synthesizer) points(seg curve.Segment) []curve.TimeValue {
	start, end := float64(seg.Start), float64(seg.End)
	if s.sampling.IntervalMinutes > 0 {
		step := s.sampling.IntervalMinutes / 60
		var pts []curve.TimeValue
		for i := 0; ; i++ {
			t := start + float64(i)*step
			if t >= end-timeEpsilon {
				break
			}
			pts = append(pts, curve.TimeValue(t))
		}
		return pts
	}

	n := s.sampling.Divisions
	step := (end - start) / float64(n)
	pts := make([]curve.TimeValue, n)
	for i := range pts {
		pts[i] = curve.TimeValue(start + float64(i)*step)
	}
	return pts
}

func (s *Synthesizer) checkSampling() error {
	iv := s.sampling.IntervalMinutes
	if iv > 0 && !math.IsInf(iv, 0) {
		return nil
	}
	if iv == 0 && s.sampling.Divisions > 0 {
		return nil
	}
	return &curve.SynthesisError{Kind: curve.InvalidSampling, Err: errInvalidSampling(s.sampling)}
}

func (s *Synthesizer) estimate(segs []curve.Segment) int {
	if s.sampling.IntervalMinutes <= 0 {
		return len(segs) * s.sampling.Divisions
	}
	total := 0.0
	for _, seg := range segs {
		total += float64(seg.End-seg.Start) * 60 / s.sampling.IntervalMinutes
	}
	return int(total) + len(segs)
}

// degenerate reports a series with fewer than two distinct time points.
func degenerate(series *curve.Series) bool {
	if len(series.Samples) == 0 {
		return true
	}
	first := series.Samples[0].Time
	for _, smp := range series.Samples[1:] {
		if smp.Time != first {
			return false
		}
	}
	return true
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
