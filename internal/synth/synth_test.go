package synth_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/synth"
)

// fixedSource always returns the same draw; 0.5 means zero noise.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func seg(start, end float64, eq string, noise float64) curve.Segment {
	return curve.Segment{Start: curve.TimeValue(start), End: curve.TimeValue(end), Equation: eq, NoiseBound: noise}
}

func isOneDecimal(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-9
}

var _ = Describe("Synthesizer", func() {
	Describe("sampling", func() {
		It("samples a half-open interval at the requested step", func() {
			s := synth.New(synth.WithSeed(7), synth.WithInterval(60))
			series, err := s.Synthesize([]curve.Segment{seg(8, 12, "10*t-55", 2)})
			Expect(err).NotTo(HaveOccurred())

			Expect(series.Times()).To(Equal([]float64{8, 9, 10, 11}))
			for i, base := range []float64{25, 35, 45, 55} {
				v := series.Samples[i].Temperature
				Expect(v).To(BeNumerically("~", base, 2.0))
				Expect(isOneDecimal(v)).To(BeTrue())
			}
		})

		It("gives the boundary sample to the following segment", func() {
			s := synth.New(synth.WithSource(fixedSource(0.9)), synth.WithInterval(60))
			series, err := s.Synthesize([]curve.Segment{
				seg(8, 12, "0*t+20", 0),
				seg(12, 16, "0*t+30", 0),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(series.Times()).To(Equal([]float64{8, 9, 10, 11, 12, 13, 14, 15}))
			Expect(series.Samples[3].Temperature).To(Equal(20.0))
			Expect(series.Samples[4].Temperature).To(Equal(30.0))
			Expect(series.Increasing()).To(BeTrue())
		})

		It("uses a 5 minute interval for dual-stream runs by default", func() {
			s := synth.New(synth.WithSeed(1))
			Expect(s.Sampling()).To(Equal(synth.Sampling{IntervalMinutes: 5}))

			series, err := s.Synthesize([]curve.Segment{seg(8, 12, "20", 1)})
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Len()).To(Equal(48))
			Expect(series.Samples[47].Time).To(BeNumerically("~", 12-5.0/60, 1e-9))
		})

		It("uses 100 divisions per segment for single-stream runs by default", func() {
			s := synth.New(synth.WithSeed(1), synth.WithVariant(curve.Single))
			Expect(s.Sampling()).To(Equal(synth.Sampling{Divisions: 100}))

			series, err := s.Synthesize([]curve.Segment{seg(8, 12, "20", 1), seg(12, 13, "t", 0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Len()).To(Equal(200))
			Expect(series.Samples[100].Time).To(BeNumerically("==", 12))
			Expect(series.Humidities()).To(BeNil())
		})

		It("keeps segment order even when segments overlap", func() {
			s := synth.New(synth.WithSource(fixedSource(0.5)), synth.WithInterval(60))
			series, err := s.Synthesize([]curve.Segment{seg(10, 12, "1", 0), seg(8, 10, "2", 0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Times()).To(Equal([]float64{10, 11, 8, 9}))
			Expect(series.Increasing()).To(BeFalse())
		})

		It("rejects a sampling policy without a positive step", func() {
			for _, opt := range []synth.Option{synth.WithInterval(0), synth.WithInterval(-5), synth.WithDivisions(0)} {
				_, err := synth.New(opt).Synthesize([]curve.Segment{seg(8, 9, "t", 0)})
				var se *curve.SynthesisError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Kind).To(Equal(curve.InvalidSampling))
			}
		})
	})

	Describe("noise and humidity", func() {
		It("keeps every value within the noise bound and rounded to one decimal", func() {
			s := synth.New(synth.WithSeed(42))
			series, err := s.Synthesize([]curve.Segment{seg(0, 24, "20 + 5*sin(pi*t/12)", 1.5)})
			Expect(err).NotTo(HaveOccurred())

			for _, smp := range series.Samples {
				base := 20 + 5*math.Sin(math.Pi*float64(smp.Time)/12)
				Expect(smp.Temperature).To(BeNumerically("~", base, 1.5+0.05))
				Expect(isOneDecimal(smp.Temperature)).To(BeTrue())
				Expect(smp.Humidity).To(BeNumerically(">=", 99.3))
				Expect(smp.Humidity).To(BeNumerically("<=", 99.5))
				Expect(isOneDecimal(smp.Humidity)).To(BeTrue())
			}
		})

		It("maps the extremes of the source onto the noise bound", func() {
			low := synth.New(synth.WithSource(fixedSource(0)), synth.WithInterval(60))
			series, err := low.Synthesize([]curve.Segment{seg(8, 9, "10*t-55", 2)})
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Samples[0].Temperature).To(Equal(23.0))
			Expect(series.Samples[0].Humidity).To(Equal(99.3))
		})

		It("is reproducible for a given seed", func() {
			segs := []curve.Segment{seg(8, 12, "10*t-55", 2), seg(12, 16, "65", 2)}
			a, err := synth.New(synth.WithSeed(99)).Synthesize(segs)
			Expect(err).NotTo(HaveOccurred())
			b, err := synth.New(synth.WithSeed(99)).Synthesize(segs)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Samples).To(Equal(b.Samples))
		})

		It("honours a custom humidity band", func() {
			s := synth.New(synth.WithSource(fixedSource(0.5)), synth.WithHumidityBand(synth.Band{Min: 40, Max: 60}))
			series, err := s.Synthesize([]curve.Segment{seg(8, 9, "t", 0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Samples[0].Humidity).To(Equal(50.0))
		})
	})

	Describe("failures", func() {
		It("rejects segments before sampling", func() {
			_, err := synth.New().Synthesize([]curve.Segment{seg(8, 12, "t", 1), seg(12, 12, "t", 1)})
			var ve *curve.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Kind).To(Equal(curve.OrderingViolation))
			Expect(ve.Index).To(Equal(1))
		})

		It("aborts the whole run on an unparseable equation", func() {
			series, err := synth.New().Synthesize([]curve.Segment{seg(8, 12, "t", 1), seg(12, 16, "t +", 1)})
			Expect(series).To(BeNil())

			var se *curve.SynthesisError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Kind).To(Equal(curve.EvaluationFailed))
			Expect(se.Segment).To(Equal(1))
			Expect(errors.Is(err, curve.ErrSyntax)).To(BeTrue())
		})

		It("aborts at the time point where the value is undefined", func() {
			series, err := synth.New(synth.WithInterval(60)).Synthesize([]curve.Segment{seg(8, 14, "1/(t-10)", 0)})
			Expect(series).To(BeNil())

			var se *curve.SynthesisError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Kind).To(Equal(curve.EvaluationFailed))
			Expect(float64(se.Time)).To(Equal(10.0))
			Expect(errors.Is(err, curve.ErrNonFinite)).To(BeTrue())
		})

		It("reports a series with a single time point as degenerate", func() {
			_, err := synth.New().Synthesize([]curve.Segment{seg(8, 8+1.0/60, "20", 0)})
			var se *curve.SynthesisError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Kind).To(Equal(curve.DegenerateSeries))
		})

		It("reports an empty segment list as degenerate", func() {
			_, err := synth.New().Synthesize(nil)
			Expect(errors.Is(err, curve.ErrSynthesis)).To(BeTrue())
		})
	})

	Describe("Round1", func() {
		It("rounds half away from zero", func() {
			Expect(synth.Round1(0.25)).To(Equal(0.3))
			Expect(synth.Round1(-0.25)).To(Equal(-0.3))
			Expect(synth.Round1(24.96)).To(Equal(25.0))
		})
	})
})
