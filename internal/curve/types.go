package curve

import "fmt"

// TimeValue is a number of hours since the reference midnight.
type TimeValue float64

// Variant selects which value streams a run produces.
type Variant string

const (
	// Dual produces temperature and humidity.
	Dual Variant = "dual"
	// Single produces temperature only.
	Single Variant = "single"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case Dual, Single:
		return Variant(s), nil
	case "":
		return Dual, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, Dual, Single)
	}
}

func (v Variant) HasHumidity() bool { return v != Single }

// Descriptor is a segment as entered by the user, before parsing.
type Descriptor struct {
	Start      string `yaml:"start" json:"start"`
	End        string `yaml:"end" json:"end"`
	Equation   string `yaml:"equation" json:"equation"`
	NoiseBound string `yaml:"noise" json:"noise"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s %s %s", d.Start, d.End, d.Equation, d.NoiseBound)
}

type Segment struct {
	Start      TimeValue
	End        TimeValue
	Equation   string
	NoiseBound float64

	// StartText and EndText keep the clock text the bounds were parsed
	// from, for diagnostics.
	StartText string
	EndText   string
}

type Sample struct {
	Time        TimeValue
	Temperature float64
	Humidity    float64
}

type Series struct {
	Variant Variant
	Samples []Sample
}

func (s *Series) Len() int { return len(s.Samples) }

func (s *Series) Times() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = float64(smp.Time)
	}
	return out
}

func (s *Series) Temperatures() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Temperature
	}
	return out
}

// Humidities returns nil for single-stream series.
func (s *Series) Humidities() []float64 {
	if !s.Variant.HasHumidity() {
		return nil
	}
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Humidity
	}
	return out
}

// Increasing reports whether sample times are strictly increasing.
func (s *Series) Increasing() bool {
	for i := 1; i < len(s.Samples); i++ {
		if s.Samples[i].Time <= s.Samples[i-1].Time {
			return false
		}
	}
	return true
}
