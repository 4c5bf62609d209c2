package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/synth"
)

const (
	DefaultOutputDir        = "output"
	DefaultDataDir          = ".tempsynth"
	DefaultDecimalSeparator = "."

	EnvDataDir = "TEMPSYNTH_DATA_DIR"
	EnvDebug   = "TEMPSYNTH_DEBUG"
)

type Config struct {
	Title            string          `yaml:"title"`
	Date             string          `yaml:"date"`
	OutputDir        string          `yaml:"output_dir"`
	Variant          curve.Variant   `yaml:"variant"`
	IntervalMinutes  float64         `yaml:"interval_minutes"`
	Divisions        int             `yaml:"divisions"`
	Seed             int64           `yaml:"seed"`
	Humidity         synth.Band      `yaml:"humidity"`
	Calendar         clock.Calendar  `yaml:"calendar"`
	DecimalSeparator string          `yaml:"decimal_separator"`
	Segments         []SegmentConfig `yaml:"segments"`
}

type SegmentConfig struct {
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Equation string `yaml:"equation"`
	Noise    string `yaml:"noise"`
}

// DefaultSegments is the rise, plateau and fall day used when no segments
// are given.
func DefaultSegments() []SegmentConfig {
	return []SegmentConfig{
		{Start: "08:00", End: "12:00", Equation: "10*t-55", Noise: "2"},
		{Start: "12:00", End: "16:00", Equation: "65", Noise: "2"},
		{Start: "16:00", End: "20:00", Equation: "-5*t+145", Noise: "2"},
	}
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir:        DefaultOutputDir,
		Variant:          curve.Dual,
		Humidity:         synth.DefaultHumidityBand,
		Calendar:         clock.DefaultCalendar(),
		DecimalSeparator: DefaultDecimalSeparator,
		Segments:         DefaultSegments(),
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a config file over a copy of base; keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Segments = append([]SegmentConfig(nil), base.Segments...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := curve.ParseVariant(string(c.Variant)); err != nil {
		return err
	}
	if c.IntervalMinutes < 0 {
		return fmt.Errorf("interval_minutes must not be negative, got %g", c.IntervalMinutes)
	}
	if c.Divisions < 0 {
		return fmt.Errorf("divisions must not be negative, got %d", c.Divisions)
	}
	if c.Humidity.Min > c.Humidity.Max {
		return fmt.Errorf("humidity min %g is above max %g", c.Humidity.Min, c.Humidity.Max)
	}
	if c.DecimalSeparator != "." && c.DecimalSeparator != "," {
		return fmt.Errorf("decimal_separator must be \".\" or \",\", got %q", c.DecimalSeparator)
	}
	return nil
}

func (c *Config) Descriptors() []curve.Descriptor {
	ds := make([]curve.Descriptor, len(c.Segments))
	for i, s := range c.Segments {
		ds[i] = curve.Descriptor{Start: s.Start, End: s.End, Equation: s.Equation, NoiseBound: s.Noise}
	}
	return ds
}

func (c *Config) SetDescriptors(ds []curve.Descriptor) {
	c.Segments = make([]SegmentConfig, len(ds))
	for i, d := range ds {
		c.Segments[i] = SegmentConfig{Start: d.Start, End: d.End, Equation: d.Equation, Noise: d.NoiseBound}
	}
}

// SynthOptions maps the config onto synthesizer options. An interval takes
// precedence over divisions; with neither, the variant default applies.
// A zero seed leaves the synthesizer seeded from the clock.
func (c *Config) SynthOptions() []synth.Option {
	variant := c.Variant
	if variant == "" {
		variant = curve.Dual
	}
	opts := []synth.Option{
		synth.WithVariant(variant),
		synth.WithHumidityBand(c.Humidity),
	}
	if c.Seed != 0 {
		opts = append(opts, synth.WithSeed(c.Seed))
	}
	switch {
	case c.IntervalMinutes > 0:
		opts = append(opts, synth.WithInterval(c.IntervalMinutes))
	case c.Divisions > 0:
		opts = append(opts, synth.WithDivisions(c.Divisions))
	}
	return opts
}

// Env holds settings read from the environment, optionally via a .env file.
type Env struct {
	DataDir string
	Debug   bool
}

func LoadEnv(files ...string) Env {
	// a missing .env file is not an error
	_ = godotenv.Load(files...)

	env := Env{DataDir: DefaultDataDir}
	if v := os.Getenv(EnvDataDir); v != "" {
		env.DataDir = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		env.Debug, _ = strconv.ParseBool(v)
	}
	return env
}
