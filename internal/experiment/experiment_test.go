package experiment

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/config"
	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/storage"
)

func TestRunDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	cfg.Date = "2024-12-31"

	res, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// 3 segments of 4 hours at 5 minutes
	if res.Series.Len() != 144 {
		t.Errorf("expected 144 samples, got %d", res.Series.Len())
	}
	if res.Record.Len() != res.Series.Len() {
		t.Errorf("record rows %d != samples %d", res.Record.Len(), res.Series.Len())
	}
	if res.Record.Rows[0].Timestamp != "2024-12-31 08:00" {
		t.Errorf("unexpected first timestamp %s", res.Record.Rows[0].Timestamp)
	}
	if res.Metrics["samples"] != 144 {
		t.Errorf("expected samples metric, got %v", res.Metrics)
	}
	if !res.Series.Increasing() {
		t.Error("expected increasing series")
	}
}

func TestRunFillsTitleDateSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	e := New(cfg)
	e.now = func() time.Time { return time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC) }

	res, err := e.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Title != "2024-11-01 09-30-00" {
		t.Errorf("unexpected title %s", res.Title)
	}
	if res.Date != "2024-11-01" {
		t.Errorf("unexpected date %s", res.Date)
	}
	if res.Seed == 0 {
		t.Error("expected seed to be set")
	}
	if cfg.Seed != 0 {
		t.Error("caller config should not be modified")
	}
}

func TestRunReproducible(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 5
	cfg.Date = "2024-01-01"

	a, err := New(cfg).Run()
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg).Run()
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Series.Samples {
		if a.Series.Samples[i] != b.Series.Samples[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		segs []config.SegmentConfig
		kind error
	}{
		{"ordering", []config.SegmentConfig{{Start: "12:00", End: "08:00", Equation: "t", Noise: "1"}}, curve.ErrValidation},
		{"format", []config.SegmentConfig{{Start: "12", End: "18:00", Equation: "t", Noise: "1"}}, curve.ErrFormat},
		{"equation", []config.SegmentConfig{{Start: "08:00", End: "12:00", Equation: "t +", Noise: "1"}}, curve.ErrEvaluation},
		{"degenerate", []config.SegmentConfig{{Start: "08:00", End: "08:01", Equation: "t", Noise: "1"}}, curve.ErrSynthesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Segments = tt.segs
			cfg.Date = "2024-01-01"
			res, err := New(cfg).Run()
			if res != nil {
				t.Error("expected no result")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestPersist(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	cfg.Date = "2024-01-01"
	cfg.Title = "day: 1"
	cfg.OutputDir = dir

	e := New(cfg)
	res, err := e.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, artifacts, err := e.Persist(st, res)
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("expected 3 artifacts, got %v", artifacts)
	}
	for _, a := range artifacts {
		if _, err := os.Stat(a); err != nil {
			t.Errorf("artifact %s: %v", a, err)
		}
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Title != "day: 1" || meta.Seed != 3 || meta.IntervalMinutes != 5 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Artifacts) != 3 {
		t.Errorf("expected artifacts recorded, got %v", meta.Artifacts)
	}
}

func TestRebuildRecordUsesStoredCalendar(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 5
	cfg.OutputDir = ""
	cfg.Calendar = clock.Calendar{DateLayout: "02.01.2006", TimestampLayout: "02.01.2006 15:04"}
	cfg.Date = "31.12.2024"
	cfg.Segments = []config.SegmentConfig{{Start: "23:00", End: "25:00", Equation: "20", Noise: "0"}}

	e := New(cfg)
	res, err := e.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	st := storage.New(t.TempDir())
	runID, _, err := e.Persist(st, res)
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Calendar != cfg.Calendar {
		t.Errorf("expected stored calendar %+v, got %+v", cfg.Calendar, meta.Calendar)
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := RebuildRecord(meta, series)
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	if rec.Rows[0].Timestamp != "31.12.2024 23:00" {
		t.Errorf("unexpected first timestamp %q", rec.Rows[0].Timestamp)
	}
	if last := rec.Rows[rec.Len()-1].Timestamp; last != "01.01.2025 00:55" {
		t.Errorf("unexpected last timestamp %q", last)
	}

	meta.Calendar = clock.Calendar{}
	meta.Date = "2024-12-31"
	if _, err := RebuildRecord(meta, series); err != nil {
		t.Errorf("expected default calendar fallback, got %v", err)
	}
}

func TestRunDecimalCommaNoise(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 8
	cfg.Date = "2024-01-01"
	cfg.DecimalSeparator = ","
	cfg.Segments = []config.SegmentConfig{{Start: "08:00", End: "09:00", Equation: "20", Noise: "0,5"}}

	res, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Segments[0].NoiseBound != 0.5 {
		t.Errorf("expected noise 0.5, got %v", res.Segments[0].NoiseBound)
	}
	for _, s := range res.Series.Samples {
		if s.Temperature < 19.5 || s.Temperature > 20.5 {
			t.Errorf("temperature %v outside noise bound", s.Temperature)
		}
	}
}

func TestRunSingleVariantDefaultSampling(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 9
	cfg.Date = "2024-01-01"
	cfg.Variant = curve.Single

	res, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// 3 segments of 100 divisions
	if res.Series.Len() != 300 {
		t.Errorf("expected 300 samples, got %d", res.Series.Len())
	}
}
