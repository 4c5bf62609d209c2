// Package experiment runs one synthesis end to end: parse the segment
// descriptors, synthesize the series, build the export record and
// summarize it, then optionally persist everything as a run.
package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/config"
	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/export"
	"github.com/san-kum/tempsynth/internal/metrics"
	"github.com/san-kum/tempsynth/internal/record"
	"github.com/san-kum/tempsynth/internal/segment"
	"github.com/san-kum/tempsynth/internal/storage"
	"github.com/san-kum/tempsynth/internal/synth"
)

const (
	ChartWidth  = 1000
	ChartHeight = 500

	imgDir   = "img"
	excelDir = "excel"
)

type Result struct {
	Title    string
	Date     string
	Seed     int64
	Segments []curve.Segment
	Series   *curve.Series
	Record   *record.Record
	Metrics  map[string]float64
}

type Experiment struct {
	cfg *config.Config
	now func() time.Time
}

// New takes a copy of cfg. A zero seed is replaced by one derived from the
// clock so the run can be reproduced from its metadata.
func New(cfg *config.Config) *Experiment {
	c := *cfg
	return &Experiment{cfg: &c, now: time.Now}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Run() (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	segs, err := segment.Parser{DecimalSeparator: e.cfg.DecimalSeparator}.ParseAll(e.cfg.Descriptors())
	if err != nil {
		return nil, err
	}

	now := e.now()
	if e.cfg.Seed == 0 {
		e.cfg.Seed = now.UnixNano()
	}
	if e.cfg.Title == "" {
		e.cfg.Title = now.Format("2006-01-02 15-04-05")
	}
	if e.cfg.Date == "" {
		e.cfg.Date = now.Format(e.cfg.Calendar.DateLayout)
	}

	s := synth.New(e.cfg.SynthOptions()...)
	series, err := s.Synthesize(segs)
	if err != nil {
		return nil, err
	}

	rec, err := record.New(e.cfg.Calendar, s.Variant()).Build(series, e.cfg.Date)
	if err != nil {
		return nil, err
	}

	return &Result{
		Title:    e.cfg.Title,
		Date:     e.cfg.Date,
		Seed:     e.cfg.Seed,
		Segments: segs,
		Series:   series,
		Record:   rec,
		Metrics:  metrics.Summarize(series, metrics.DefaultMetrics(series.Variant)),
	}, nil
}

// Persist saves the run in st and writes the chart and spreadsheet under
// the configured output directory. It returns the run ID and the artifact
// paths.
func (e *Experiment) Persist(st *storage.Store, res *Result) (string, []string, error) {
	s := synth.New(e.cfg.SynthOptions()...)
	sampling := s.Sampling()

	runID, err := st.Save(storage.RunMetadata{
		Title:            res.Title,
		Date:             res.Date,
		Seed:             res.Seed,
		IntervalMinutes:  sampling.IntervalMinutes,
		Divisions:        sampling.Divisions,
		Segments:         e.cfg.Descriptors(),
		Calendar:         e.cfg.Calendar,
		DecimalSeparator: e.cfg.DecimalSeparator,
		Metrics:          res.Metrics,
	}, res.Series)
	if err != nil {
		return "", nil, err
	}

	if e.cfg.OutputDir == "" {
		return runID, nil, nil
	}

	artifacts, err := WriteArtifacts(e.cfg.OutputDir, res, export.Options{DecimalSeparator: e.cfg.DecimalSeparator})
	if err != nil {
		return runID, nil, err
	}
	for _, a := range artifacts {
		if err := st.AddArtifact(runID, a); err != nil {
			return runID, artifacts, err
		}
	}
	return runID, artifacts, nil
}

// RebuildRecord rebuilds the export record of a stored run with the
// calendar it was saved with. Runs saved without one use the default.
func RebuildRecord(meta *storage.RunMetadata, series *curve.Series) (*record.Record, error) {
	cal := meta.Calendar
	if cal.DateLayout == "" {
		cal = clock.DefaultCalendar()
	}
	return record.New(cal, series.Variant).Build(series, meta.Date)
}

// WriteArtifacts writes <dir>/img/<title>.svg, <dir>/excel/<title>.xlsx
// and <dir>/excel/<title>.csv.
func WriteArtifacts(dir string, res *Result, opts export.Options) ([]string, error) {
	name := storage.SanitizeFilename(res.Title)
	imgPath := filepath.Join(dir, imgDir, name+".svg")
	xlsxPath := filepath.Join(dir, excelDir, name+".xlsx")
	csvPath := filepath.Join(dir, excelDir, name+".csv")

	for _, d := range []string{filepath.Dir(imgPath), filepath.Dir(xlsxPath)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, err
		}
	}

	svg := export.SeriesToSVG(res.Series, ChartWidth, ChartHeight, res.Title)
	if err := os.WriteFile(imgPath, []byte(svg), 0644); err != nil {
		return nil, fmt.Errorf("save chart: %w", err)
	}

	if err := export.SaveXLSX(xlsxPath, res.Record, ""); err != nil {
		return nil, fmt.Errorf("save spreadsheet: %w", err)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := export.WriteCSV(f, res.Record, opts); err != nil {
		return nil, fmt.Errorf("save csv: %w", err)
	}

	return []string{imgPath, xlsxPath, csvPath}, nil
}
