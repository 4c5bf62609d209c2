package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Date             string             `json:"date"`
	Timestamp        time.Time          `json:"timestamp"`
	Variant          curve.Variant      `json:"variant"`
	Seed             int64              `json:"seed"`
	IntervalMinutes  float64            `json:"interval_minutes,omitempty"`
	Divisions        int                `json:"divisions,omitempty"`
	Segments         []curve.Descriptor `json:"segments"`
	Calendar         clock.Calendar     `json:"calendar"`
	DecimalSeparator string             `json:"decimal_separator,omitempty"`
	Metrics          map[string]float64 `json:"metrics"`
	Artifacts        []string           `json:"artifacts,omitempty"`
}

// Save writes metadata.json and samples.csv into a new run directory and
// returns the run ID. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, series *curve.Series) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%s", meta.Timestamp.Format("20060102-150405"), uuid.NewString()[:8])
	meta.Variant = series.Variant
	runDir := s.Dir(meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := s.writeMetadata(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"time", "temperature"}
	if series.Variant.HasHumidity() {
		header = append(header, "humidity")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, smp := range series.Samples {
		row := []string{
			strconv.FormatFloat(float64(smp.Time), 'f', -1, 64),
			strconv.FormatFloat(smp.Temperature, 'f', 1, 64),
		}
		if series.Variant.HasHumidity() {
			row = append(row, strconv.FormatFloat(smp.Humidity, 'f', 1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// AddArtifact records a file written alongside a run.
func (s *Store) AddArtifact(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	meta.Artifacts = append(meta.Artifacts, path)
	return s.writeMetadata(*meta)
}

func (s *Store) writeMetadata(meta RunMetadata) error {
	f, err := os.Create(filepath.Join(s.Dir(meta.ID), metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*curve.Series, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.Dir(runID), samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &curve.Series{Variant: meta.Variant}
	if len(records) < 2 {
		return series, nil
	}

	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s line %d: expected at least 2 columns", samplesFile, i+2)
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", samplesFile, i+2, err)
			}
			vals[j] = v
		}
		smp := curve.Sample{Time: curve.TimeValue(vals[0]), Temperature: vals[1]}
		if len(vals) > 2 {
			smp.Humidity = vals[2]
		}
		series.Samples = append(series.Samples, smp)
	}
	return series, nil
}
