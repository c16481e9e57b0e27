package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/cylsum/internal/validate"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a report was produced.
type RunInfo struct {
	Preset      string          `json:"preset,omitempty"`
	Fingerprint string          `json:"fingerprint"`
	Config      validate.Config `json:"config"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Preset      string             `json:"preset,omitempty"`
	Fingerprint string             `json:"fingerprint"`
	Passed      bool               `json:"passed"`
	Config      validate.Config    `json:"config"`
	Report      validate.Report    `json:"report"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the report metadata and, when the report kept them, every
// per-trial error sample.
func (s *Store) Save(info RunInfo, report *validate.Report) (string, error) {
	runID := fmt.Sprintf("run_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Seed:        report.Seed,
		Preset:      info.Preset,
		Fingerprint: info.Fingerprint,
		Passed:      report.Passed(),
		Config:      info.Config,
		Report:      *report,
		Metrics:     report.Metrics(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeSamples(filepath.Join(runDir, samplesFile), report); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSamples(path string, report *validate.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"check", "trial", "error"}); err != nil {
		return err
	}

	for _, c := range report.Checks() {
		for i, v := range c.Samples {
			row := []string{c.Name, strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// List returns stored runs, newest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the per-trial errors of a run grouped by check name.
func (s *Store) LoadSamples(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make(map[string][]float64)
	for i := 1; i < len(records); i++ {
		v, err := strconv.ParseFloat(records[i][2], 64)
		if err != nil {
			continue
		}
		samples[records[i][0]] = append(samples[records[i][0]], v)
	}

	return samples, nil
}
