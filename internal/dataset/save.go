package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/go-hoops-features/internal/model"
)

// Metadata is the manifest written next to a saved dataset.
type Metadata struct {
	DatasetID    string    `json:"dataset_id"`
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	FeatureNames []string  `json:"feature_names"`
	TargetName   string    `json:"target_name"`
	ScaleMethod  string    `json:"scale_method,omitempty"`
	TrainSamples int       `json:"train_samples"`
	ValSamples   int       `json:"val_samples"`
	TestSamples  int       `json:"test_samples"`
}

// Save writes a split as <dir>/<name>/<version>/{X,y}_{train,val,test}.csv
// plus metadata.json. scaleMethod may be "standard", "minmax", or "" for
// raw values; the scaler is always fitted on the train partition only.
// Every record must carry an outcome label, and the train partition must be
// non-empty so the scaler has something to fit.
func Save(dir, name, version string, split Split, scaleMethod string) (Metadata, error) {
	if len(split.Train) == 0 {
		return Metadata{}, fmt.Errorf("empty train partition (%d records total); ingest more games or raise the train ratio",
			len(split.Val)+len(split.Test))
	}
	for _, part := range [][]model.FeatureRecord{split.Train, split.Val, split.Test} {
		for _, r := range part {
			if !r.HasLabel {
				return Metadata{}, fmt.Errorf("record for game %d has no outcome label", r.GameID)
			}
		}
	}

	train := BuildMatrix(split.Train, true)
	val := BuildMatrix(split.Val, true)
	test := BuildMatrix(split.Test, true)

	if scaleMethod != "" {
		scaler, err := NewScaler(scaleMethod)
		if err != nil {
			return Metadata{}, err
		}
		scaler.Fit(train.Rows)
		train.Rows = scaler.Transform(train.Rows)
		val.Rows = scaler.Transform(val.Rows)
		test.Rows = scaler.Transform(test.Rows)
	}

	outDir := filepath.Join(dir, name, version)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return Metadata{}, fmt.Errorf("create dataset dir: %w", err)
	}

	parts := []struct {
		suffix string
		m      Matrix
	}{
		{"train", train},
		{"val", val},
		{"test", test},
	}
	for _, p := range parts {
		if err := writeMatrixCSV(filepath.Join(outDir, "X_"+p.suffix+".csv"), p.m); err != nil {
			return Metadata{}, err
		}
		if err := writeLabelCSV(filepath.Join(outDir, "y_"+p.suffix+".csv"), p.m.Labels); err != nil {
			return Metadata{}, err
		}
	}

	meta := Metadata{
		DatasetID:    uuid.NewString(),
		Name:         name,
		Version:      version,
		CreatedAt:    time.Now().UTC(),
		FeatureNames: Columns(),
		TargetName:   TargetColumn,
		ScaleMethod:  scaleMethod,
		TrainSamples: len(train.Rows),
		ValSamples:   len(val.Rows),
		TestSamples:  len(test.Rows),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return Metadata{}, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "metadata.json"), append(data, '\n'), 0644); err != nil {
		return Metadata{}, fmt.Errorf("write metadata: %w", err)
	}
	return meta, nil
}

// Loaded is a dataset read back from disk.
type Loaded struct {
	Meta  Metadata
	Train Matrix
	Val   Matrix
	Test  Matrix
}

// Load reads a dataset saved by Save.
func Load(dir, name, version string) (Loaded, error) {
	inDir := filepath.Join(dir, name, version)

	raw, err := os.ReadFile(filepath.Join(inDir, "metadata.json"))
	if err != nil {
		return Loaded{}, fmt.Errorf("read metadata: %w", err)
	}
	var out Loaded
	if err := json.Unmarshal(raw, &out.Meta); err != nil {
		return Loaded{}, fmt.Errorf("parse metadata: %w", err)
	}

	for _, p := range []struct {
		suffix string
		m      *Matrix
	}{
		{"train", &out.Train},
		{"val", &out.Val},
		{"test", &out.Test},
	} {
		m, err := readMatrixCSV(filepath.Join(inDir, "X_"+p.suffix+".csv"))
		if err != nil {
			return Loaded{}, err
		}
		labels, err := readLabelCSV(filepath.Join(inDir, "y_"+p.suffix+".csv"))
		if err != nil {
			return Loaded{}, err
		}
		m.Labels = labels
		*p.m = m
	}
	return out, nil
}

func writeMatrixCSV(path string, m Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"game_id"}, m.Columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	row := make([]string, len(header))
	for i, vals := range m.Rows {
		row[0] = strconv.FormatInt(m.GameIDs[i], 10)
		for j, v := range vals {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeLabelCSV(path string, labels []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"target"}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, v := range labels {
		if err := w.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func readMatrixCSV(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Matrix{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return Matrix{}, fmt.Errorf("read %s: missing header", path)
	}

	m := Matrix{Columns: rows[0][1:]}
	for _, row := range rows[1:] {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return Matrix{}, fmt.Errorf("read %s: bad game_id %q: %w", path, row[0], err)
		}
		vals := make([]float64, len(row)-1)
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("read %s: bad value %q: %w", path, cell, err)
			}
			vals[j] = v
		}
		m.GameIDs = append(m.GameIDs, id)
		m.Rows = append(m.Rows, vals)
	}
	return m, nil
}

func readLabelCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: missing header", path)
	}
	var labels []float64
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("read %s: bad label %q: %w", path, row[0], err)
		}
		labels = append(labels, v)
	}
	return labels, nil
}
