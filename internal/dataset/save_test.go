package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	split, err := TimeSplit(fakeRecords(40), 0.7, 0.15, 0.15)
	if err != nil {
		t.Fatalf("TimeSplit: %v", err)
	}

	meta, err := Save(dir, "game_predictions", "v1", split, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.DatasetID == "" {
		t.Error("expected a dataset id")
	}
	if meta.TrainSamples != len(split.Train) || meta.TestSamples != len(split.Test) {
		t.Errorf("metadata sample counts: %+v", meta)
	}
	if meta.TargetName != TargetColumn {
		t.Errorf("target name: want %q, got %q", TargetColumn, meta.TargetName)
	}

	for _, f := range []string{
		"X_train.csv", "X_val.csv", "X_test.csv",
		"y_train.csv", "y_val.csv", "y_test.csv",
		"metadata.json",
	} {
		if _, err := os.Stat(filepath.Join(dir, "game_predictions", "v1", f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	loaded, err := Load(dir, "game_predictions", "v1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Meta.DatasetID != meta.DatasetID {
		t.Error("metadata did not round-trip")
	}

	wantTrain := BuildMatrix(split.Train, true)
	if len(loaded.Train.Rows) != len(wantTrain.Rows) {
		t.Fatalf("train rows: want %d, got %d", len(wantTrain.Rows), len(loaded.Train.Rows))
	}
	for i, row := range loaded.Train.Rows {
		if loaded.Train.GameIDs[i] != wantTrain.GameIDs[i] {
			t.Fatalf("row %d: game id %d, want %d", i, loaded.Train.GameIDs[i], wantTrain.GameIDs[i])
		}
		for j, v := range row {
			if math.Abs(v-wantTrain.Rows[i][j]) > 1e-12 {
				t.Fatalf("row %d col %d: %f, want %f", i, j, v, wantTrain.Rows[i][j])
			}
		}
		if loaded.Train.Labels[i] != wantTrain.Labels[i] {
			t.Fatalf("row %d: label %f, want %f", i, loaded.Train.Labels[i], wantTrain.Labels[i])
		}
	}
}

func TestSave_ScaledTrainIsCentered(t *testing.T) {
	dir := t.TempDir()
	split, err := TimeSplit(fakeRecords(40), 0.7, 0.15, 0.15)
	if err != nil {
		t.Fatalf("TimeSplit: %v", err)
	}
	if _, err := Save(dir, "scaled", "v1", split, "standard"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir, "scaled", "v1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Every train column mean should be ~0 after standard scaling.
	cols := len(loaded.Train.Columns)
	for j := 0; j < cols; j++ {
		var sum float64
		for _, row := range loaded.Train.Rows {
			sum += row[j]
		}
		mean := sum / float64(len(loaded.Train.Rows))
		if math.Abs(mean) > 1e-6 {
			t.Errorf("train column %d mean %f after scaling, want ~0", j, mean)
		}
	}
}

func TestSave_UnknownScaleMethod(t *testing.T) {
	split, err := TimeSplit(fakeRecords(10), 0.7, 0.15, 0.15)
	if err != nil {
		t.Fatalf("TimeSplit: %v", err)
	}
	if _, err := Save(t.TempDir(), "bad", "v1", split, "robust"); err == nil {
		t.Error("unknown scale method must fail")
	}
}

func TestSave_EmptyTrainPartition(t *testing.T) {
	// A single record lands entirely in the test partition under the default
	// ratios; Save must reject that with an error, not fit a scaler on
	// nothing.
	split, err := TimeSplit(fakeRecords(1), 0.7, 0.15, 0.15)
	if err != nil {
		t.Fatalf("TimeSplit: %v", err)
	}
	if len(split.Train) != 0 {
		t.Fatalf("want empty train partition, got %d records", len(split.Train))
	}
	if _, err := Save(t.TempDir(), "tiny", "v1", split, "standard"); err == nil {
		t.Error("empty train partition must fail")
	}
	// Same with explicit --train 0 style ratios and no scaling.
	split, err = TimeSplit(fakeRecords(10), 0, 0.5, 0.5)
	if err != nil {
		t.Fatalf("TimeSplit: %v", err)
	}
	if _, err := Save(t.TempDir(), "tiny", "v2", split, ""); err == nil {
		t.Error("zero train ratio must fail")
	}
}

func TestSave_RejectsUnlabeledRecords(t *testing.T) {
	records := fakeRecords(10)
	records[3].HasLabel = false
	records[3].HomeWin = 0

	split, err := TimeSplit(records, 0.7, 0.15, 0.15)
	if err != nil {
		t.Fatalf("TimeSplit: %v", err)
	}
	if _, err := Save(t.TempDir(), "unlabeled", "v1", split, ""); err == nil {
		t.Error("records without outcome labels must fail, not write zero targets")
	}
}

func TestReadLabelCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "y_train.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readLabelCSV(path); err == nil {
		t.Error("truncated label file must fail, not panic")
	}
}
