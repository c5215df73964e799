package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/courtside/go-hoops-features/internal/model"
)

// Split holds the three chronological partitions of a feature set. Train is
// strictly the oldest slice and Test the newest, so nothing in Train was
// influenced by anything in Val or Test.
type Split struct {
	Train []model.FeatureRecord
	Val   []model.FeatureRecord
	Test  []model.FeatureRecord
}

// TimeSplit partitions records by position after sorting chronologically.
// Ratios must sum to 1 within 0.01. The input slice is not modified.
func TimeSplit(records []model.FeatureRecord, trainRatio, valRatio, testRatio float64) (Split, error) {
	if math.Abs(trainRatio+valRatio+testRatio-1.0) >= 0.01 {
		return Split{}, fmt.Errorf("split ratios must sum to 1.0, got %.2f", trainRatio+valRatio+testRatio)
	}
	if trainRatio < 0 || valRatio < 0 || testRatio < 0 {
		return Split{}, fmt.Errorf("split ratios must be non-negative")
	}

	sorted := make([]model.FeatureRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].GameID < sorted[j].GameID
	})

	n := len(sorted)
	trainEnd := int(float64(n) * trainRatio)
	valEnd := int(float64(n) * (trainRatio + valRatio))

	return Split{
		Train: sorted[:trainEnd],
		Val:   sorted[trainEnd:valEnd],
		Test:  sorted[valEnd:],
	}, nil
}
