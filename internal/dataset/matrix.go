// Package dataset turns assembled feature records into model-ready
// train/validation/test splits: time-ordered partitioning, flat numeric
// matrices with stable column names, train-fitted scaling, and CSV export
// with a metadata manifest.
package dataset

import (
	"github.com/courtside/go-hoops-features/internal/model"
)

// TargetColumn is the label column name in exported datasets.
const TargetColumn = "home_win"

// featureColumns is the canonical flat layout of a FeatureRecord. Order is
// part of the contract: Vector and every exported CSV follow it.
var featureColumns = []string{
	"home_win_pct",
	"home_avg_points",
	"home_avg_allowed",
	"home_point_diff",
	"away_win_pct",
	"away_avg_points",
	"away_avg_allowed",
	"away_point_diff",
	"h2h_games",
	"home_h2h_win_pct",
	"home_rest_days",
	"away_rest_days",
	"home_b2b",
	"away_b2b",
	"home_streak",
	"away_streak",
	"home_home_win_pct",
	"away_away_win_pct",
}

// Columns returns the feature column names in vector order.
func Columns() []string {
	out := make([]string, len(featureColumns))
	copy(out, featureColumns)
	return out
}

// Vector flattens one record into the canonical column order.
func Vector(rec model.FeatureRecord) []float64 {
	return []float64{
		rec.Home.Form.WinPct,
		rec.Home.Form.AvgScored,
		rec.Home.Form.AvgAllowed,
		rec.Home.Form.AvgDiff,
		rec.Away.Form.WinPct,
		rec.Away.Form.AvgScored,
		rec.Away.Form.AvgAllowed,
		rec.Away.Form.AvgDiff,
		float64(rec.H2H.Games),
		rec.H2H.WinPctA,
		float64(rec.Home.RestDays),
		float64(rec.Away.RestDays),
		boolFloat(rec.Home.BackToBack),
		boolFloat(rec.Away.BackToBack),
		float64(rec.Home.Streak),
		float64(rec.Away.Streak),
		rec.Home.Split.HomeWinPct,
		rec.Away.Split.AwayWinPct,
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Matrix is a flat numeric view over a record slice. Labels is empty when
// built without labels; GameIDs keeps row provenance for joins and audits.
type Matrix struct {
	Columns []string
	Rows    [][]float64
	Labels  []float64
	GameIDs []int64
}

// BuildMatrix flattens records in their given (chronological) order.
// withLabels requires every record to carry a label.
func BuildMatrix(records []model.FeatureRecord, withLabels bool) Matrix {
	m := Matrix{
		Columns: Columns(),
		Rows:    make([][]float64, 0, len(records)),
		GameIDs: make([]int64, 0, len(records)),
	}
	if withLabels {
		m.Labels = make([]float64, 0, len(records))
	}
	for _, rec := range records {
		m.Rows = append(m.Rows, Vector(rec))
		m.GameIDs = append(m.GameIDs, rec.GameID)
		if withLabels {
			m.Labels = append(m.Labels, float64(rec.HomeWin))
		}
	}
	return m
}
