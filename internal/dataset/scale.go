package dataset

import (
	"fmt"
	"math"
)

// Scaler normalizes feature matrices. Fit learns statistics from the
// training rows only; Transform applies them to any partition, which keeps
// validation and test statistics out of the training distribution.
type Scaler interface {
	Fit(rows [][]float64)
	Transform(rows [][]float64) [][]float64
}

// NewScaler returns a scaler by method name: "standard" or "minmax".
func NewScaler(method string) (Scaler, error) {
	switch method {
	case "standard":
		return &StandardScaler{}, nil
	case "minmax":
		return &MinMaxScaler{}, nil
	default:
		return nil, fmt.Errorf("unknown scaling method %q", method)
	}
}

// StandardScaler centers each column to mean 0 and scales to unit variance.
// Zero-variance columns pass through centered but unscaled.
type StandardScaler struct {
	mean []float64
	std  []float64
}

func (s *StandardScaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		s.mean, s.std = nil, nil
		return
	}
	cols := len(rows[0])
	s.mean = make([]float64, cols)
	s.std = make([]float64, cols)

	for _, row := range rows {
		for j, v := range row {
			s.mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range s.mean {
		s.mean[j] /= n
	}
	for _, row := range rows {
		for j, v := range row {
			d := v - s.mean[j]
			s.std[j] += d * d
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j] / n)
	}
}

func (s *StandardScaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = v - s.mean[j]
			if s.std[j] > 0 {
				scaled[j] /= s.std[j]
			}
		}
		out[i] = scaled
	}
	return out
}

// MinMaxScaler maps each column onto [0, 1] using the training range.
// Constant columns map to 0.
type MinMaxScaler struct {
	min []float64
	max []float64
}

func (s *MinMaxScaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		s.min, s.max = nil, nil
		return
	}
	cols := len(rows[0])
	s.min = make([]float64, cols)
	s.max = make([]float64, cols)
	copy(s.min, rows[0])
	copy(s.max, rows[0])
	for _, row := range rows[1:] {
		for j, v := range row {
			if v < s.min[j] {
				s.min[j] = v
			}
			if v > s.max[j] {
				s.max[j] = v
			}
		}
	}
}

func (s *MinMaxScaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			span := s.max[j] - s.min[j]
			if span > 0 {
				scaled[j] = (v - s.min[j]) / span
			}
		}
		out[i] = scaled
	}
	return out
}
