package dataprocessing

import (
	"fmt"
	"math"

	"surveyclean/pkg/contracts/domain"
)

// Imputer fills missing numeric values by linear interpolation between the
// nearest present neighbours. Weights come from source row positions, so a
// dropped row leaves a gap in the weights instead of shifting them.
type Imputer struct {
	precision int
}

// NewImputer creates an imputer rounding filled values to precision
// decimals. A negative precision disables rounding.
func NewImputer(precision int) *Imputer {
	return &Imputer{precision: precision}
}

// Interpolate fills the missing entries of values in place and returns the
// indexes it filled. positions must be strictly increasing and as long as
// values. A column with no present values is left untouched.
//
// For a gap at i with present neighbours j < i < k the value is
// v[j] + (v[k]-v[j]) * (pos[i]-pos[j]) / (pos[k]-pos[j]). A gap with only
// one neighbour takes that neighbour's value.
func (m *Imputer) Interpolate(positions []int, values []domain.Value) ([]int, error) {
	if len(positions) != len(values) {
		return nil, fmt.Errorf("interpolate: %d positions for %d values", len(positions), len(values))
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			return nil, fmt.Errorf("interpolate: positions not increasing at index %d", i)
		}
	}

	// Neighbours are looked up among the values present before filling.
	present := make([]int, 0, len(values))
	for i, v := range values {
		if _, ok := v.Num(); ok {
			present = append(present, i)
		}
	}
	if len(present) == 0 {
		return nil, nil
	}

	var filled []int
	next := 0 // index into present of the first present entry after i
	for i := range values {
		if next < len(present) && present[next] == i {
			next++
			continue
		}
		if !values[i].IsMissing() {
			continue
		}

		var v float64
		switch {
		case next == 0:
			v, _ = values[present[0]].Num()
		case next == len(present):
			v, _ = values[present[len(present)-1]].Num()
		default:
			j, k := present[next-1], present[next]
			vj, _ := values[j].Num()
			vk, _ := values[k].Num()
			w := float64(positions[i]-positions[j]) / float64(positions[k]-positions[j])
			v = vj + (vk-vj)*w
		}

		values[i] = domain.Number(m.round(v))
		filled = append(filled, i)
	}
	return filled, nil
}

func (m *Imputer) round(v float64) float64 {
	if m.precision < 0 {
		return v
	}
	scale := math.Pow(10, float64(m.precision))
	return math.Round(v*scale) / scale
}
