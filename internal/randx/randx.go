// Package randx provides the weighted-sampling primitives shared by every
// entity generator. All functions draw from an explicitly passed source so
// callers can seed them for reproducible runs.
package randx

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidArgument reports a malformed sampling domain (empty candidates,
// mismatched or non-positive weights).
var ErrInvalidArgument = errors.New("invalid argument")

// WeightedIndex returns an index into weights chosen with probability
// proportional to each weight.
func WeightedIndex(r *rand.Rand, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: empty weight domain", ErrInvalidArgument)
	}
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return 0, fmt.Errorf("%w: weight[%d] = %v", ErrInvalidArgument, i, w)
		}
		total += w
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: weights sum to zero", ErrInvalidArgument)
	}
	target := r.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// WeightedChoice picks one of items using weights. A nil weight slice means
// uniform choice.
func WeightedChoice[T any](r *rand.Rand, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: empty candidate set", ErrInvalidArgument)
	}
	if weights == nil {
		return items[r.IntN(len(items))], nil
	}
	if len(weights) != len(items) {
		return zero, fmt.Errorf("%w: %d items but %d weights", ErrInvalidArgument, len(items), len(weights))
	}
	i, err := WeightedIndex(r, weights)
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// Choice is uniform WeightedChoice over a non-empty slice.
func Choice[T any](r *rand.Rand, items []T) (T, error) {
	return WeightedChoice(r, items, nil)
}

// ClampedExp draws from an exponential distribution with the given scale
// (mean) and clamps the result to [min, max].
func ClampedExp(r *rand.Rand, scale, min, max float64) float64 {
	return clamp(r.ExpFloat64()*scale, min, max)
}

// ClampedNorm draws from a normal distribution with the given mean and
// standard deviation and clamps the result to [min, max].
func ClampedNorm(r *rand.Rand, mean, std, min, max float64) float64 {
	return clamp(r.NormFloat64()*std+mean, min, max)
}

// CappedPareto draws from a Pareto distribution with shape alpha (support
// starting at zero, matching numpy's pareto) and caps the result.
func CappedPareto(r *rand.Rand, alpha, cap float64) float64 {
	u := r.Float64()
	for u == 0 {
		u = r.Float64()
	}
	x := math.Pow(u, -1/alpha) - 1
	if x > cap {
		return cap
	}
	return x
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// SampleN picks n distinct elements from items without replacement. n larger
// than the candidate set is an error; n == 0 returns an empty slice.
func SampleN[T any](r *rand.Rand, items []T, n int) ([]T, error) {
	if n < 0 || n > len(items) {
		return nil, fmt.Errorf("%w: sample %d of %d", ErrInvalidArgument, n, len(items))
	}
	if n == 0 {
		return nil, nil
	}
	idx := r.Perm(len(items))[:n]
	out := make([]T, n)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out, nil
}

// ExpWeights returns len(n) exponential draws normalized to sum to one, used
// to model heavy-tailed per-entity activity (power users, hot content).
func ExpWeights(r *rand.Rand, n int) []float64 {
	w := make([]float64, n)
	var total float64
	for i := range w {
		w[i] = r.ExpFloat64()
		total += w[i]
	}
	for i := range w {
		w[i] /= total
	}
	return w
}

// PairSet tracks (a, b) identifier pairs for duplicate suppression.
type PairSet struct {
	seen map[[2]int64]struct{}
}

// NewPairSet returns an empty tracker.
func NewPairSet() *PairSet {
	return &PairSet{seen: make(map[[2]int64]struct{})}
}

// Add records the pair and reports whether it was new.
func (s *PairSet) Add(a, b int64) bool {
	k := [2]int64{a, b}
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	return true
}

// Len returns the number of distinct pairs recorded.
func (s *PairSet) Len() int {
	return len(s.seen)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
