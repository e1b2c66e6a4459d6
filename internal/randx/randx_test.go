package randx

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func TestWeightedIndexDistribution(t *testing.T) {
	r := newRand()
	weights := []float64{0.7, 0.2, 0.1}

	counts := make([]int, 3)
	for i := 0; i < 10000; i++ {
		idx, err := WeightedIndex(r, weights)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 3)
		counts[idx]++
	}

	assert.Greater(t, counts[0], counts[1])
	assert.Greater(t, counts[1], counts[2])
	// 0.7 weight should land in a wide band around 7000.
	assert.InDelta(t, 7000, counts[0], 500)
}

func TestWeightedIndexRejectsBadDomains(t *testing.T) {
	r := newRand()

	_, err := WeightedIndex(r, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = WeightedIndex(r, []float64{0.5, -0.1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = WeightedIndex(r, []float64{0, 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWeightedChoice(t *testing.T) {
	r := newRand()
	items := []string{"a", "b", "c"}

	v, err := WeightedChoice(r, items, []float64{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = WeightedChoice(r, items, []float64{1, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = WeightedChoice(r, []string{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// nil weights means uniform: every item reachable
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		v, err := Choice(r, items)
		require.NoError(t, err)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestClampedExpStaysInRange(t *testing.T) {
	r := newRand()
	for i := 0; i < 1000; i++ {
		v := ClampedExp(r, 14, 1, 90)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 90.0)
	}
}

func TestClampedNormStaysInRange(t *testing.T) {
	r := newRand()
	for i := 0; i < 1000; i++ {
		v := ClampedNorm(r, 6.5, 1.2, 1, 10)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 10.0)
	}
}

func TestCappedPareto(t *testing.T) {
	r := newRand()
	hitCap := false
	for i := 0; i < 5000; i++ {
		v := CappedPareto(r, 1.2, 500)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 500.0)
		if v == 500 {
			hitCap = true
		}
	}
	// Heavy tail with alpha 1.2 should hit the cap at least once in 5000.
	assert.True(t, hitCap)
}

func TestIntBetween(t *testing.T) {
	r := newRand()
	for i := 0; i < 1000; i++ {
		v := IntBetween(r, 3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 8)
	}
	assert.Equal(t, 5, IntBetween(r, 5, 5))
	assert.Equal(t, 5, IntBetween(r, 5, 2))
}

func TestSampleN(t *testing.T) {
	r := newRand()
	items := []int{1, 2, 3, 4, 5}

	out, err := SampleN(r, items, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	seen := make(map[int]bool)
	for _, v := range out {
		assert.Contains(t, items, v)
		assert.False(t, seen[v], "sampled %d twice", v)
		seen[v] = true
	}

	empty, err := SampleN(r, items, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = SampleN(r, items, 6)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExpWeightsNormalized(t *testing.T) {
	r := newRand()
	w := ExpWeights(r, 100)
	require.Len(t, w, 100)

	var total float64
	for _, v := range w {
		assert.Greater(t, v, 0.0)
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestPairSet(t *testing.T) {
	s := NewPairSet()
	assert.True(t, s.Add(1, 2))
	assert.False(t, s.Add(1, 2))
	assert.True(t, s.Add(2, 1))
	assert.Equal(t, 2, s.Len())
}
