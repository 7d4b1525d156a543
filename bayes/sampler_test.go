package bayes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRejectsDegenerateWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := sample(rng, []float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrZeroWeights)

	_, err = sample(rng, []float64{0.5, -0.1})
	assert.Error(t, err)
}

func TestSampleSingleCategory(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		got, err := sample(rng, []float64{0, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	}
}

func TestSampleDeterministicForSeededSource(t *testing.T) {
	weights := []float64{0.2, 0.3, 0.5}

	var first []int
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		got, err := sample(rng, weights)
		require.NoError(t, err)
		first = append(first, got)
	}

	rng = rand.New(rand.NewSource(42))
	for i, want := range first {
		got, err := sample(rng, weights)
		require.NoError(t, err)
		assert.Equal(t, want, got, "draw %d", i)
	}
}

func TestSampleMatchesWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := []float64{0.1, 0.9}

	const trials = 100000
	counts := make([]int, len(weights))
	for i := 0; i < trials; i++ {
		got, err := sample(rng, weights)
		require.NoError(t, err)
		counts[got]++
	}

	assert.InDelta(t, 0.9, float64(counts[1])/trials, 0.01)
}

func TestSampleUnnormalizedWeights(t *testing.T) {
	// Weights need not sum to 1, only the ratios matter.
	rng := rand.New(rand.NewSource(7))
	weights := []float64{3, 1}

	const trials = 100000
	ones := 0
	for i := 0; i < trials; i++ {
		got, err := sample(rng, weights)
		require.NoError(t, err)
		if got == 0 {
			ones++
		}
	}
	assert.InDelta(t, 0.75, float64(ones)/trials, 0.01)
}
