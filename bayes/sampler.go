package bayes

import (
	"errors"
	"math/rand"
)

// ErrZeroWeights is returned when a stored distribution has no mass. The
// keyspace uses the absent sentinel for "never play", so an all-zero vector
// where a distribution was expected is a table-construction defect.
var ErrZeroWeights = errors.New("bayes: all-zero sampling weights")

// sample draws a category index from non-negative weights: a uniform value
// in [0, total) walked against the cumulative distribution. Deterministic
// for a seeded source.
func sample(rng *rand.Rand, weights []float64) (int, error) {
	var total float64
	for _, w := range weights {
		if w < 0 {
			return 0, errors.New("bayes: negative sampling weight")
		}
		total += w
	}
	if total <= 0 {
		return 0, ErrZeroWeights
	}

	draw := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i, nil
		}
	}
	// Float round-off can leave draw at the very top of the range.
	return len(weights) - 1, nil
}
