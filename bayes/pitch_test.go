package bayes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePitchRootIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		chord   Chord
		channel int
		want    int
	}{
		{ChordI, 1, 60 - 24},
		{ChordI, 2, 60 - 12},
		{ChordI, 3, 60 + 24},
		{ChordIV, 2, 60 + 5 - 12},
		{ChordV, 2, 60 + 7 - 12},
		{ChordVI, 2, 60 + 9 - 12},
	}
	for _, tt := range tests {
		got := ResolvePitch(tt.chord, Root, tt.channel, rng)
		assert.Equal(t, tt.want, got, "%s ch%d", tt.chord, tt.channel)
	}
}

func TestResolvePitchIntervalChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	seenThird := map[int]bool{}
	seenColor := map[int]bool{}
	for i := 0; i < 1000; i++ {
		seenThird[ResolvePitch(ChordI, ThirdFifth, 2, rng)-60+12] = true
		seenColor[ResolvePitch(ChordI, Color, 2, rng)-60+12] = true
	}

	assert.Equal(t, map[int]bool{4: true, 7: true}, seenThird)
	assert.Equal(t, map[int]bool{2: true, 11: true, 14: true}, seenColor)
}

func TestScaleVelocity(t *testing.T) {
	tests := []struct {
		name   string
		in     int
		energy Energy
		want   int
	}{
		{"high boosts", 100, High, 120},
		{"groove softens", 100, Groove, 90},
		{"chill softens", 100, Chill, 90},
		{"clamped at 127", 120, High, 127},
		{"zero stays zero", 0, High, 0},
		{"never negative", -10, Chill, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleVelocity(tt.in, tt.energy))
		})
	}
}
