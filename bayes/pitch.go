package bayes

import "math/rand"

// middleC is the reference pitch everything is offset from.
const middleC = 60

// chordRoots maps a chord to its root offset in semitones above the tonic.
var chordRoots = [numChords]int{
	ChordI:  0,
	ChordIV: 5,
	ChordV:  7,
	ChordVI: 9,
}

// channelTranspose is the fixed octave shift per output channel: channel 1
// plays bass two octaves down, channel 2 one octave down, channel 3 lead
// two octaves up.
var channelTranspose = map[int]int{
	1: -24,
	2: -12,
	3: +24,
}

// ResolvePitch turns sampled harmony and pitch function into a MIDI note.
// It is deterministic apart from the interval sub-choice: a third-or-fifth
// splits evenly between +4 and +7, a color tone picks among +2, +11 and +14
// at fixed one-third thresholds.
func ResolvePitch(c Chord, fn PitchFunc, channel int, rng *rand.Rand) int {
	interval := 0
	switch fn {
	case ThirdFifth:
		if rng.Float64() < 0.5 {
			interval = 4
		} else {
			interval = 7
		}
	case Color:
		switch r := rng.Float64(); {
		case r < 1.0/3.0:
			interval = 2
		case r < 2.0/3.0:
			interval = 11
		default:
			interval = 14
		}
	}

	return middleC + chordRoots[c] + interval + channelTranspose[channel]
}

// ScaleVelocity maps the input velocity through the energy class: high
// energy pushes harder, anything else softens. Clamped to the MIDI range.
func ScaleVelocity(in int, e Energy) int {
	mult := 0.9
	if e == High {
		mult = 1.2
	}
	v := int(float64(in) * mult)
	if v > 127 {
		v = 127
	}
	if v < 0 {
		v = 0
	}
	return v
}
