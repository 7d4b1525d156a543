// Package bayes holds the probabilistic decision engine: a small network of
// conditional probability tables flattened ("baked") into a dense lookup
// table at startup, queried once per clock step.
package bayes

// Instrument is the closed set of recognized input instruments.
type Instrument int

const (
	None Instrument = iota
	Kick
	Snare
	Rim

	numInstruments = 4
)

func (i Instrument) String() string {
	switch i {
	case Kick:
		return "Kick"
	case Snare:
		return "Snare"
	case Rim:
		return "Rim"
	default:
		return "None"
	}
}

// Density is the latent note-density level.
type Density int

const (
	Sparse Density = iota
	Medium
	Busy

	numDensities = 3
)

// Energy is the latent musical-energy level.
type Energy int

const (
	Chill Energy = iota
	Groove
	High

	numEnergies = 3
)

func (e Energy) String() string {
	switch e {
	case Chill:
		return "Chill"
	case Groove:
		return "Groove"
	default:
		return "High"
	}
}

// Chord is the harmonic class for the current bar.
type Chord int

const (
	ChordI Chord = iota
	ChordIV
	ChordV
	ChordVI

	numChords = 4
)

func (c Chord) String() string {
	switch c {
	case ChordI:
		return "I"
	case ChordIV:
		return "IV"
	case ChordV:
		return "V"
	default:
		return "vi"
	}
}

// PitchFunc is the melodic role of an emitted note within the chord.
type PitchFunc int

const (
	Root PitchFunc = iota
	ThirdFifth
	Color

	numPitchFuncs = 3
)

// numChannels is the size of the output-channel domain (MIDI channels 1-3).
const numChannels = 3

func (p PitchFunc) String() string {
	switch p {
	case Root:
		return "Root"
	case ThirdFifth:
		return "3rd/5th"
	default:
		return "Color"
	}
}

// Evidence is the complete input to one decision query.
type Evidence struct {
	Instrument Instrument
	Velocity   int // 0-127
	Bar        int // 1-4
	Step       int // 1-16
}

// Decision is the sampled result of one query.
type Decision struct {
	ShouldPlay bool
	Note       int
	Velocity   int
	Duration   float64 // in beats (0.25 = 16th, 1.0 = quarter)
	Channel    int     // MIDI channel 1-3
	Explain    string
}

// rest is the shared no-play decision.
func rest(why string) Decision {
	return Decision{Explain: why}
}
