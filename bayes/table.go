package bayes

import (
	"fmt"
	"math/rand"

	"go-accompany/clock"
)

// playEpsilon is the play probability below which a cell is stored as
// absent instead of a distribution bundle.
const playEpsilon = 0.001

// tableSize covers every cell of (bar, instrument, loudness band, step).
const tableSize = 4 * numInstruments * 2 * clock.StepsPerBar

// entry holds the baked weight vectors for one evidence cell.
type entry struct {
	play    [2]float64
	pitch   [numPitchFuncs]float64
	chord   [numChords]float64
	energy  [numEnergies]float64
	channel [numChannels]float64
}

// Table is the baked lookup table. It is built once, immutable afterwards,
// and safe for concurrent queries. A nil cell is the absent sentinel: the
// key exists and means "never play".
type Table struct {
	entries [tableSize]*entry
}

// packKey maps one point of the evidence domain onto a dense index.
func packKey(bar int, in Instrument, loud bool, step int) int {
	loudIdx := 0
	if loud {
		loudIdx = 1
	}
	return (((bar-1)*numInstruments+int(in))*2+loudIdx)*clock.StepsPerBar + (step - 1)
}

// NewTable bakes the full evidence domain: every cell gets either the
// marginal distributions of the five query variables or the absent sentinel.
func NewTable() *Table {
	t := &Table{}
	for bar := 1; bar <= 4; bar++ {
		for in := None; in < numInstruments; in++ {
			for _, loud := range []bool{false, true} {
				for step := 1; step <= clock.StepsPerBar; step++ {
					pos := clock.PosOf(step)
					play, pitch, chord, energy, channel := marginals(bar, in, loud, pos)
					if play[1] < playEpsilon {
						continue // absent: never plays
					}
					t.entries[packKey(bar, in, loud, step)] = &entry{
						play:    play,
						pitch:   pitch,
						chord:   chord,
						energy:  energy,
						channel: channel,
					}
				}
			}
		}
	}
	return t
}

// PlayProbability exposes the baked play weight for a cell. Absent cells
// report zero.
func (t *Table) PlayProbability(bar int, in Instrument, loud bool, step int) float64 {
	e := t.entries[packKey(bar, in, loud, step)]
	if e == nil {
		return 0
	}
	return e.play[1]
}

// Query samples one decision for the given evidence. It is O(1) and free of
// side effects beyond consuming randomness from rng. Evidence outside the
// declared domain is a programming error and returns an error rather than a
// defaulted decision.
func (t *Table) Query(ev Evidence, rng *rand.Rand) (Decision, error) {
	if ev.Bar < 1 || ev.Bar > 4 || ev.Step < 1 || ev.Step > clock.StepsPerBar ||
		ev.Instrument < None || ev.Instrument >= numInstruments {
		return Decision{}, fmt.Errorf("bayes: evidence outside domain: %+v", ev)
	}

	loud := ev.Velocity > 90
	e := t.entries[packKey(ev.Bar, ev.Instrument, loud, ev.Step)]
	if e == nil {
		return rest("Rest"), nil
	}

	gate, err := sample(rng, e.play[:])
	if err != nil {
		return Decision{}, err
	}
	if gate == 0 {
		return rest("Rest"), nil
	}

	fn, err := sample(rng, e.pitch[:])
	if err != nil {
		return Decision{}, err
	}
	ch, err := sample(rng, e.chord[:])
	if err != nil {
		return Decision{}, err
	}
	en, err := sample(rng, e.energy[:])
	if err != nil {
		return Decision{}, err
	}
	out, err := sample(rng, e.channel[:])
	if err != nil {
		return Decision{}, err
	}

	chord := Chord(ch)
	pitchFn := PitchFunc(fn)
	energy := Energy(en)
	channel := out + 1

	return Decision{
		ShouldPlay: true,
		Note:       ResolvePitch(chord, pitchFn, channel, rng),
		Velocity:   ScaleVelocity(ev.Velocity, energy),
		Duration:   0.5,
		Channel:    channel,
		Explain:    fmt.Sprintf("%s -> %s", chord, pitchFn),
	}, nil
}
