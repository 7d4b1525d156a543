package bayes

import "go-accompany/clock"

// The conditional structure below is only ever walked at bake time. The
// real-time path reads the flattened table in table.go.
//
//	Density  | Bar, Instrument
//	Energy   | LoudnessBand, Density
//	Chord    | Bar
//	PitchFunc| Chord, BeatPos
//	PlayGate | Instrument, Density, BeatPos
//	Channel  | Instrument, Bar

// cptDensity rows are indexed [barRow][instrument]: row 0 covers bars 1-3,
// row 1 covers bar 4. Instrument None keeps the uninformative fill; its
// entries are absent anyway because its play gate is zero.
var cptDensity = [2][numInstruments][numDensities]float64{
	{ // bars 1-3
		None:  {0.33, 0.33, 0.34},
		Kick:  {0.80, 0.15, 0.05},
		Snare: {0.20, 0.70, 0.10},
		Rim:   {0.10, 0.40, 0.50},
	},
	{ // bar 4
		None:  {0.33, 0.33, 0.34},
		Kick:  {0.40, 0.40, 0.20},
		Snare: {0.05, 0.25, 0.70},
		Rim:   {0.05, 0.25, 0.70},
	},
}

// cptEnergy is indexed [loud][density].
var cptEnergy = [2][numDensities][numEnergies]float64{
	{ // soft
		Sparse: {0.95, 0.05, 0.00},
		Medium: {0.80, 0.20, 0.00},
		Busy:   {0.60, 0.40, 0.00},
	},
	{ // loud
		Sparse: {0.20, 0.70, 0.10},
		Medium: {0.05, 0.50, 0.45},
		Busy:   {0.00, 0.10, 0.90},
	},
}

// cptChord is indexed [bar-1]: a simple I-IV-I-V progression with leakage.
var cptChord = [4][numChords]float64{
	{0.95, 0.00, 0.05, 0.00},
	{0.10, 0.80, 0.05, 0.05},
	{0.90, 0.05, 0.05, 0.00},
	{0.05, 0.05, 0.85, 0.05},
}

// pitchFuncDist returns P(PitchFunc | chord, pos). Tonic downbeats land on
// the root, tonic offbeats favor chord tones, dominant downbeats split;
// everything else uses the generic mix.
func pitchFuncDist(c Chord, pos clock.BeatPos) [numPitchFuncs]float64 {
	switch {
	case c == ChordI && pos == clock.Downbeat:
		return [numPitchFuncs]float64{0.80, 0.15, 0.05}
	case c == ChordI && pos == clock.Offbeat:
		return [numPitchFuncs]float64{0.20, 0.60, 0.20}
	case c == ChordV && pos == clock.Downbeat:
		return [numPitchFuncs]float64{0.50, 0.30, 0.20}
	default:
		return [numPitchFuncs]float64{0.30, 0.40, 0.30}
	}
}

// playGate returns P(play | instrument, density, pos). A kick on a downbeat
// almost always answers; silence never does.
func playGate(in Instrument, d Density, pos clock.BeatPos) float64 {
	switch {
	case in == None:
		return 0
	case in == Kick && pos == clock.Downbeat:
		return 0.99
	case d == Sparse:
		return 0.2
	default:
		return 0.8
	}
}

// channelDist returns P(channel | instrument, bar). Kicks drive the bass
// channel, rims the lead channel; snares drift toward the lead in bar 4.
func channelDist(in Instrument, bar int) [numChannels]float64 {
	switch in {
	case Rim:
		return [numChannels]float64{0.0, 0.0, 1.0}
	case Snare:
		if bar == 4 {
			return [numChannels]float64{0.0, 0.4, 0.6}
		}
		return [numChannels]float64{0.0, 0.9, 0.1}
	default: // Kick, None
		return [numChannels]float64{1.0, 0.0, 0.0}
	}
}

// densityRow picks the CPT row for a bar.
func densityRow(bar int) int {
	if bar == 4 {
		return 1
	}
	return 0
}

// marginals computes, for one evidence cell, the posterior weight vectors of
// the five query variables by summing out the latent ones.
func marginals(bar int, in Instrument, loud bool, pos clock.BeatPos) (play [2]float64, pitch [numPitchFuncs]float64, chord [numChords]float64, energy [numEnergies]float64, channel [numChannels]float64) {
	dens := cptDensity[densityRow(bar)][in]

	loudIdx := 0
	if loud {
		loudIdx = 1
	}

	var pPlay float64
	for d := Sparse; d <= Busy; d++ {
		w := dens[d]
		pPlay += w * playGate(in, d, pos)
		for e := Chill; e <= High; e++ {
			energy[e] += w * cptEnergy[loudIdx][d][e]
		}
	}
	play = [2]float64{1 - pPlay, pPlay}

	chord = cptChord[bar-1]
	for c := ChordI; c <= ChordVI; c++ {
		pf := pitchFuncDist(c, pos)
		for f := Root; f <= Color; f++ {
			pitch[f] += chord[c] * pf[f]
		}
	}

	channel = channelDist(in, bar)
	return
}
