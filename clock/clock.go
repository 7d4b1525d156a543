// Package clock generates the 16th-note step grid that drives the performance.
package clock

import (
	"fmt"
	"time"
)

// StepsPerBeat is the subdivision of the beat (16th notes).
const StepsPerBeat = 4

// StepsPerBar is the number of steps in one 4/4 bar.
const StepsPerBar = 16

// BarsPerPhrase is the length of the harmonic cycle in bars.
const BarsPerPhrase = 4

// BeatPos classifies a step within the bar.
type BeatPos int

const (
	Downbeat BeatPos = iota
	Offbeat
	Subdivision
)

func (b BeatPos) String() string {
	switch b {
	case Downbeat:
		return "Downbeat"
	case Offbeat:
		return "Offbeat"
	default:
		return "Subdivision"
	}
}

// Clock converts a tempo into evenly spaced step ticks. Poll re-bases the
// reference time by whole intervals so drift never accumulates: a late poll
// fires immediately on the next call instead of skipping a step.
type Clock struct {
	bpm      int
	interval time.Duration
	lastTick time.Time
	steps    int

	now func() time.Time // swapped out in tests
}

// New creates a clock at the given tempo.
func New(bpm int) (*Clock, error) {
	c := &Clock{now: time.Now}
	if err := c.SetBPM(bpm); err != nil {
		return nil, err
	}
	c.Reset()
	return c, nil
}

// SetBPM changes the tempo. Invalid tempos are rejected and the previous
// tempo stays in effect. The new interval applies from the next tick.
func (c *Clock) SetBPM(bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("clock: invalid bpm %d", bpm)
	}
	c.bpm = bpm
	c.interval = time.Duration(float64(time.Minute) / float64(bpm) / StepsPerBeat)
	return nil
}

// BPM returns the current tempo.
func (c *Clock) BPM() int {
	return c.bpm
}

// Interval returns the current inter-tick spacing.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Poll reports whether one interval has elapsed since the last tick. On true
// it advances the step counter by exactly one and moves the reference time
// forward by one interval.
func (c *Clock) Poll() bool {
	if c.now().Sub(c.lastTick) < c.interval {
		return false
	}
	c.lastTick = c.lastTick.Add(c.interval)
	c.steps++
	return true
}

// Reset zeroes the step counter and re-bases the reference time to now.
func (c *Clock) Reset() {
	c.steps = 0
	c.lastTick = c.now()
}

// Steps returns the number of ticks since the last reset.
func (c *Clock) Steps() int {
	return c.steps
}

// Bar returns the 1-based bar (1..4) for a tick count. The first tick after
// a reset is step 1 of bar 1.
func Bar(steps int) int {
	if steps < 1 {
		steps = 1
	}
	return ((steps - 1) / StepsPerBar % BarsPerPhrase) + 1
}

// StepInBar returns the 1-based step within the bar (1..16).
func StepInBar(steps int) int {
	if steps < 1 {
		steps = 1
	}
	return (steps-1)%StepsPerBar + 1
}

// PosOf classifies a 1-based step within the bar. Steps 1, 5, 9 and 13 are
// downbeats; the remaining odd steps are offbeats.
func PosOf(stepInBar int) BeatPos {
	switch {
	case stepInBar%4 == 1:
		return Downbeat
	case stepInBar%2 == 1:
		return Offbeat
	default:
		return Subdivision
	}
}
