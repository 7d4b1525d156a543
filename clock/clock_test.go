package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTime lets tests drive the clock deterministically.
type fakeTime struct {
	now time.Time
}

func (f *fakeTime) advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestClock(t *testing.T, bpm int) (*Clock, *fakeTime) {
	t.Helper()
	ft := &fakeTime{now: time.Unix(1000, 0)}
	c, err := New(bpm)
	require.NoError(t, err)
	c.now = func() time.Time { return ft.now }
	c.Reset()
	return c, ft
}

func TestNewRejectsInvalidBPM(t *testing.T) {
	for _, bpm := range []int{0, -1, -120} {
		_, err := New(bpm)
		assert.Error(t, err, "bpm %d", bpm)
	}
}

func TestSetBPMKeepsPriorTempoOnError(t *testing.T) {
	c, _ := newTestClock(t, 120)
	require.Error(t, c.SetBPM(0))
	assert.Equal(t, 120, c.BPM())
	assert.Equal(t, 125*time.Millisecond, c.Interval())
}

func TestInterval(t *testing.T) {
	tests := []struct {
		bpm  int
		want time.Duration
	}{
		{120, 125 * time.Millisecond},
		{60, 250 * time.Millisecond},
		{240, 62500 * time.Microsecond},
	}
	for _, tt := range tests {
		c, _ := newTestClock(t, tt.bpm)
		assert.Equal(t, tt.want, c.Interval(), "bpm %d", tt.bpm)
	}
}

func TestPollFiresOncePerInterval(t *testing.T) {
	c, ft := newTestClock(t, 120)

	assert.False(t, c.Poll(), "no time has passed")

	ft.advance(c.Interval())
	assert.True(t, c.Poll())
	assert.False(t, c.Poll(), "second poll in the same interval must not fire")
	assert.Equal(t, 1, c.Steps())
}

func TestPollCatchesUpAfterMissedPolls(t *testing.T) {
	c, ft := newTestClock(t, 120)

	// Three intervals pass without a poll: the next three polls fire
	// immediately, none are skipped.
	ft.advance(3 * c.Interval())
	for i := 0; i < 3; i++ {
		assert.True(t, c.Poll(), "catch-up poll %d", i)
	}
	assert.False(t, c.Poll())
	assert.Equal(t, 3, c.Steps())
}

func TestPollDoesNotAccumulateDrift(t *testing.T) {
	c, ft := newTestClock(t, 120)

	// Poll late by half an interval every time. Re-basing by whole
	// intervals keeps the long-run rate exact: after N*interval+half has
	// elapsed we have seen exactly N ticks.
	ticks := 0
	for i := 0; i < 64; i++ {
		ft.advance(c.Interval() + c.Interval()/2)
		for c.Poll() {
			ticks++
		}
	}
	elapsed := ft.now.Sub(time.Unix(1000, 0))
	assert.Equal(t, int(elapsed/c.Interval()), ticks)
}

func TestResetStartsOverAtBarOne(t *testing.T) {
	c, ft := newTestClock(t, 120)

	for i := 0; i < 20; i++ {
		ft.advance(c.Interval())
		require.True(t, c.Poll())
	}
	require.Equal(t, 20, c.Steps())

	c.Reset()
	assert.Equal(t, 0, c.Steps())
	assert.False(t, c.Poll(), "reset re-bases the reference time")

	ft.advance(c.Interval())
	require.True(t, c.Poll())
	assert.Equal(t, 1, Bar(c.Steps()))
	assert.Equal(t, 1, StepInBar(c.Steps()))
}

func TestBarAndStepDerivation(t *testing.T) {
	tests := []struct {
		steps, bar, inBar int
	}{
		{1, 1, 1},
		{16, 1, 16},
		{17, 2, 1},
		{48, 3, 16},
		{64, 4, 16},
		{65, 1, 1}, // phrase wraps after four bars
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bar, Bar(tt.steps), "Bar(%d)", tt.steps)
		assert.Equal(t, tt.inBar, StepInBar(tt.steps), "StepInBar(%d)", tt.steps)
	}
}

func TestPosOf(t *testing.T) {
	wantDown := map[int]bool{1: true, 5: true, 9: true, 13: true}
	for s := 1; s <= 16; s++ {
		got := PosOf(s)
		switch {
		case wantDown[s]:
			assert.Equal(t, Downbeat, got, "step %d", s)
		case s%2 == 1:
			assert.Equal(t, Offbeat, got, "step %d", s)
		default:
			assert.Equal(t, Subdivision, got, "step %d", s)
		}
	}
}
