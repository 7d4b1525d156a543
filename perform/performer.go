// Package perform glues the clock, the decision table, the input buffer and
// the scheduler into the running performance.
package perform

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-accompany/bayes"
	"go-accompany/clock"
	"go-accompany/debug"
	"go-accompany/sched"
)

// StepInfo is what one clock step produced, for the UI log.
type StepInfo struct {
	Step     int // absolute tick since start
	Bar      int // 1-4
	Beat     int // 1-4
	Sub      int // 0-3
	Decision bayes.Decision
}

// Performer owns the performance state machine. All tick processing happens
// on the Run goroutine; Record, Start, Stop and SetBPM may be called from
// anywhere.
type Performer struct {
	clk   *clock.Clock
	table *bayes.Table
	sch   *sched.Scheduler
	buf   Buffer
	rng   *rand.Rand

	mu      sync.Mutex
	running bool

	// OnStep is invoked after every processed tick. OnNoSink is invoked
	// each time a playable decision is dropped for lack of an output.
	// Both are optional and called from the Run goroutine.
	OnStep   func(StepInfo)
	OnNoSink func()
}

// New builds a performer: baked table, clock at the given tempo, scheduler
// worker started.
func New(bpm int) (*Performer, error) {
	clk, err := clock.New(bpm)
	if err != nil {
		return nil, err
	}
	return &Performer{
		clk:   clk,
		table: bayes.NewTable(),
		sch:   sched.New(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// SetSender configures the MIDI output used for everything the performer
// emits.
func (p *Performer) SetSender(send sched.Sender) {
	p.sch.SetSender(send)
}

// Scheduler exposes the event scheduler, mainly for shutdown.
func (p *Performer) Scheduler() *sched.Scheduler {
	return p.sch
}

// SetBPM changes the tempo; invalid values are rejected and the old tempo
// kept.
func (p *Performer) SetBPM(bpm int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clk.SetBPM(bpm)
}

// BPM returns the current tempo.
func (p *Performer) BPM() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clk.BPM()
}

// Record feeds one identified hit into the evidence buffer. Cheap and
// non-blocking; safe from the MIDI callback goroutine.
func (p *Performer) Record(ev InputEvent) {
	p.buf.Record(ev)
}

// Running reports whether the clock is advancing.
func (p *Performer) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start begins the performance from bar 1 step 1. Idempotent. Hits recorded
// while stopped are discarded so a stale buffer cannot color the first step.
func (p *Performer) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.buf.Drain()
	p.clk.Reset()
	p.running = true
	debug.Log("perform", "started at %d bpm", p.clk.BPM())
}

// Stop halts tick processing. Note-offs already handed to the scheduler
// still fire. Idempotent.
func (p *Performer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	debug.Log("perform", "stopped")
}

// Toggle flips between running and stopped and reports the new state.
func (p *Performer) Toggle() bool {
	if p.Running() {
		p.Stop()
		return false
	}
	p.Start()
	return true
}

// Run is the clock/coordinator loop. It polls the clock and processes one
// step per tick until ctx is done. Runs on its own goroutine.
func (p *Performer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		p.mu.Lock()
		running := p.running
		ticked := running && p.clk.Poll()
		steps := p.clk.Steps()
		interval := p.clk.Interval()
		p.mu.Unlock()

		if ticked {
			p.step(steps, interval)
			continue // catch up on missed ticks before sleeping
		}

		if running {
			time.Sleep(2 * time.Millisecond)
		} else {
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// dominant picks the event that drives the step: loudest wins, first
// arrival wins ties, empty buffer means silence.
func dominant(evs []InputEvent) InputEvent {
	top := InputEvent{Instrument: bayes.None}
	for _, ev := range evs {
		if ev.Velocity > top.Velocity {
			top = ev
		}
	}
	return top
}

// step processes one tick: drain, decide, emit. A failed decision aborts
// this step only, never the loop.
func (p *Performer) step(steps int, interval time.Duration) {
	bar := clock.Bar(steps)
	stepInBar := clock.StepInBar(steps)

	in := dominant(p.buf.Drain())
	ev := bayes.Evidence{
		Instrument: in.Instrument,
		Velocity:   in.Velocity,
		Bar:        bar,
		Step:       stepInBar,
	}

	dec, err := p.table.Query(ev, p.rng)
	if err != nil {
		debug.Error("perform", "query failed: %v", err)
		return
	}

	if dec.ShouldPlay {
		note := uint8(dec.Note)
		ch := uint8(dec.Channel - 1)
		on := gomidi.NoteOn(ch, note, uint8(dec.Velocity))
		off := gomidi.NoteOff(ch, note)
		dur := time.Duration(dec.Duration * float64(interval) * clock.StepsPerBeat)

		if err := p.sch.Submit(on, off, dur); err != nil {
			if errors.Is(err, sched.ErrNoSender) {
				debug.Log("perform", "no output selected, dropping note")
				if p.OnNoSink != nil {
					p.OnNoSink()
				}
			} else {
				debug.Error("perform", "submit failed: %v", err)
			}
		}
	}

	if p.OnStep != nil {
		p.OnStep(StepInfo{
			Step:     steps,
			Bar:      bar,
			Beat:     (stepInBar-1)/4 + 1,
			Sub:      (stepInBar - 1) % 4,
			Decision: dec,
		})
	}
}
