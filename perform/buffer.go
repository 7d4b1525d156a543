package perform

import (
	"sync"

	"go-accompany/bayes"
)

// InputEvent is one identified hit from the MIDI input.
type InputEvent struct {
	Instrument bayes.Instrument
	Velocity   int
}

// Buffer accumulates input events between clock steps. Record runs on the
// MIDI listener goroutine and must never block on the rest of the engine;
// Drain runs on the clock loop. Every recorded event lands in exactly one
// drain, in arrival order.
type Buffer struct {
	mu     sync.Mutex
	events []InputEvent
}

// Record appends an event.
func (b *Buffer) Record(ev InputEvent) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()
}

// Drain swaps the accumulated events for an empty slice and returns them.
func (b *Buffer) Drain() []InputEvent {
	b.mu.Lock()
	evs := b.events
	b.events = nil
	b.mu.Unlock()
	return evs
}
