package perform

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-accompany/bayes"
)

func TestDrainReturnsArrivalOrder(t *testing.T) {
	var b Buffer
	want := []InputEvent{
		{Instrument: bayes.Kick, Velocity: 10},
		{Instrument: bayes.Snare, Velocity: 20},
		{Instrument: bayes.Rim, Velocity: 30},
	}
	for _, ev := range want {
		b.Record(ev)
	}

	assert.Equal(t, want, b.Drain())
	assert.Empty(t, b.Drain(), "drain consumes everything")
}

func TestConcurrentRecordsLandExactlyOnce(t *testing.T) {
	var b Buffer

	const producers = 8
	const perProducer = 500

	var wg sync.WaitGroup
	for g := 0; g < producers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				// Velocity doubles as a unique event id.
				b.Record(InputEvent{Instrument: bayes.Kick, Velocity: g*perProducer + i})
			}
		}(g)
	}

	// Drain concurrently with the producers; every event must land in
	// exactly one drain.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	seen := make(map[int]bool)
	collect := func(evs []InputEvent) {
		for _, ev := range evs {
			require.False(t, seen[ev.Velocity], "event %d delivered twice", ev.Velocity)
			seen[ev.Velocity] = true
		}
	}

	for {
		select {
		case <-done:
			collect(b.Drain())
			require.Len(t, seen, producers*perProducer)
			return
		default:
			collect(b.Drain())
		}
	}
}
