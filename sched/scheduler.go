// Package sched delivers note-ons with zero added latency and fires the
// matching note-offs at their due time from a single background worker.
package sched

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-accompany/debug"
)

// Sender pushes one message to the MIDI output.
type Sender func(gomidi.Message) error

// ErrNoSender is returned by Submit when no output is configured. The
// caller reports it and keeps going; it is not fatal.
var ErrNoSender = errors.New("sched: no output sender configured")

// item is one deferred message. seq keeps dispatch stable for equal due
// times: first submitted, first sent.
type item struct {
	due time.Time
	seq uint64
	msg gomidi.Message
}

type queue []item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if !q[i].due.Equal(q[j].due) {
		return q[i].due.Before(q[j].due)
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Scheduler owns the deferred-message queue and its worker. Only the worker
// ever pops from the queue.
type Scheduler struct {
	mu   sync.Mutex
	q    queue
	seq  uint64
	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	senderMu sync.RWMutex
	sender   Sender

	stopOnce sync.Once
}

// New creates a scheduler and starts its worker.
func New() *Scheduler {
	s := &Scheduler{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

// SetSender swaps the output. Safe to call while the worker is dispatching;
// the next dispatch goes through the new sender.
func (s *Scheduler) SetSender(send Sender) {
	s.senderMu.Lock()
	s.sender = send
	s.senderMu.Unlock()
}

func (s *Scheduler) currentSender() Sender {
	s.senderMu.RLock()
	defer s.senderMu.RUnlock()
	return s.sender
}

// Submit sends on immediately from the calling goroutine, then schedules
// off for now+d. If no sender is configured nothing is sent and ErrNoSender
// is returned.
func (s *Scheduler) Submit(on, off gomidi.Message, d time.Duration) error {
	send := s.currentSender()
	if send == nil {
		return ErrNoSender
	}
	if err := send(on); err != nil {
		return err
	}

	s.mu.Lock()
	s.seq++
	heap.Push(&s.q, item{due: time.Now().Add(d), seq: s.seq, msg: off})
	s.mu.Unlock()

	// Nudge the worker in case it is sleeping past the new due time.
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of queued deferred messages.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.q)
}

// Stop shuts the worker down and returns once it has exited. Queued
// note-offs are abandoned, not flushed; callers that need every note closed
// must wait for the queue to drain before stopping.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// run is the single worker loop: sleep until the earliest message is due,
// re-checking whenever a submit lands.
func (s *Scheduler) run() {
	defer close(s.done)

	for {
		s.mu.Lock()
		if len(s.q) == 0 {
			s.mu.Unlock()
			select {
			case <-s.stop:
				return
			case <-s.wake:
			}
			continue
		}

		next := s.q[0]
		now := time.Now()
		if !next.due.After(now) {
			heap.Pop(&s.q)
			s.mu.Unlock()

			if send := s.currentSender(); send != nil {
				if err := send(next.msg); err != nil {
					debug.Log("sched", "send failed: %v", err)
				}
			}
			continue
		}
		wait := next.due.Sub(now)
		s.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-s.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}
