// Package sequencer forces code in different goroutines to run in an
// explicit linear order, which is useful for writing deterministic tests of
// concurrent code.
//
// Each block of code is tagged with a sequence position. Block 0 runs
// immediately; block N does not start until block N-1 has finished:
//
//	seq := sequencer.New()
//	go seq.Step(ctx, 1, func() { fmt.Println("second") })
//	go seq.Step(ctx, 0, func() { fmt.Println("first") })
//
// Positions must be contiguous from 0 and each position may be claimed at
// most once. If a waiter's context is cancelled the whole sequence is
// broken: every current and future Step returns ErrBroken, so a single
// stuck goroutine cannot deadlock the rest of a test silently.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Errors returned by Step.
var (
	// ErrBroken means a waiter was cancelled and the linear order can no
	// longer be established.
	ErrBroken = errors.New("sequencer: sequence broken")

	// ErrReused means a sequence position was claimed more than once.
	ErrReused = errors.New("sequencer: sequence point re-used")
)

// Sequencer imposes a total order on blocks of code running in different
// goroutines. The zero value is not usable; call New.
type Sequencer struct {
	mu       sync.Mutex
	points   map[int]chan struct{} // closed when the preceding block finishes
	released map[int]bool
	claimed  map[int]bool
	broken   bool
}

// New creates a Sequencer.
func New() *Sequencer {
	return &Sequencer{
		points:   make(map[int]chan struct{}),
		released: make(map[int]bool),
		claimed:  make(map[int]bool),
	}
}

// Step claims position, waits until block position-1 has finished, runs fn,
// and then allows block position+1 to start. Block position+1 is released
// even if fn panics.
func (s *Sequencer) Step(ctx context.Context, position int, fn func()) error {
	s.mu.Lock()
	if s.claimed[position] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrReused, position)
	}
	if s.broken {
		s.mu.Unlock()
		return ErrBroken
	}
	s.claimed[position] = true
	var wait chan struct{}
	if position != 0 {
		wait = s.point(position)
	}
	s.mu.Unlock()

	if wait != nil {
		select {
		case <-wait:
			s.mu.Lock()
			broken := s.broken
			s.mu.Unlock()
			if broken {
				return ErrBroken
			}
		case <-ctx.Done():
			s.breakSequence()
			return fmt.Errorf("sequencer: wait for point %d cancelled: %w", position, ErrBroken)
		}
	}

	defer func() {
		s.mu.Lock()
		s.release(position + 1)
		s.mu.Unlock()
	}()
	fn()
	return nil
}

// point returns the channel closed when block position-1 finishes.
// Caller must hold mu.
func (s *Sequencer) point(position int) chan struct{} {
	ch, ok := s.points[position]
	if !ok {
		ch = make(chan struct{})
		s.points[position] = ch
	}
	return ch
}

// release closes the channel for position, letting its claimant proceed.
// Caller must hold mu.
func (s *Sequencer) release(position int) {
	if s.released[position] {
		return
	}
	s.released[position] = true
	close(s.point(position))
}

// breakSequence marks the sequence broken and wakes every waiter so they can
// observe the breakage instead of blocking forever.
func (s *Sequencer) breakSequence() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.broken = true
	for position := range s.points {
		s.release(position)
	}
}
