package state

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInterval is returned by Run for a non-positive interval.
var ErrInvalidInterval = errors.New("toggle interval must be positive")

// PowerToggler calls Toggle every Interval until its context is done.
type PowerToggler struct {
	Interval time.Duration

	// Toggle flips the power status. It runs on the toggler's goroutine;
	// the callee serialises access to the state.
	Toggle func(now time.Time)
}

// Run blocks until ctx is cancelled and returns ctx.Err().
func (p *PowerToggler) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		return ErrInvalidInterval
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			p.Toggle(now)
		}
	}
}
