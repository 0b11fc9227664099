package transfer

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate is the process-wide mutual exclusion barrier for transfers. It has
// capacity one regardless of which accounts a transfer touches, so any two
// transfers are serialized even when their account pairs are disjoint.
// Serializing everything trades throughput for the absence of lost-update
// races and of lock-ordering deadlocks between opposing transfers.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a gate admitting exactly one holder at a time
func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// Acquire blocks until the gate is free or ctx is done. A caller whose
// context expires while queued never becomes a holder and must not call
// Release.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release frees the gate. It must be called exactly once per successful
// Acquire, on every exit path; a skipped release deadlocks all subsequent
// transfers permanently.
func (g *Gate) Release() {
	g.sem.Release(1)
}
