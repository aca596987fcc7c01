// Package grid: the collectives. Each one is a single locked join step
// followed by a cancellable wait; the last arriver finalizes the round.

package grid

import "fmt"

// Operation tags for rendezvous matching and error reporting.
const (
	opAllReduceSum = "AllReduceSum"
	opBroadcast    = "Broadcast"
	opBarrier      = "Barrier"
)

// join enters (or opens) the current rendezvous, runs contribute under the
// group lock, and completes the round if this rank is the last arriver.
// A rank whose (op, length, root) disagrees with the open round poisons it:
// the round errors for everyone and the group aborts through context
// cancellation upstream.
func (c *Comm) join(op string, length, root int, contribute func(r *round)) (*round, error) {
	g := c.g
	g.mu.Lock()
	r := g.cur
	if r == nil {
		r = &round{op: op, length: length, root: root, done: make(chan struct{})}
		g.cur = r
	} else if r.op != op || r.length != length || r.root != root {
		r.err = fmt.Errorf("grid: rank %d called %s(len=%d,root=%d) against open %s(len=%d,root=%d): %w",
			c.rank, op, length, root, r.op, r.length, r.root, ErrCollectiveMismatch)
		g.cur = nil
		close(r.done) // wake the ranks already parked on this round
		g.mu.Unlock()
		return nil, r.err
	}
	contribute(r)
	r.arrived++
	if r.arrived == g.size {
		g.cur = nil
		close(r.done)
	}
	g.mu.Unlock()
	return r, nil
}

// wait parks until the round completes or the run context is cancelled.
func (c *Comm) wait(r *round) error {
	select {
	case <-r.done:
		return r.err
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// AllReduceSum replaces xs on every rank with the element-wise sum of the
// xs slices contributed by all ranks. All ranks must pass the same length.
// Contributions are stashed per rank and summed in rank order, so the
// reduced floats are the same run to run regardless of goroutine
// scheduling, not merely identical across ranks within one run.
// Blocking, barrier-like. O(P·len).
func AllReduceSum(c *Comm, xs []float64) error {
	r, err := c.join(opAllReduceSum, len(xs), 0, func(r *round) {
		if r.parts == nil {
			r.parts = make([][]float64, c.g.size)
		}
		r.parts[c.rank] = append([]float64(nil), xs...)
	})
	if err != nil {
		return err
	}
	if err = c.wait(r); err != nil {
		return err
	}
	for i := range xs {
		xs[i] = 0
	}
	for rank := 0; rank < c.g.size; rank++ {
		for i, v := range r.parts[rank] {
			xs[i] += v
		}
	}
	return nil
}

// Broadcast overwrites buf on every rank with a bit-identical copy of the
// root rank's buf. All ranks must pass the same length and root.
// Blocking, barrier-like. O(P·len).
func Broadcast[E any](c *Comm, buf []E, root int) error {
	if root < 0 || root >= c.g.size {
		return fmt.Errorf("grid: Broadcast root %d of %d: %w", root, c.g.size, ErrBadRoot)
	}
	r, err := c.join(opBroadcast, len(buf), root, func(r *round) {
		if c.rank == root {
			r.payload = append([]E(nil), buf...)
		}
	})
	if err != nil {
		return err
	}
	if err = c.wait(r); err != nil {
		return err
	}
	if c.rank != root {
		copy(buf, r.payload.([]E))
	}
	return nil
}

// Barrier blocks until every rank has entered it.
func Barrier(c *Comm) error {
	r, err := c.join(opBarrier, 0, 0, func(*round) {})
	if err != nil {
		return err
	}
	return c.wait(r)
}
