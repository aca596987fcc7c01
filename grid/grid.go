// Package grid: group construction and the rank runner.

package grid

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Group is a fixed-size set of cooperating ranks. The zero value is not
// usable; construct with New.
type Group struct {
	size int

	mu  sync.Mutex
	cur *round // rendezvous currently being assembled, nil between collectives
}

// round is one in-flight collective rendezvous. Every participating rank
// holds a pointer to it; the final arriver detaches it from the Group and
// closes done, so a fast rank can immediately open the next round while
// slow ranks still read this one.
type round struct {
	op      string
	length  int
	root    int
	arrived int
	parts   [][]float64 // AllReduceSum: per-rank contributions, indexed by rank
	payload any       // Broadcast: copy of the root's buffer
	err     error     // set on mismatch before done is closed
	done    chan struct{}
}

// New creates a group of the given size (number of ranks).
func New(size int) (*Group, error) {
	if size < 1 {
		return nil, ErrBadGroupSize
	}
	return &Group{size: size}, nil
}

// Size returns the number of ranks in the group.
func (g *Group) Size() int { return g.size }

// Run launches fn once per rank on its own goroutine and blocks until all
// ranks return. The first error cancels the shared context, which unblocks
// any rank parked inside a collective; Run returns that first error.
func (g *Group) Run(ctx context.Context, fn func(*Comm) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	for rank := 0; rank < g.size; rank++ {
		c := &Comm{g: g, rank: rank, ctx: ctx}
		eg.Go(func() error { return fn(c) })
	}
	return eg.Wait()
}

// Comm is one rank's endpoint into its group: the handle every collective
// operates on. A Comm is only valid inside the Group.Run invocation that
// created it.
type Comm struct {
	g    *Group
	rank int
	ctx  context.Context
}

// Rank returns this endpoint's rank in [0, Size).
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the group.
func (c *Comm) Size() int { return c.g.size }
