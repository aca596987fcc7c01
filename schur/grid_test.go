// Package schur_test contains tests for the grid flavor, running the same
// decompositions over an in-process process group.
package schur_test

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/numkit/spectral/grid"
	"github.com/numkit/spectral/matrix"
	"github.com/numkit/spectral/schur"
)

// TestPartitionGridMatchesLocal: the partitioned reduction must select the
// same seam the local scan does.
func TestPartitionGridMatchesLocal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a, err := matrix.NewDense[float64](8, 8)
	require.NoError(t, err)
	matrix.GaussianFill(a, rng)

	localPart, err := schur.Partition(schur.Local(a))
	require.NoError(t, err)

	const ranks = 3
	g, err := grid.New(ranks)
	require.NoError(t, err)
	parts := make([]schur.SplitPoint, ranks)
	err = g.Run(context.Background(), func(c *grid.Comm) error {
		p, err := schur.Partition(schur.OnGrid(a, c)) // read-only: sharing is fine
		if err != nil {
			return err
		}
		parts[c.Rank()] = p
		return nil
	})
	require.NoError(t, err)

	for r := 0; r < ranks; r++ {
		require.Equal(t, localPart.Index, parts[r].Index)      // identical seam on every rank
		require.InDelta(t, localPart.Value, parts[r].Value, 1e-12) // summation order may differ
	}
}

// TestSDCGridMatchesLocal: the grid flavor with the same seed must produce
// the same eigenvalues as the local flavor, and every rank's mirrored copy
// must come out identical.
func TestSDCGridMatchesLocal(t *testing.T) {
	const n, ranks = 10, 3
	rng := rand.New(rand.NewSource(5))
	orig, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(orig, rng)
	for i := 0; i < n; i++ {
		v, _ := orig.At(i, i)
		require.NoError(t, orig.Set(i, i, v+complex(float64(4*i)-18, 0)))
	}

	// Local reference run.
	local := orig.Clone()
	localQ, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	err = schur.SDC(schur.Local(local), schur.Local(localQ),
		schur.WithCutoff(3), schur.WithSeed(19))
	require.NoError(t, err)

	// Grid run: each rank works on its own mirrored copy.
	copies := make([]*matrix.Dense[complex128], ranks)
	qs := make([]*matrix.Dense[complex128], ranks)
	for r := range copies {
		copies[r] = orig.Clone()
		qs[r], err = matrix.NewDense[complex128](n, n)
		require.NoError(t, err)
	}
	g, err := grid.New(ranks)
	require.NoError(t, err)
	err = g.Run(context.Background(), func(c *grid.Comm) error {
		return schur.SDC(
			schur.OnGrid(copies[c.Rank()], c),
			schur.OnGrid(qs[c.Rank()], c),
			schur.WithCutoff(3), schur.WithSeed(19),
		)
	})
	require.NoError(t, err)

	// Mirrored consistency: every rank holds the same result.
	for r := 1; r < ranks; r++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				w, _ := copies[0].At(i, j)
				v, _ := copies[r].At(i, j)
				require.Equal(t, w, v)
				wq, _ := qs[0].At(i, j)
				vq, _ := qs[r].At(i, j)
				require.Equal(t, wq, vq)
			}
		}
	}

	// Same spectrum as the local run, up to ordering and roundoff.
	localEigs, _ := matrix.Diagonal(local)
	gridEigs, _ := matrix.Diagonal(copies[0])
	byValue := func(xs []complex128) {
		sort.Slice(xs, func(i, j int) bool {
			if real(xs[i]) != real(xs[j]) {
				return real(xs[i]) < real(xs[j])
			}
			return imag(xs[i]) < imag(xs[j])
		})
	}
	byValue(localEigs)
	byValue(gridEigs)
	for i := range localEigs {
		require.InDelta(t, real(localEigs[i]), real(gridEigs[i]), 1e-8)
		require.InDelta(t, imag(localEigs[i]), imag(gridEigs[i]), 1e-8)
	}

	defect, err := schur.UnitarityDefect(qs[0])
	require.NoError(t, err)
	require.Less(t, defect, 1e-11)
}

// TestSDCGridIdentityLeafBroadcast: a grid leaf is solved on the root rank
// and broadcast, so non-root copies still end up with the result.
func TestSDCGridIdentityLeafBroadcast(t *testing.T) {
	const n, ranks = 6, 2
	copies := make([]*matrix.Dense[float64], ranks)
	for r := range copies {
		var err error
		copies[r], err = matrix.NewIdentity[float64](n)
		require.NoError(t, err)
	}
	g, err := grid.New(ranks)
	require.NoError(t, err)
	err = g.Run(context.Background(), func(c *grid.Comm) error {
		return schur.SDC(schur.OnGrid(copies[c.Rank()], c), nil)
	})
	require.NoError(t, err)

	for r := 0; r < ranks; r++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, _ := copies[r].At(i, j)
				if i == j {
					require.InDelta(t, 1.0, v, 1e-12)
				} else {
					require.InDelta(t, 0.0, v, 1e-12)
				}
			}
		}
	}
}

// TestOperandGridMismatch: pairing a grid operand with a local companion is
// rejected before any collective fires.
func TestOperandGridMismatch(t *testing.T) {
	a, err := matrix.NewDense[float64](4, 4)
	require.NoError(t, err)
	b, err := matrix.NewDense[float64](4, 4)
	require.NoError(t, err)

	g, err := grid.New(1)
	require.NoError(t, err)
	err = g.Run(context.Background(), func(c *grid.Comm) error {
		_, err := schur.SignDivide(schur.OnGrid(a, c), schur.Local(b), false)
		return err
	})
	require.ErrorIs(t, err, schur.ErrGridMismatch)
}
