// Package schur: the Operand handle.
//
// Every divide routine is written once against Operand. A local operand
// wraps a plain dense matrix and its collective hooks are no-ops. A grid
// operand additionally carries a communicator plus the global row offset of
// its view; each rank holds a full mirrored copy of the matrix, reductions
// are partitioned row-cyclically by ownership and summed collectively, and
// randomness is drawn on the root rank and broadcast so every rank applies
// a bit-identical transform.

package schur

import (
	"fmt"

	"github.com/numkit/spectral/grid"
	"github.com/numkit/spectral/matrix"
)

// rootRank is the designated rank that draws randomness and solves leaves.
const rootRank = 0

// Operand binds a dense matrix to its execution flavor.
type Operand[T matrix.Scalar] struct {
	d      *matrix.Dense[T]
	comm   *grid.Comm
	rowOff int
}

// Local wraps a matrix living in a single memory space.
func Local[T matrix.Scalar](d *matrix.Dense[T]) *Operand[T] {
	return &Operand[T]{d: d}
}

// OnGrid wraps this rank's mirrored copy of a matrix replicated across the
// communicator's group. Every rank of the group must construct its operand
// over an identical copy; the divide routines keep the copies consistent.
func OnGrid[T matrix.Scalar](d *matrix.Dense[T], c *grid.Comm) *Operand[T] {
	return &Operand[T]{d: d, comm: c}
}

// Dense returns the wrapped matrix.
func (o *Operand[T]) Dense() *matrix.Dense[T] { return o.d }

// Comm returns the communicator, nil for the local flavor.
func (o *Operand[T]) Comm() *grid.Comm { return o.comm }

// view derives the operand for an aliasing sub-block, tracking the global
// row offset for ownership bookkeeping.
func (o *Operand[T]) view(row, col, rows, cols int) (*Operand[T], error) {
	sub, err := o.d.View(row, col, rows, cols)
	if err != nil {
		return nil, err
	}
	return &Operand[T]{d: sub, comm: o.comm, rowOff: o.rowOff + row}, nil
}

// sibling wraps independent storage under this operand's flavor, aligned to
// the same global row offset.
func (o *Operand[T]) sibling(d *matrix.Dense[T]) *Operand[T] {
	return &Operand[T]{d: d, comm: o.comm, rowOff: o.rowOff}
}

// onRoot reports whether this rank draws randomness and solves leaves.
// A local operand always does.
func (o *Operand[T]) onRoot() bool {
	return o.comm == nil || o.comm.Rank() == rootRank
}

// ownsRow reports whether this rank accumulates reduction contributions for
// local row i. Ownership is row-cyclic over global indices so the work of a
// reduction is partitioned evenly across the group.
func (o *Operand[T]) ownsRow(i int) bool {
	if o.comm == nil {
		return true
	}
	return (o.rowOff+i)%o.comm.Size() == o.comm.Rank()
}

// allReduceSum completes a partitioned reduction: summing every rank's
// partial contributions in place. No-op for the local flavor.
func (o *Operand[T]) allReduceSum(xs []float64) error {
	if o.comm == nil {
		return nil
	}
	return grid.AllReduceSum(o.comm, xs)
}

// shareScalar broadcasts a root-drawn scalar to the whole group in place.
// No-op for the local flavor.
func shareScalar[T matrix.Scalar](o *Operand[T], p *T) error {
	if o.comm == nil {
		return nil
	}
	buf := []T{*p}
	if err := grid.Broadcast(o.comm, buf, rootRank); err != nil {
		return err
	}
	*p = buf[0]
	return nil
}

// shareDense broadcasts the root rank's copy of d into every other rank's
// copy. d may be a strided view; the payload is packed densely.
func shareDense[T matrix.Scalar](c *grid.Comm, d *matrix.Dense[T]) error {
	rows, cols := d.Rows(), d.Cols()
	data, stride := d.Data(), d.Stride()
	buf := make([]T, rows*cols)
	if c.Rank() == rootRank {
		for i := 0; i < rows; i++ {
			copy(buf[i*cols:(i+1)*cols], data[i*stride:i*stride+cols])
		}
	}
	if err := grid.Broadcast(c, buf, rootRank); err != nil {
		return err
	}
	if c.Rank() != rootRank {
		for i := 0; i < rows; i++ {
			copy(data[i*stride:i*stride+cols], buf[i*cols:(i+1)*cols])
		}
	}
	return nil
}

// checkSquare validates a single operand.
func checkSquare[T matrix.Scalar](o *Operand[T]) error {
	if o == nil || o.d == nil {
		return ErrNilOperand
	}
	if o.d.Rows() != o.d.Cols() {
		return fmt.Errorf("%dx%d: %w", o.d.Rows(), o.d.Cols(), ErrNonSquare)
	}
	return nil
}

// checkPair validates a target matrix together with a companion (generator
// or transform target) that must match its shape and flavor.
func checkPair[T matrix.Scalar](a, b *Operand[T]) error {
	if err := checkSquare(a); err != nil {
		return err
	}
	if err := checkSquare(b); err != nil {
		return err
	}
	if a.d.Rows() != b.d.Rows() {
		return fmt.Errorf("%d vs %d: %w", a.d.Rows(), b.d.Rows(), ErrShapeMismatch)
	}
	if a.comm != b.comm {
		return ErrGridMismatch
	}
	return nil
}
