// Package grid: sentinel errors. Matched with errors.Is.

package grid

import "errors"

var (
	// ErrBadGroupSize indicates a requested group size below 1.
	ErrBadGroupSize = errors.New("grid: group size must be >= 1")

	// ErrBadRoot indicates a broadcast root outside [0, size).
	ErrBadRoot = errors.New("grid: root rank out of range")

	// ErrCollectiveMismatch indicates that ranks disagreed on which
	// collective to run (operation, payload length, or root). The group is
	// left in an inconsistent state, so the error is fatal for the run.
	ErrCollectiveMismatch = errors.New("grid: mismatched collective call")
)
