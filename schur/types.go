package schur

// SplitPoint names a candidate division of a square matrix into a leading
// block of Index rows and a trailing block of n-Index rows. Value is the
// normalized coupling energy left between the two blocks after the
// similarity transform; lower means a cleaner spectral separation.
type SplitPoint struct {
	// Index is the size of the leading diagonal block, in [1, n-1].
	Index int
	// Value is the one-norm of the residual bottom-left coupling relative
	// to the one-norm of the matrix before the transform.
	Value float64
}
