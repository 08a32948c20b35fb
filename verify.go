package locality

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when matrices passed together differ in size.
	ErrShapeMismatch = errors.New("matrix size mismatch")
	// ErrInvalidSize is returned for a matrix dimension below 1.
	ErrInvalidSize = errors.New("matrix size must be positive")
	// ErrMemoryBudget is returned when the four matrices would exceed the budget.
	ErrMemoryBudget = errors.New("matrices exceed memory budget")
)

// MismatchError reports the first element where the two results disagree.
type MismatchError struct {
	Row, Col   int
	Naive      int64
	Transposed int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("results differ at (%d,%d): naive=%d transposed=%d",
		e.Row, e.Col, e.Naive, e.Transposed)
}

// Verify scans c1 and c2 in row-major order and returns a *MismatchError for
// the first differing element. It returns nil when both are identical.
func Verify(c1, c2 *Matrix) error {
	if c1.N != c2.N {
		return fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, c1.N, c2.N)
	}
	n := c1.N
	for i := 0; i < n; i++ {
		r1, r2 := c1.Row(i), c2.Row(i)
		for j := 0; j < n; j++ {
			if r1[j] != r2[j] {
				return &MismatchError{Row: i, Col: j, Naive: r1[j], Transposed: r2[j]}
			}
		}
	}
	return nil
}
