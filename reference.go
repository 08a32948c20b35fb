package locality

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrReferenceInexact is returned when float64 cannot represent every partial
// sum of the product exactly, so the gonum result is not a valid oracle.
var ErrReferenceInexact = errors.New("reference product not exact in float64")

// maxExactFloat is 2^53, the first integer float64 cannot step past by one.
const maxExactFloat = 1 << 53

// ReferenceError reports the first element where a kernel result disagrees
// with the gonum product.
type ReferenceError struct {
	Row, Col  int
	Got       int64
	Reference int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("result differs from gonum reference at (%d,%d): got=%d reference=%d",
		e.Row, e.Col, e.Got, e.Reference)
}

// ReferenceCheck recomputes A·A with gonum's BLAS-backed Dense.Mul and
// compares it element-wise with c, returning a *ReferenceError on the first
// disagreement.
func ReferenceCheck(a, c *Matrix) error {
	if a.N != c.N {
		return fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, a.N, c.N)
	}
	n := a.N

	var maxAbs int64
	for _, v := range a.Data {
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	if maxAbs > 0 && (maxAbs > maxExactFloat/maxAbs || maxAbs*maxAbs > maxExactFloat/int64(n)) {
		return fmt.Errorf("%w: n=%d max=%d", ErrReferenceInexact, n, maxAbs)
	}

	data := make([]float64, len(a.Data))
	for i, v := range a.Data {
		data[i] = float64(v)
	}
	dense := mat.NewDense(n, n, data)

	var product mat.Dense
	product.Mul(dense, dense)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := int64(product.At(i, j))
			if got := c.At(i, j); got != want {
				return &ReferenceError{Row: i, Col: j, Got: got, Reference: want}
			}
		}
	}
	return nil
}
