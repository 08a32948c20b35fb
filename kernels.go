package locality

import (
	"fmt"
)

// Kernel represents one of the two multiplication access patterns.
type Kernel int

const (
	// Naive - i,j,k loop order reading A down a column in the inner loop.
	Naive Kernel = iota
	// TransposedB - i,j,k loop order reading rows of A and of its transpose B.
	TransposedB
)

// String returns the name of the kernel.
func (k Kernel) String() string {
	names := []string{"Naive", "TransposedB"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Kernels lists every kernel in benchmark order.
var Kernels = []Kernel{Naive, TransposedB}

// Multiply computes the product A·A into c using the given kernel.
// b must hold the transpose of a; the Naive kernel ignores it.
func Multiply(kernel Kernel, a, b, c *Matrix) error {
	if a.N != c.N || (kernel == TransposedB && (b == nil || a.N != b.N)) {
		return fmt.Errorf("%w: kernel %s", ErrShapeMismatch, kernel)
	}

	switch kernel {
	case Naive:
		MultiplyNaive(a, c)
	case TransposedB:
		MultiplyTransposed(a, b, c)
	default:
		return fmt.Errorf("unknown kernel: %d", kernel)
	}
	return nil
}

// MultiplyNaive computes c[i][j] = Σ_k a[k][j]·a[i][k].
// For fixed i, j the inner loop reads a[k][j] with a stride of one full row,
// so every step touches a different cache line once N is large.
func MultiplyNaive(a, c *Matrix) {
	n := a.N
	for i := 0; i < n; i++ {
		aRow := a.Row(i)
		for j := 0; j < n; j++ {
			var sum int64
			for k := 0; k < n; k++ {
				sum += a.Data[k*n+j] * aRow[k]
			}
			c.Data[i*n+j] = sum
		}
	}
}

// MultiplyTransposed computes c[i][j] = Σ_k a[i][k]·b[j][k] where b is the
// transpose of a. Both operands are read with unit stride.
func MultiplyTransposed(a, b, c *Matrix) {
	n := a.N
	for i := 0; i < n; i++ {
		aRow := a.Row(i)
		for j := 0; j < n; j++ {
			bRow := b.Row(j)
			var sum int64
			for k := 0; k < n; k++ {
				sum += aRow[k] * bRow[k]
			}
			c.Data[i*n+j] = sum
		}
	}
}
