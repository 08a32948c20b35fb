// Package locality benchmarks how memory-access locality affects dense
// integer matrix multiplication. It multiplies a matrix by itself twice: once
// striding down columns in the inner loop, once walking a pre-transposed copy
// row by row, and checks that both paths agree.
package locality

import (
	"fmt"
	"strings"
)

// Matrix is a square N×N matrix of int64 stored in row-major order.
// The underlying data is a flat slice so that row k occupies
// Data[k*N : (k+1)*N].
type Matrix struct {
	Data []int64
	N    int
}

// NewMatrix creates a zeroed N×N matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{
		Data: make([]int64, n*n),
		N:    n,
	}
}

// NewMatrixFromSlice creates a matrix from a square 2D slice.
func NewMatrixFromSlice(data [][]int64) *Matrix {
	n := len(data)
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		if len(data[i]) != n {
			panic(fmt.Sprintf("row %d has %d elements, want %d", i, len(data[i]), n))
		}
		copy(m.Row(i), data[i])
	}
	return m
}

// Index returns the flat index for the given row and column.
func (m *Matrix) Index(row, col int) int {
	return row*m.N + col
}

// At returns the element at position (row, col).
func (m *Matrix) At(row, col int) int64 {
	return m.Data[m.Index(row, col)]
}

// Set sets the element at position (row, col).
func (m *Matrix) Set(row, col int, value int64) {
	m.Data[m.Index(row, col)] = value
}

// Row returns row i as a slice aliasing the matrix storage.
func (m *Matrix) Row(i int) []int64 {
	return m.Data[i*m.N : (i+1)*m.N]
}

// Clone creates a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	dataCopy := make([]int64, len(m.Data))
	copy(dataCopy, m.Data)
	return &Matrix{Data: dataCopy, N: m.N}
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	result := NewMatrix(m.N)
	for i := 0; i < m.N; i++ {
		for j := 0; j < m.N; j++ {
			result.Set(j, i, m.At(i, j))
		}
	}
	return result
}

// Reset zeroes every element.
func (m *Matrix) Reset() {
	clear(m.Data)
}

// Equal reports whether both matrices have the same size and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.N != other.N {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// To2D converts the matrix to a 2D slice representation.
func (m *Matrix) To2D() [][]int64 {
	result := make([][]int64, m.N)
	for i := 0; i < m.N; i++ {
		result[i] = append([]int64(nil), m.Row(i)...)
	}
	return result
}

// String returns a string representation of the matrix.
func (m *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matrix(%dx%d):\n", m.N, m.N)
	for i := 0; i < m.N; i++ {
		sb.WriteString("[")
		for j := 0; j < m.N; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", m.At(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// Bytes returns the storage footprint of an N×N matrix.
func Bytes(n int) int64 {
	return int64(n) * int64(n) * 8
}
