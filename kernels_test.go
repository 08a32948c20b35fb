package locality

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multiplyBoth runs both kernels on a and its transpose.
func multiplyBoth(a *Matrix) (c1, c2 *Matrix) {
	b := a.Transpose()
	c1, c2 = NewMatrix(a.N), NewMatrix(a.N)
	MultiplyNaive(a, c1)
	MultiplyTransposed(a, b, c2)
	return c1, c2
}

func TestKernelString(t *testing.T) {
	assert.Equal(t, "Naive", Naive.String())
	assert.Equal(t, "TransposedB", TransposedB.String())
	assert.Equal(t, "Unknown", Kernel(7).String())
	assert.Equal(t, "Unknown", Kernel(-1).String())
}

// TestSmallFixedInput checks a 2x2 product by hand: c[i][j] = Σ_k a[i][k]·a[k][j].
func TestSmallFixedInput(t *testing.T) {
	a := NewMatrixFromSlice([][]int64{
		{1, 2},
		{3, 4},
	})
	b := NewMatrixFromSlice([][]int64{
		{1, 3},
		{2, 4},
	})
	require.True(t, a.Transpose().Equal(b))

	expected := [][]int64{
		{7, 10},
		{15, 22},
	}

	c1 := NewMatrix(2)
	MultiplyNaive(a, c1)
	assert.Equal(t, expected, c1.To2D())

	c2 := NewMatrix(2)
	MultiplyTransposed(a, b, c2)
	assert.Equal(t, expected, c2.To2D())

	assert.NoError(t, Verify(c1, c2))
}

func TestSingleElement(t *testing.T) {
	for _, v := range []int64{0, 1, 9, 99} {
		a := NewMatrixFromSlice([][]int64{{v}})
		c1, c2 := multiplyBoth(a)
		assert.Equal(t, v*v, c1.At(0, 0))
		assert.Equal(t, v*v, c2.At(0, 0))
	}
}

func TestIdentityProduct(t *testing.T) {
	n := 5
	a := NewMatrix(n)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
	}
	c1, c2 := multiplyBoth(a)
	assert.True(t, c1.Equal(a))
	assert.True(t, c2.Equal(a))
}

// TestWideAccumulator uses entries whose products and sums overflow int32.
func TestWideAccumulator(t *testing.T) {
	const n = 4
	const v = int64(1) << 20
	a := NewMatrix(n)
	for i := range a.Data {
		a.Data[i] = v
	}

	want := int64(n) * v * v
	require.Greater(t, want, int64(math.MaxInt32))
	require.Greater(t, v*v, int64(math.MaxInt32))

	c1, c2 := multiplyBoth(a)
	for i := range c1.Data {
		assert.Equal(t, want, c1.Data[i])
		assert.Equal(t, want, c2.Data[i])
	}

	// The same sum in an int32 accumulator wraps.
	var narrow int32
	x := int32(v)
	for k := 0; k < n; k++ {
		narrow += x * x
	}
	assert.NotEqual(t, want, int64(narrow))
}

// TestKernelsAgree checks both kernels against each other on many random
// inputs, including negative and large entries.
func TestKernelsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 60; trial++ {
		n := 1 + rng.Intn(40)
		a := NewMatrix(n)
		for i := range a.Data {
			a.Data[i] = rng.Int63n(1<<21) - 1<<20
		}

		c1, c2 := multiplyBoth(a)
		require.NoError(t, Verify(c1, c2), "trial %d n=%d", trial, n)
	}
}

func TestKernelsAgreeOnGeneratedInput(t *testing.T) {
	for _, n := range []int{1, 2, 3, 16, 33, 100} {
		t.Run(fmt.Sprintf("Size%d", n), func(t *testing.T) {
			a, b := NewMatrix(n), NewMatrix(n)
			Generate(a, b, rand.New(rand.NewSource(int64(n))))

			c1, c2 := NewMatrix(n), NewMatrix(n)
			MultiplyNaive(a, c1)
			MultiplyTransposed(a, b, c2)
			assert.NoError(t, Verify(c1, c2))
		})
	}
}

func TestKernelsDeterministic(t *testing.T) {
	n := 24
	a, b := NewMatrix(n), NewMatrix(n)
	Generate(a, b, rand.New(rand.NewSource(3)))

	for _, kernel := range Kernels {
		t.Run(kernel.String(), func(t *testing.T) {
			first, second := NewMatrix(n), NewMatrix(n)
			require.NoError(t, Multiply(kernel, a, b, first))
			require.NoError(t, Multiply(kernel, a, b, second))
			assert.True(t, first.Equal(second))
		})
	}
}

func TestMultiplyOverwritesOutput(t *testing.T) {
	a := NewMatrixFromSlice([][]int64{{1, 2}, {3, 4}})
	c := NewMatrixFromSlice([][]int64{{100, 100}, {100, 100}})
	require.NoError(t, Multiply(Naive, a, nil, c))
	assert.Equal(t, [][]int64{{7, 10}, {15, 22}}, c.To2D())
}

func TestMultiplyErrors(t *testing.T) {
	a := NewMatrix(3)

	err := Multiply(Naive, a, nil, NewMatrix(2))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = Multiply(TransposedB, a, NewMatrix(2), NewMatrix(3))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.NotPanics(t, func() {
		err = Multiply(TransposedB, a, nil, NewMatrix(3))
	})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	err = Multiply(Kernel(9), a, a, NewMatrix(3))
	assert.EqualError(t, err, "unknown kernel: 9")
}

func BenchmarkKernels(b *testing.B) {
	for _, n := range []int{64, 256, 512} {
		a, bt := NewMatrix(n), NewMatrix(n)
		Generate(a, bt, rand.New(rand.NewSource(1)))
		c := NewMatrix(n)

		for _, kernel := range Kernels {
			b.Run(fmt.Sprintf("%s/%d", kernel, n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = Multiply(kernel, a, bt, c)
				}
			})
		}
	}
}
