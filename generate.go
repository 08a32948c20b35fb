package locality

import (
	"fmt"
	"math/rand"
	"time"
)

// MaxValue is the exclusive upper bound of generated entries.
const MaxValue = 100

// NewRand returns a random source for Generate. A zero seed is replaced with
// one derived from the current time; the seed actually used is returned so a
// run can be reproduced.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Generate fills a with uniform values in [0, MaxValue) and writes each value
// to its transposed position in b in the same step, so b[j][i] == a[i][j].
func Generate(a, b *Matrix, rng *rand.Rand) {
	if a.N != b.N {
		panic(fmt.Sprintf("generate: size mismatch %d != %d", a.N, b.N))
	}
	n := a.N
	for i := 0; i < n; i++ {
		row := a.Row(i)
		for j := 0; j < n; j++ {
			v := int64(rng.Intn(MaxValue))
			row[j] = v
			b.Data[j*n+i] = v
		}
	}
}
