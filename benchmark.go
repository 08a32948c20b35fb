package locality

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSize is the matrix dimension used when none is configured.
const DefaultSize = 1200

// Workspace owns the four matrices of one run. They are allocated once and
// reused by every stage.
type Workspace struct {
	A  *Matrix // base matrix
	B  *Matrix // transpose of A
	C1 *Matrix // naive result
	C2 *Matrix // transposed-operand result
}

// RequiredBytes returns the memory needed by a Workspace of size n.
func RequiredBytes(n int) int64 {
	return 4 * Bytes(n)
}

// MaxSize is the largest dimension a Workspace accepts. Above it
// RequiredBytes would overflow int64 long before memory runs out.
const MaxSize = 1 << 28

// CheckBudget validates n and, when maxBytes is positive, that a Workspace
// of size n fits into maxBytes.
func CheckBudget(n int, maxBytes int64) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	// n*n must also fit an int on 32-bit platforms.
	if n > MaxSize || n > math.MaxInt/n {
		return fmt.Errorf("%w: %dx%d is not addressable", ErrMemoryBudget, n, n)
	}
	if maxBytes > 0 && RequiredBytes(n) > maxBytes {
		return fmt.Errorf("%w: %dx%d needs %d bytes, budget %d",
			ErrMemoryBudget, n, n, RequiredBytes(n), maxBytes)
	}
	return nil
}

// NewWorkspace allocates four N×N matrices after checking n against
// maxBytes. A non-positive maxBytes disables the budget check.
func NewWorkspace(n int, maxBytes int64) (*Workspace, error) {
	if err := CheckBudget(n, maxBytes); err != nil {
		return nil, err
	}
	return &Workspace{
		A:  NewMatrix(n),
		B:  NewMatrix(n),
		C1: NewMatrix(n),
		C2: NewMatrix(n),
	}, nil
}

// Size returns the matrix dimension.
func (w *Workspace) Size() int {
	return w.A.N
}

// Report holds the outcome of a single benchmark run.
type Report struct {
	Size       int
	Seed       int64
	Generate   Timing
	Naive      Timing
	Transposed Timing
	// Verified is true when C1 and C2 matched element for element.
	Verified bool
	// Reference is true when C1 was also checked against gonum.
	Reference bool
}

// GOPS returns billions of integer operations per second for an N×N product
// that took d. A product needs 2N³ operations (N³ multiplies, N³ adds).
func GOPS(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	ops := 2.0 * float64(n) * float64(n) * float64(n)
	return ops / d.Seconds() / 1e9
}

// Speedup returns how many times faster the transposed kernel ran.
func (r *Report) Speedup() float64 {
	if r.Transposed.Elapsed <= 0 {
		return 0
	}
	return float64(r.Naive.Elapsed) / float64(r.Transposed.Elapsed)
}

// Runner executes the generate, multiply and verify stages in order.
type Runner struct {
	// Out receives the phase headings and timestamps. Nil discards them.
	Out io.Writer
	// Logger receives structured phase events.
	Logger zerolog.Logger
	// Reference enables the gonum cross-check of the naive result.
	Reference bool
}

// NewRunner returns a Runner writing progress to out.
func NewRunner(out io.Writer, logger zerolog.Logger) *Runner {
	return &Runner{Out: out, Logger: logger}
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

// Run fills ws from rng, multiplies with both kernels, and verifies the
// results. The report is returned even when verification fails so timings
// can still be printed; the error is then a *MismatchError, or a
// *ReferenceError when the gonum cross-check disagrees.
func (r *Runner) Run(ws *Workspace, rng *rand.Rand, seed int64) (*Report, error) {
	n := ws.Size()
	report := &Report{Size: n, Seed: seed}

	report.Generate = Measure("generate", func() {
		Generate(ws.A, ws.B, rng)
	})
	r.Logger.Debug().
		Int("size", n).
		Int64("seed", seed).
		Dur("elapsed", report.Generate.Elapsed).
		Msg("matrices generated")

	report.Naive = r.phase("calculate matrix X matrix", Naive, func() {
		MultiplyNaive(ws.A, ws.C1)
	})
	report.Transposed = r.phase("calculate matrix X matrixTurned", TransposedB, func() {
		MultiplyTransposed(ws.A, ws.B, ws.C2)
	})

	if err := Verify(ws.C1, ws.C2); err != nil {
		r.Logger.Error().Err(err).Msg("verification failed")
		return report, err
	}
	report.Verified = true
	r.Logger.Debug().Int("size", n).Msg("results verified")

	if r.Reference {
		err := ReferenceCheck(ws.A, ws.C1)
		switch {
		case errors.Is(err, ErrReferenceInexact):
			r.Logger.Warn().Err(err).Msg("reference check skipped")
		case err != nil:
			r.Logger.Error().Err(err).Msg("reference check failed")
			return report, fmt.Errorf("reference check: %w", err)
		default:
			report.Reference = true
			r.Logger.Debug().Msg("reference check passed")
		}
	}
	return report, nil
}

func (r *Runner) phase(heading string, kernel Kernel, fn func()) Timing {
	r.printf("\n\n%s\n", heading)
	r.printf("Timestamp: %d\n", time.Now().Unix())
	t := Measure(kernel.String(), fn)
	r.printf("Timestamp: %d\n", t.EndUnix())
	r.Logger.Info().
		Str("kernel", kernel.String()).
		Int64("start_unix", t.StartUnix()).
		Int64("end_unix", t.EndUnix()).
		Dur("elapsed", t.Elapsed).
		Msg("phase complete")
	return t
}

// PrintReport prints the report in a formatted table.
func PrintReport(w io.Writer, r *Report) {
	fmt.Fprintln(w, "┌──────────────────┬─────────────┬──────────────┬──────────────┐")
	fmt.Fprintln(w, "│ Kernel           │ Size        │ Time         │ GOPS         │")
	fmt.Fprintln(w, "├──────────────────┼─────────────┼──────────────┼──────────────┤")
	for _, t := range []Timing{r.Naive, r.Transposed} {
		fmt.Fprintf(w, "│ %-16s │ %5dx%-5d │ %12v │ %10.2f   │\n",
			t.Label, r.Size, r.Size, t.Elapsed.Round(time.Microsecond), GOPS(r.Size, t.Elapsed))
	}
	fmt.Fprintln(w, "└──────────────────┴─────────────┴──────────────┴──────────────┘")
	fmt.Fprintf(w, "Speedup of %s over %s: %.2fx\n", TransposedB, Naive, r.Speedup())
}
