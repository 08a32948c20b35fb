package locality

import (
	"time"
)

// Timing is the outcome of one measured phase.
type Timing struct {
	Label   string
	Start   time.Time
	End     time.Time
	Elapsed time.Duration
}

// StartUnix returns the wall-clock start in Unix seconds.
func (t Timing) StartUnix() int64 { return t.Start.Unix() }

// EndUnix returns the wall-clock end in Unix seconds.
func (t Timing) EndUnix() int64 { return t.End.Unix() }

// Measure runs fn and records its wall-clock bounds. Elapsed uses the
// monotonic clock reading carried by time.Now.
func Measure(label string, fn func()) Timing {
	start := time.Now()
	fn()
	end := time.Now()
	return Timing{
		Label:   label,
		Start:   start,
		End:     end,
		Elapsed: end.Sub(start),
	}
}
