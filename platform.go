package locality

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Platform describes the machine a benchmark ran on.
type Platform struct {
	GOOS      string
	GOARCH    string
	NumCPU    int
	GoVersion string
	Features  []string
}

// DetectPlatform reports the OS, architecture and the vector extensions that
// x/sys/cpu detected. Results differ between machines, so benchmark numbers
// should be read alongside it.
func DetectPlatform() Platform {
	p := Platform{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add := func(ok bool, name string) {
			if ok {
				p.Features = append(p.Features, name)
			}
		}
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		// ASIMD is mandatory on ARMv8.
		if cpu.ARM64.HasASIMD {
			p.Features = append(p.Features, "asimd")
		}
		if cpu.ARM64.HasSVE {
			p.Features = append(p.Features, "sve")
		}
	}
	return p
}

// FeatureString joins the detected features, or returns "none".
func (p Platform) FeatureString() string {
	if len(p.Features) == 0 {
		return "none"
	}
	return strings.Join(p.Features, ",")
}
