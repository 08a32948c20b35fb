package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	locality "github.com/tektwister/ai_engineering/cache_locality"
	"github.com/tektwister/ai_engineering/cache_locality/pkg/config"
)

const (
	exitOK       = 0
	exitConfig   = 1
	exitMismatch = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return exitConfig
	}

	// Parse command-line flags; they override the environment.
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.IntVar(&cfg.Size, "size", cfg.Size, "Matrix size (NxN)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = derive from time)")
	fs.Int64Var(&cfg.MaxMemoryBytes, "max-memory", cfg.MaxMemoryBytes, "Memory budget in bytes for all four matrices (0 = unlimited)")
	fs.BoolVar(&cfg.Reference, "reference", cfg.Reference, "Cross-check the naive result against gonum")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	quiet := fs.Bool("quiet", false, "Only log warnings and errors")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}

	logger := newLogger(stdout, cfg.LogLevel, *quiet)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return exitCode(err)
	}

	platform := locality.DetectPlatform()
	fmt.Fprintln(stdout, "Let's have some fun with matrix multiplication.")
	fmt.Fprintf(stdout, "%s/%s | CPUs: %d | %s | features: %s\n",
		platform.GOOS, platform.GOARCH, platform.NumCPU, platform.GoVersion, platform.FeatureString())

	ws, err := locality.NewWorkspace(cfg.Size, cfg.MaxMemoryBytes)
	if err != nil {
		logger.Error().Err(err).Msg("allocation refused")
		return exitCode(err)
	}

	rng, seed := locality.NewRand(cfg.Seed)
	logger.Info().Int("size", cfg.Size).Int64("seed", seed).Msg("starting run")

	runner := locality.NewRunner(stdout, logger)
	runner.Reference = cfg.Reference
	report, err := runner.Run(ws, rng, seed)

	fmt.Fprintln(stdout)
	locality.PrintReport(stdout, report)
	return finish(stdout, logger, err)
}

// finish prints the verdict for a completed run and returns the exit code.
func finish(w io.Writer, logger zerolog.Logger, err error) int {
	var mismatch *locality.MismatchError
	var refErr *locality.ReferenceError
	switch {
	case errors.As(err, &mismatch):
		fmt.Fprintf(w, "CRASH BURN\n %d %d\n", mismatch.Naive, mismatch.Transposed)
	case errors.As(err, &refErr):
		fmt.Fprintf(w, "REFERENCE MISMATCH at (%d,%d)\n kernel %d gonum %d\n",
			refErr.Row, refErr.Col, refErr.Got, refErr.Reference)
	case err != nil:
		logger.Error().Err(err).Msg("run failed")
	default:
		fmt.Fprintln(w, "Results match.")
	}
	return exitCode(err)
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	var mismatch *locality.MismatchError
	var refErr *locality.ReferenceError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &mismatch), errors.As(err, &refErr):
		return exitMismatch
	default:
		return exitConfig
	}
}

func newLogger(w io.Writer, level string, quiet bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if quiet && lvl < zerolog.WarnLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
