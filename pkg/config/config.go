package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	locality "github.com/tektwister/ai_engineering/cache_locality"
)

// DefaultMaxMemoryBytes caps the four benchmark matrices at 1 GiB.
const DefaultMaxMemoryBytes int64 = 1 << 30

// Environment variables read by Load.
const (
	EnvSize      = "BENCH_SIZE"
	EnvSeed      = "BENCH_SEED"
	EnvMaxMemory = "BENCH_MAX_MEMORY"
	EnvReference = "BENCH_REFERENCE"
	EnvLogLevel  = "BENCH_LOG_LEVEL"
)

// BenchConfig holds the configuration for a benchmark run.
type BenchConfig struct {
	Size           int
	Seed           int64 // 0 picks a time-derived seed
	MaxMemoryBytes int64 // <= 0 disables the budget check
	Reference      bool
	LogLevel       string
}

// Default returns the configuration used when nothing is set.
func Default() *BenchConfig {
	return &BenchConfig{
		Size:           locality.DefaultSize,
		MaxMemoryBytes: DefaultMaxMemoryBytes,
		LogLevel:       "info",
	}
}

// Load loads the benchmark configuration from environment variables.
// It attempts to find a .env file in the current or parent directories.
// Variables already present in the environment take precedence over .env.
func Load() (*BenchConfig, error) {
	_ = loadEnvFile()

	cfg := Default()
	var err error
	if cfg.Size, err = intEnv(EnvSize, cfg.Size); err != nil {
		return nil, err
	}
	if cfg.Seed, err = int64Env(EnvSeed, cfg.Seed); err != nil {
		return nil, err
	}
	if cfg.MaxMemoryBytes, err = int64Env(EnvMaxMemory, cfg.MaxMemoryBytes); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvReference); v != "" {
		if cfg.Reference, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvReference, err)
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// Validate checks the size and that the matrices fit the memory budget.
func (c *BenchConfig) Validate() error {
	return locality.CheckBudget(c.Size, c.MaxMemoryBytes)
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func int64Env(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// loadEnvFile attempts to look up until it finds a .env file
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	// Look up to 5 levels
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}
