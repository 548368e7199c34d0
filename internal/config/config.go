// Package config loads engine defaults from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/tone"
)

// Environment variable names.
const (
	EnvK            = "UNDERTONE_K"
	EnvIterations   = "UNDERTONE_ITERATIONS"
	EnvWorkers      = "UNDERTONE_WORKERS"
	EnvCalibration  = "UNDERTONE_CALIBRATION"
	EnvMaxDimension = "UNDERTONE_MAX_DIMENSION"
	EnvMaxSamples   = "UNDERTONE_MAX_SAMPLES"
	EnvLogLevel     = "UNDERTONE_LOG_LEVEL"
)

// DefaultEnvFile is read by Load when present in the working directory.
const DefaultEnvFile = ".env"

// Config holds the defaults applied to the CLI flags.
type Config struct {
	K            int
	Iterations   int
	Workers      int
	Calibration  string
	MaxDimension int
	MaxSamples   int
	LogLevel     string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		K:            colour.DefaultClusters,
		Iterations:   colour.DefaultIterations,
		Workers:      0,
		Calibration:  tone.DefaultCalibrationName,
		MaxDimension: 256,
		MaxSamples:   10000,
		LogLevel:     "warn",
	}
}

// Load reads DefaultEnvFile if it exists, then the process environment.
func Load() (Config, error) {
	return LoadFiles(DefaultEnvFile)
}

// LoadFiles reads the given .env files (missing files are skipped) and the
// process environment. Process variables take precedence over file values, and
// earlier files over later ones. The process environment is not modified.
func LoadFiles(files ...string) (Config, error) {
	fileEnv := map[string]string{}
	for i := len(files) - 1; i >= 0; i-- {
		if _, err := os.Stat(files[i]); errors.Is(err, os.ErrNotExist) {
			continue
		}
		values, err := godotenv.Read(files[i])
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", files[i], err)
		}
		for k, v := range values {
			fileEnv[k] = v
		}
	}

	env := envLookup{file: fileEnv}
	def := Default()

	var errs []error
	cfg := Config{
		K:            env.getInt(EnvK, def.K, &errs),
		Iterations:   env.getInt(EnvIterations, def.Iterations, &errs),
		Workers:      env.getInt(EnvWorkers, def.Workers, &errs),
		Calibration:  env.getString(EnvCalibration, def.Calibration),
		MaxDimension: env.getInt(EnvMaxDimension, def.MaxDimension, &errs),
		MaxSamples:   env.getInt(EnvMaxSamples, def.MaxSamples, &errs),
		LogLevel:     strings.ToLower(env.getString(EnvLogLevel, def.LogLevel)),
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("k must be > 0, got %d", c.K)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be > 0, got %d", c.Iterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max dimension must be >= 0, got %d", c.MaxDimension)
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("max samples must be >= 0, got %d", c.MaxSamples)
	}
	if _, err := tone.ParseCalibration(c.Calibration); err != nil {
		return err
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

type envLookup struct {
	file map[string]string
}

func (e envLookup) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e.file[key]
}

func (e envLookup) getString(key, fallback string) string {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return fallback
	}
	return v
}

func (e envLookup) getInt(key string, fallback int, errs *[]error) int {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}
