package bvh

import (
	"math"
	"runtime"

	"github.com/rs/zerolog"
)

// DefaultLeafSize is the leaf capacity used when Config.LeafSize is zero.
const DefaultLeafSize = 4

// Config controls index construction and the defaults of its parallel
// query helpers. Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// LeafSize is the maximum number of points stored in a leaf. Smaller
	// leaves give tighter bounds and deeper trees. Must be >= 1. Default: 4.
	LeafSize int

	// Metric is the distance used for building bounds and answering queries.
	// It must satisfy the triangle inequality. Built-in: EuclideanMetric,
	// ManhattanMetric, ChebyshevMetric, MinkowskiMetric (P >= 1).
	// Default: EuclideanMetric.
	Metric Metric

	// Workers is the goroutine count used by the *Parallel query helpers
	// when they are called with workers == 0. 0 means runtime.NumCPU().
	Workers int

	// Logger receives debug-level construction and query summaries.
	// nil disables logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		LeafSize: DefaultLeafSize,
		Metric:   EuclideanMetric{},
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.LeafSize == 0 {
		cfg.LeafSize = DefaultLeafSize
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.LeafSize < 1 {
		return invalidf("LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return invalidf("Workers must be >= 0, got %d", cfg.Workers)
	}
	if m, ok := cfg.Metric.(MinkowskiMetric); ok && !(m.P >= 1) {
		return invalidf("MinkowskiMetric P must be >= 1, got %v", m.P)
	}
	return nil
}

// validateMinDist rejects thresholds that are negative or not finite.
func validateMinDist(minDist float64) error {
	if math.IsNaN(minDist) || math.IsInf(minDist, 0) || minDist < 0 {
		return invalidf("minDistance must be finite and >= 0, got %v", minDist)
	}
	return nil
}
