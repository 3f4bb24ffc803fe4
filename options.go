package lshdb

import "github.com/annlab/lshdb/projection"

// Strategy selects how sign bits are assembled into a bin identifier.
// Re-exported from the projection package for convenience.
type Strategy = projection.Strategy

const (
	// StrategyConcatenate packs one sign bit per hyperplane (2^NB bins).
	StrategyConcatenate = projection.Concatenate
	// StrategyTree descends a perfect binary tree of hyperplanes
	// (2^log2(NB) bins, ~log2(NB) hyperplane evaluations per query).
	StrategyTree = projection.Tree
)

// Options contains configuration options for index construction.
type Options struct {
	// NumHyperplanes is the number of random hyperplane normals (NB).
	// Under StrategyConcatenate it must be smaller than the 64-bit word
	// width, and each extra hyperplane doubles the bin table, so keep it
	// modest.
	NumHyperplanes int

	// Dimension pins the expected vector dimensionality. When zero it is
	// inferred from the first corpus entry.
	Dimension int

	// Strategy selects the hash-assembly strategy.
	Strategy Strategy

	// Hyperplanes supplies a preset hyperplane set instead of sampling one
	// from the RNG. Useful for reproducing an index or for externally
	// trained planes. Overrides NumHyperplanes when set; the planes are
	// retained by reference and must not be mutated afterwards.
	Hyperplanes [][]float32

	// Logger configures structured logging for build and query operations.
	// Defaults to the no-op logger.
	Logger *Logger
}

// DefaultOptions contains the default configuration options for index
// construction.
var DefaultOptions = Options{
	NumHyperplanes: 8,
	Strategy:       StrategyConcatenate,
}

// Option mutates Options during Build.
type Option func(*Options)

// WithNumHyperplanes sets the number of hyperplanes (NB).
func WithNumHyperplanes(n int) Option {
	return func(o *Options) {
		o.NumHyperplanes = n
	}
}

// WithDimension pins the expected vector dimensionality.
func WithDimension(dim int) Option {
	return func(o *Options) {
		o.Dimension = dim
	}
}

// WithStrategy selects the hash-assembly strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithHyperplanes supplies a preset hyperplane set instead of sampling one.
func WithHyperplanes(planes [][]float32) Option {
	return func(o *Options) {
		o.Hyperplanes = planes
	}
}

// WithLogger configures structured logging. Pass nil to keep the no-op
// default.
func WithLogger(logger *Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func applyOptions(optFns []Option) Options {
	o := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = NoopLogger()
	}
	return o
}
