package varstroke

import "log/slog"

// StrokerOption configures a Stroker during creation.
//
// Example:
//
//	// Defaults: tolerance scale 0.5, 5000 iterations per segment side.
//	s, err := varstroke.NewStroker(varstroke.DefaultStroke())
//
//	// Tighter fit, and degrade unsupported caps and joins instead of failing.
//	s, err := varstroke.NewStroker(style,
//	    varstroke.WithToleranceScale(0.1),
//	    varstroke.WithStyleFallback(),
//	)
type StrokerOption func(*strokerOptions)

// strokerOptions holds optional configuration for Stroker creation.
type strokerOptions struct {
	toleranceScale float64
	maxIterations  int
	observer       func(Candidate)
	fallback       bool
	logger         *slog.Logger
}

// defaultOptions returns the default stroker options. Zero numeric values
// select the engine defaults.
func defaultOptions() strokerOptions {
	return strokerOptions{
		logger: Logger(),
	}
}

// WithToleranceScale sets the acceptance tolerance of each quadratic piece
// as a fraction of the largest distance weight of its range. Smaller values
// produce more pieces that fit the exact offset more closely.
// Non-positive values are ignored.
func WithToleranceScale(scale float64) StrokerOption {
	return func(o *strokerOptions) {
		if scale > 0 {
			o.toleranceScale = scale
		}
	}
}

// WithMaxIterations bounds the refinement loop of each segment side.
// When the bound is hit, the remaining ranges are emitted unrefined and
// Stats.Truncated is set. Non-positive values are ignored.
func WithMaxIterations(n int) StrokerOption {
	return func(o *strokerOptions) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithObserver registers a callback that receives every candidate
// approximation evaluated during refinement, accepted or not.
func WithObserver(fn func(Candidate)) StrokerOption {
	return func(o *strokerOptions) {
		o.observer = fn
	}
}

// WithStyleFallback makes unsupported caps degrade to butt and unsupported
// joins to miter, with a warning, instead of failing NewStroker.
func WithStyleFallback() StrokerOption {
	return func(o *strokerOptions) {
		o.fallback = true
	}
}

// WithLogger overrides the package logger for one stroker.
func WithLogger(l *slog.Logger) StrokerOption {
	return func(o *strokerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
