package suffixtree

import "github.com/rs/zerolog"

type Option func(*options)

type options struct {
	logger   zerolog.Logger
	capacity int
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithLogger sets the logger used while sequences are registered.
// Registration is logged at debug level, edge splits at trace level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCapacity pre-sizes the node arena. A sequence of length n needs at
// most 2n nodes, and the arena never grows past MaxNodes.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
