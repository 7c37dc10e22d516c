package commander

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

type options struct {
	logger *log.Logger
	rng    *rand.Rand
}

type Option func(*options)

// WithLogger sets the logger used for debug output such as rating grids.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRand sets the random source of the random commander.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}
