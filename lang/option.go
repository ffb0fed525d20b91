package lang

import (
	"maps"

	"github.com/ardnew/qedcfg/log"
)

type options struct {
	logger    log.Logger
	functions Functions
}

// Option configures parsing, resolution, and compilation.
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{functions: DefaultFunctions()}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger receiving trace and debug records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFunctions adds fns to the function registry, replacing any built-in
// function of the same name.
func WithFunctions(fns ...*Function) Option {
	return func(o *options) {
		o.functions = maps.Clone(o.functions)

		for _, fn := range fns {
			o.functions[fn.Name] = fn
		}
	}
}
