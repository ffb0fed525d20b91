package output

import (
	"slices"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/log"
	"github.com/ardnew/qedcfg/stats"
)

type options struct {
	logger log.Logger
	cache  *lang.Cache
	fields []string
	lang   []lang.Option
	bins   int
}

// Option configures [Compile].
type Option func(*options)

func makeOptions(table *lang.Table, opts ...Option) options {
	o := options{fields: stats.FieldNames(), bins: DefaultBins}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	slices.Sort(o.fields)
	o.fields = slices.Compact(o.fields)

	if o.cache == nil || o.cache.Table() != table {
		o.cache = lang.NewCache(table, append(o.lang, lang.WithLogger(o.logger))...)
	}

	return o
}

// WithLogger sets the logger receiving trace and debug records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCache compiles expressions through c, sharing kernels between
// entries. It is ignored unless c compiles against the same table.
func WithCache(c *lang.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithFields adds dynamic fields to the built-in set.
func WithFields(names ...string) Option {
	return func(o *options) { o.fields = append(o.fields, names...) }
}

// WithLangOptions passes opts to the expression parser and compiler.
func WithLangOptions(opts ...lang.Option) Option {
	return func(o *options) { o.lang = append(o.lang, opts...) }
}

// WithBins sets the bin count of entries without a bins clause.
func WithBins(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bins = n
		}
	}
}
