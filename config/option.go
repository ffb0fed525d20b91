package config

import (
	"github.com/ardnew/qedcfg/document"
	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/log"
)

// Loader locates and decodes an included document.
type Loader func(name string, searchPath []string) (*document.Node, error)

type options struct {
	logger     log.Logger
	loader     Loader
	searchPath []string
	fields     []string
	lang       []lang.Option
}

// Option configures [Resolve].
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{loader: LoadFile}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// LoadFile finds name on searchPath and decodes it by extension.
func LoadFile(name string, searchPath []string) (*document.Node, error) {
	path, err := document.Find(name, searchPath)
	if err != nil {
		return nil, err
	}

	return document.Load(path)
}

// WithLogger sets the logger receiving trace and debug records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLoader replaces the loader of included documents.
func WithLoader(fn Loader) Option {
	return func(o *options) {
		if fn != nil {
			o.loader = fn
		}
	}
}

// WithSearchPath appends dirs to the directories searched for includes.
func WithSearchPath(dirs ...string) Option {
	return func(o *options) { o.searchPath = append(o.searchPath, dirs...) }
}

// WithFields adds dynamic fields available to stats and output entries.
func WithFields(names ...string) Option {
	return func(o *options) { o.fields = append(o.fields, names...) }
}

// WithLangOptions passes opts to the expression parser and compiler.
func WithLangOptions(opts ...lang.Option) Option {
	return func(o *options) { o.lang = append(o.lang, opts...) }
}
