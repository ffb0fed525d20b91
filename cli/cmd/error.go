package cmd

import "github.com/ardnew/qedcfg/pkg"

// Predefined errors (sentinel values).
var (
	ErrJSONMarshal = pkg.NewError("marshal JSON")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrReadInput   = pkg.NewError("read input")
	ErrCheck       = pkg.NewError("configuration check failed")
	ErrUnknownUnit = pkg.NewError("unknown unit")
)
