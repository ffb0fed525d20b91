package config

import "github.com/ardnew/qedcfg/pkg"

// Predefined errors (sentinel values).
var (
	ErrInvalidValue = pkg.NewError("invalid value")
	ErrInclude      = pkg.NewError("include failed")
)
