package repl

import "github.com/ardnew/qedcfg/pkg"

// Predefined errors (sentinel values).
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrAssign      = pkg.NewError("invalid assignment")
	ErrCommand     = pkg.NewError("unknown command")
)
