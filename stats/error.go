package stats

import "github.com/ardnew/qedcfg/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownVariable = pkg.NewError("unknown variable")
	ErrStatSpec        = pkg.NewError("invalid statistics entry")
)
