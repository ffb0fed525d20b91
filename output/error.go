package output

import (
	"github.com/ardnew/qedcfg/pkg"
	"github.com/ardnew/qedcfg/stats"
)

// Predefined errors (sentinel values).
var (
	ErrAxisSpec = pkg.NewError("invalid axis specification")

	// ErrUnknownVariable reports a name that is neither a dynamic field nor
	// a resolvable constant.
	ErrUnknownVariable = stats.ErrUnknownVariable
)
