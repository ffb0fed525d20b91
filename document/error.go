package document

import "github.com/ardnew/qedcfg/pkg"

// Predefined errors (sentinel values).
var (
	ErrDecode      = pkg.NewError("decode document")
	ErrNotFound    = pkg.NewError("document not found")
	ErrUnsupported = pkg.NewError("unsupported document format")
)
