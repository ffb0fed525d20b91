package lang

import "github.com/ardnew/qedcfg/pkg"

// Predefined errors (sentinel values).
var (
	ErrSyntax           = pkg.NewError("syntax error")
	ErrUndefinedSymbol  = pkg.NewError("undefined symbol")
	ErrCyclicDependency = pkg.NewError("cyclic dependency")
	ErrSymbolCollision  = pkg.NewError("symbol collision")
	ErrDomain           = pkg.NewError("domain error")
	ErrDivisionByZero   = pkg.NewError("division by zero")
	ErrCompile          = pkg.NewError("expression compilation failed")
	ErrEvaluate         = pkg.NewError("expression evaluation failed")
)
