package lang

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/qedcfg/log"
)

// constantFolder replaces identifiers bound to constants with their values
// before expr-lang type checks the program, leaving only dynamic fields in
// the environment.
type constantFolder struct {
	consts map[string]float64
	logger log.Logger
}

// Visit implements ast.Visitor for constantFolder.
func (p *constantFolder) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}

	name, ok := strings.CutPrefix(ident.Value, identPrefix)
	if !ok {
		return
	}

	v, ok := p.consts[name]
	if !ok {
		return
	}

	ast.Patch(node, &ast.FloatNode{Value: v})

	p.logger.Trace("fold constant",
		slog.String("name", name),
		slog.Float64("value", v))
}
