package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/log"
)

// Eval evaluates an expression, optionally against the constants of a
// configuration file.
type Eval struct {
	Expr []string `arg:"" help:"Expression to evaluate" name:"expr"`
	File string   `help:"Configuration file providing constants" short:"f" type:"existingfile"`
	Unit string   `help:"Express the result in this unit or constant" short:"u"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	table, err := e.table(ctx)
	if err != nil {
		return err
	}

	cache := lang.NewCache(table, lang.WithLogger(log.Default()))
	src := strings.Join(e.Expr, " ")

	k, err := cache.Kernel(ctx, src, nil)
	if err != nil {
		return err
	}

	v, err := k.Run(nil)
	if err != nil {
		return err
	}

	if e.Unit != "" {
		scale, ok := table.Lookup(e.Unit)
		if !ok || scale == 0 {
			unknown := ErrUnknownUnit.With(slog.String("unit", e.Unit))
			if s := lang.Suggest(e.Unit, table.Symbols()); len(s) > 0 {
				return unknown.Wrap(fmt.Errorf("did you mean %s?", strings.Join(s, ", ")))
			}

			return unknown
		}

		v /= scale
	}

	log.DebugContext(ctx, "evaluated",
		slog.String("expr", src),
		slog.String("lowered", k.Lowered()),
		slog.Float64("value", v))

	_, err = fmt.Fprintln(stdout, strconv.FormatFloat(v, 'g', -1, 64))

	return err
}

// table returns the constants of the configuration file, or an empty table
// of built-in units without one.
func (e *Eval) table(ctx context.Context) (*lang.Table, error) {
	if e.File == "" {
		return lang.Resolve(ctx, nil)
	}

	cfg, err := load(ctx, e.File)
	if err != nil {
		return nil, err
	}

	return cfg.Table(), nil
}
