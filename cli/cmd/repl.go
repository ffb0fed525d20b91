package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/qedcfg/cli/cmd/repl"
	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/log"
)

// Repl starts an interactive expression evaluator.
type Repl struct {
	File    string `arg:"" help:"Configuration file providing constants" name:"file" optional:"" type:"existingfile"`
	NoCache bool   `help:"Do not persist input history"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cache, err := r.cache(ctx)
	if err != nil {
		return err
	}

	var dir string
	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoCache {
		dir = ktx.Model.Vars()[CacheIdentifier]
	}

	log.DebugContext(ctx, "repl",
		slog.String("file", r.File),
		slog.String("cache_dir", dir))

	return repl.Run(ctx, cache, dir, log.Default())
}

func (r *Repl) cache(ctx context.Context) (*lang.Cache, error) {
	if r.File == "" {
		table, err := lang.Resolve(ctx, nil)
		if err != nil {
			return nil, err
		}

		return lang.NewCache(table, lang.WithLogger(log.Default())), nil
	}

	cfg, err := load(ctx, r.File)
	if err != nil {
		return nil, err
	}

	return cfg.Cache(), nil
}
