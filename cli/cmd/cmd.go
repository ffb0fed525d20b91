package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/qedcfg/config"
	"github.com/ardnew/qedcfg/document"
	"github.com/ardnew/qedcfg/log"
	"github.com/ardnew/qedcfg/pkg"
)

// stdinSource names standard input as a configuration source.
const stdinSource = "-"

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type includeKey struct{}

// WithIncludes returns a new context.Context carrying the directories
// searched for included configuration files.
func WithIncludes(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, includeKey{}, dirs)
}

func includesFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(includeKey{}).([]string)

	return dirs
}

// Standard streams, replaced by tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// decode reads the document at path, or YAML from standard input when path
// is "-". It also returns the search path for files path includes: the
// directory of path, then the include directories in ctx and the
// environment.
func decode(ctx context.Context, path string) (*document.Node, []string, error) {
	if path == stdinSource || path == "" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, ErrReadInput.With(slog.String("file", "<stdin>")).Wrap(err)
		}

		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}

		root, err := document.DecodeYAML(src, "<stdin>")

		return root, pkg.SearchPath(append([]string{dir}, includesFrom(ctx)...)...), err
	}

	root, err := document.Load(path)

	return root, pkg.SearchPath(append([]string{filepath.Dir(path)}, includesFrom(ctx)...)...), err
}

// load decodes and resolves the configuration at path.
func load(ctx context.Context, path string) (*config.ResolvedConfig, error) {
	root, search, err := decode(ctx, path)
	if err != nil {
		return nil, err
	}

	log.TraceContext(ctx, "document decoded",
		slog.String("file", path),
		slog.Any("search_path", search))

	return config.Resolve(ctx, root,
		config.WithLogger(log.Default()),
		config.WithSearchPath(search...))
}
