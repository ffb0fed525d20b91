// Package log is the structured logger of qedcfg, a thin wrapper around
// [log/slog].
//
// A [Logger] is a value. Its zero value discards every record, so library
// packages accept one through a WithLogger option and log unconditionally:
//
//	table, err := lang.Resolve(ctx, defs, lang.WithLogger(logger))
//
// Loggers are built with [Make] and functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
// Records take [slog.Attr] values only:
//
//	logger.DebugContext(ctx, "constant resolved",
//		slog.String("name", name),
//		slog.Float64("value", v))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and carries per-phase detail such
// as cache lookups and kernel lowering. [LevelInfo], [LevelWarn] and
// [LevelError] follow slog.
//
// # Default Logger
//
// The package-level functions ([DebugContext], [Error], ...) write through
// [Default], which the command line configures once with [Config] before
// any command runs.
//
// # Output
//
// [FormatJSON] (default) and [FormatText] are supported, each with an
// optional colorized pretty handler ([WithPretty]). Timestamps use any
// named layout of the [time] package or a custom layout ([WithTimeLayout]).
package log
