// Package cmd provides the qedcfg subcommands: check, resolve, eval, units,
// repl and init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the CLI configuration file written by [Init].
	ConfigIdentifier = "config"
)
