// Package cli contains the command line interface for qedcfg.
//
// # Commands
//
//	qedcfg check FILE...        resolve files and report every error
//	qedcfg resolve FILE         print the resolved configuration
//	qedcfg eval [-f FILE] EXPR  evaluate an expression
//	qedcfg units [DIMENSION]    list built-in constants and units
//	qedcfg repl [FILE]          evaluate expressions interactively
//	qedcfg init                 write the CLI configuration file
//
// Included configuration files are searched for in the directory of the
// including file, then each --include directory, then the directories
// listed in QEDCFG_PATH.
//
// # Configuration File
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory. Keys are flag names:
//
//	log-level: debug
//	log-format: text
//	include:
//	  - /opt/qed/common
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o qedcfg .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/qedcfg/pprof)
package cli
