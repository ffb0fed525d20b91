// Package profile starts optional runtime profiling for qedcfg.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Config.Start] always returns a no-op and [Modes] is
// empty. With the tag, profiles are written by [github.com/pkg/profile] and
// the HTTP handlers of [net/http/pprof] are registered on the default mux.
//
// # Modes
//
//   - allocs:    memory allocations (all)
//   - block:     blocking on synchronization
//   - clock:     wall clock
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap
//   - mem:       memory (sampled)
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Example
//
//	qedcfg --pprof-mode cpu check shot.yaml
//	go tool pprof -http=: ~/.cache/qedcfg/pprof/cpu.pprof
//
// Resolving a configuration is short-lived, so "trace" and "cpu" are the
// modes of interest when timing the per-particle kernels in the repl.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
