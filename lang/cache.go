package lang

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Cache memoizes parsed and compiled kernels for one constant [Table].
//
// Configurations repeat the same short expressions many times (an axis
// variable per output, a weight per statistic), so each distinct source and
// dynamic field set is parsed and compiled once. The zero Cache is not
// usable; create one with [NewCache]. A Cache is safe for concurrent use.
type Cache struct {
	table   *Table
	opts    []Option
	entries sync.Map // key -> *entry
}

// entry tracks the compilation state of one cache key.
type entry struct {
	once   sync.Once
	kernel *Kernel
	err    error
}

// NewCache returns an empty cache compiling against table.
func NewCache(table *Table, opts ...Option) *Cache {
	return &Cache{table: table, opts: opts}
}

// Table returns the constant table kernels are compiled against.
func (c *Cache) Table() *Table { return c.table }

// Kernel parses and compiles src, or returns the kernel compiled by an
// earlier call with the same source and fields. Errors are cached too.
func (c *Cache) Kernel(ctx context.Context, src string, fields []string) (*Kernel, error) {
	key := strings.TrimSpace(src) + "\x00" + strings.Join(fields, ",")

	value, hit := c.entries.LoadOrStore(key, new(entry))
	e := value.(*entry)

	makeOptions(c.opts...).logger.TraceContext(ctx, "cache lookup",
		slog.String("source", src),
		slog.Bool("cache_hit", hit))

	e.once.Do(func() {
		expr, err := Parse(ctx, src, c.opts...)
		if err != nil {
			e.err = err

			return
		}

		e.kernel, e.err = Compile(ctx, expr, c.table, fields, c.opts...)
	})

	return e.kernel, e.err
}

// Len returns the number of distinct cached entries.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Clear removes every cached entry.
func (c *Cache) Clear() { c.entries.Clear() }
