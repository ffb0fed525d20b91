package lang

import (
	"errors"
	"sync"
	"testing"
)

func TestCache(t *testing.T) {
	c := NewCache(nil)

	k1, err := c.Kernel(t.Context(), "energy / MeV", particleFields)
	if err != nil {
		t.Fatalf("Kernel error: %v", err)
	}

	k2, err := c.Kernel(t.Context(), " energy / MeV ", particleFields)
	if err != nil {
		t.Fatalf("Kernel error: %v", err)
	}

	if k1 != k2 {
		t.Error("equivalent sources should share a kernel")
	}

	k3, err := c.Kernel(t.Context(), "energy / MeV", []string{"energy"})
	if err != nil {
		t.Fatalf("Kernel error: %v", err)
	}

	if k3 == k1 {
		t.Error("different field sets should not share a kernel")
	}

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestCache_Errors(t *testing.T) {
	c := NewCache(nil)

	for range 2 {
		if _, err := c.Kernel(t.Context(), "1 +", nil); !errors.Is(err, ErrSyntax) {
			t.Errorf("error = %v, want syntax error", err)
		}
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		kernels = map[*Kernel]bool{}
	)

	for range 32 {
		wg.Go(func() {
			k, err := c.Kernel(t.Context(), "gamma * me * c^2", particleFields)
			if err != nil {
				t.Errorf("Kernel error: %v", err)

				return
			}

			mu.Lock()
			kernels[k] = true
			mu.Unlock()
		})
	}

	wg.Wait()

	if len(kernels) != 1 {
		t.Errorf("compiled %d kernels, want 1", len(kernels))
	}
}
