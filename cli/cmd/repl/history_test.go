package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"a0 * 2", modeEval},
		{"list", modeCtrl},
		{"a0 * 2", modeEval},
		{"gamma", modeEval},
		{"list", modeCtrl},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) error: %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"a0 * 2", modeEval},
		{"gamma", modeEval},
		{"list", modeCtrl},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "E:a0 * 2\nE:gamma\nC:list\n" {
		t.Errorf("file = %q", got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded = %v, want %v", got, want)
	}
}

func TestHistory_Entry(t *testing.T) {
	h := NewHistory("")

	_ = h.Add("  ", modeEval)
	_ = h.Add("x = 1", modeEval)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}

	if e, err := h.Entry(0); err != nil || e.Line != "x = 1" {
		t.Errorf("Entry(0) = %v, %v", e, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}
}

func TestDecodeEntry(t *testing.T) {
	tests := map[string]HistoryEntry{
		"E:a0":   {"a0", modeEval},
		"C:quit": {"quit", modeCtrl},
		"a0 + 1": {"a0 + 1", modeEval},
	}

	for line, want := range tests {
		if got := decodeEntry(line); got != want {
			t.Errorf("decodeEntry(%q) = %v, want %v", line, got, want)
		}
	}
}
