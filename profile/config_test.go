package profile

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		mode  string
		path  string
		quiet bool
	}{
		{"empty", nil, "", "", false},
		{"mode", []Option{WithMode("cpu")}, "cpu", "", false},
		{"all", []Option{WithPath("/tmp/p"), WithMode("heap"), WithQuiet(true)}, "heap", "/tmp/p", true},
		{"override", []Option{WithMode("cpu"), WithMode("trace")}, "trace", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, path, quiet := New(tt.opts...)()
			if mode != tt.mode || path != tt.path || quiet != tt.quiet {
				t.Errorf("New() = %q, %q, %v, want %q, %q, %v",
					mode, path, quiet, tt.mode, tt.path, tt.quiet)
			}
		})
	}
}

func TestStartWithoutMode(t *testing.T) {
	stop := New(WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}
