package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"a.yaml": "constants:\n  a0: 2\n",
		"b.yml":  "constants:\n  a0: 3\n",
		"c.hcl":  "constants {\n  a0 = 4\n}\n",
		"d.toml": "a0 = 5\n",
	}

	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		file    string
		want    int64
		wantErr error
	}{
		{"a.yaml", 2, nil},
		{"b.yml", 3, nil},
		{"c.hcl", 4, nil},
		{"d.toml", 0, ErrUnsupported},
		{"missing.yaml", 0, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			root, err := Load(filepath.Join(dir, tt.file))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Load error: %v", err)
			}

			constants, _ := root.Get("constants")
			if n, _ := constants.Get("a0"); n == nil || n.Value != tt.want {
				t.Errorf("a0 = %v, want %d", n, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	target := filepath.Join(second, "common.yaml")
	if err := os.WriteFile(target, []byte("constants: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Find("common.yaml", []string{first, second})
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}

	if got != target {
		t.Errorf("Find = %q, want %q", got, target)
	}

	if got, err := Find(target, nil); err != nil || got != target {
		t.Errorf("Find(abs) = %q, %v", got, err)
	}

	if _, err := Find("absent.yaml", []string{first}); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
