package document

import (
	"errors"
	"slices"
	"testing"
)

const hclDoc = `include = ["common.yaml"]

constants {
  a0         = 5
  wavelength = 0.8 * micro
  omega      = "2 pi c / wavelength"
}

laser {
  envelope     = "gaussian"
  polarization = "circular"
}

stats "electron" {
  lines = ["mean gamma", "maximum energy [GeV]"]
}

stats "photon" {
  lines = ["total number"]
}
`

func TestDecodeHCL(t *testing.T) {
	root, err := DecodeHCL([]byte(hclDoc), "doc.hcl")
	if err != nil {
		t.Fatalf("DecodeHCL error: %v", err)
	}

	if want := []string{"include", "constants", "laser", "stats"}; !slices.Equal(root.Keys, want) {
		t.Errorf("keys = %v, want %v", root.Keys, want)
	}

	include, _ := root.Get("include")
	if include.Kind != Sequence || include.Len() != 1 || include.Items[0].Value != "common.yaml" {
		t.Errorf("include = %+v", include)
	}

	constants, _ := root.Get("constants")

	tests := []struct {
		name string
		key  string
		want any
	}{
		{"literal", "a0", int64(5)},
		{"expression", "wavelength", "0.8 * micro"},
		{"quoted", "omega", "2 pi c / wavelength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := constants.Get(tt.key)
			if !ok {
				t.Fatalf("missing %s", tt.key)
			}

			if n.Value != tt.want {
				t.Errorf("value = %#v, want %#v", n.Value, tt.want)
			}
		})
	}

	if n, _ := constants.Get("wavelength"); n.Line != 5 {
		t.Errorf("wavelength line = %d, want 5", n.Line)
	}

	stats, _ := root.Get("stats")
	if want := []string{"electron", "photon"}; !slices.Equal(stats.Keys, want) {
		t.Errorf("stats keys = %v, want %v", stats.Keys, want)
	}

	electron, _ := stats.Get("electron")
	lines, _ := electron.Get("lines")

	if lines.Len() != 2 || lines.Items[1].Value != "maximum energy [GeV]" {
		t.Errorf("electron lines = %+v", lines)
	}
}

func TestDecodeHCLError(t *testing.T) {
	_, err := DecodeHCL([]byte("laser {\n  a0 = \n"), "bad.hcl")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}
}
