package lang

import (
	"testing"
)

func BenchmarkEvaluate(b *testing.B) {
	tests := []struct {
		name string
		expr string
	}{
		{"literal", "42"},
		{"unit", "0.5 * micro"},
		{"chi", "2.*gamma*a0*(photon_energy/(me*c^2))"},
		{"functions", "sqrt(px^2 + py^2) / hypot(px, py) + atan2(py, px)"},
	}

	fields := Fields{
		"gamma": 3e4, "a0": 5, "photon_energy": 2.5e-19, "px": 3, "py": 4,
	}
	dynamic := []string{"gamma", "a0", "photon_energy", "px", "py"}

	for _, tt := range tests {
		e := MustParse(tt.expr)

		b.Run(tt.name+"/tree", func(b *testing.B) {
			scope := Layers{fields, Builtins()}

			for b.Loop() {
				if _, err := Eval(e.Root, scope); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(tt.name+"/kernel", func(b *testing.B) {
			k, err := Compile(b.Context(), e, nil, dynamic)
			if err != nil {
				b.Fatal(err)
			}

			for b.Loop() {
				if _, err := k.Run(fields); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
