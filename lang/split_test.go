package lang

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		sep  rune
		want []string
	}{
		{"", ':', nil},
		{"x", ':', []string{"x"}},
		{"x:y:(auto; 0, 1)", ':', []string{"x", "y", "(auto; 0, 1)"}},
		{" a ; b ;", ';', []string{"a", "b", ""}},
		{"atan2(y, x), 2", ',', []string{"atan2(y, x)", "2"}},
	}

	for _, tt := range tests {
		if got := Split(tt.in, tt.sep); !slices.Equal(got, tt.want) {
			t.Errorf("Split(%q, %q) = %q, want %q", tt.in, tt.sep, got, tt.want)
		}
	}
}

func TestCutWord(t *testing.T) {
	tests := []struct {
		in, word      string
		before, after string
		found         bool
	}{
		{"theta in 0, max_theta", "in", "theta", "0, max_theta", true},
		{"min(a, b) in 1, 2", "in", "min(a, b)", "1, 2", true},
		{"inner * 2", "in", "inner * 2", "", false},
		{"f(x in y)", "in", "f(x in y)", "", false},
		{"in", "in", "", "", true},
	}

	for _, tt := range tests {
		before, after, found := CutWord(tt.in, tt.word)
		if before != tt.before || after != tt.after || found != tt.found {
			t.Errorf("CutWord(%q, %q) = %q, %q, %v", tt.in, tt.word, before, after, found)
		}
	}
}
