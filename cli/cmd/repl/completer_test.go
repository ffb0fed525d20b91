package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/log"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "gamma", 5, "gamma", 0, 5},
		{"after_plus", "a0 + ga", 7, "ga", 5, 7},
		{"after_minus", "a0-ga", 5, "ga", 3, 5},
		{"after_caret", "x^ga", 4, "ga", 2, 4},
		{"after_paren", "sqrt(ga", 7, "ga", 5, 7},
		{"after_comma", "max(a, ga", 9, "ga", 7, 9},
		{"assignment", "x = ga", 6, "ga", 4, 6},
		{"empty_at_boundary", "a0 * ", 5, "", 5, 5},
		{"mid_word", "gamma", 2, "gamma", 0, 5},
		{"cursor_past_end", "me", 10, "me", 0, 2},
		{"underscore", "photon_en", 9, "photon_en", 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		input string
		want  functionCall
	}{
		{"sqrt(", functionCall{"sqrt", 0, true}},
		{"max(a, b", functionCall{"max", 1, true}},
		{"max(sqrt(a), ", functionCall{"max", 1, true}},
		{"max(a, sqrt(b", functionCall{"sqrt", 0, true}},
		{"sqrt(a) + b", functionCall{}},
		{"(a + b", functionCall{}},
		{"a0 * 2", functionCall{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := detectFunctionCall(tt.input, len(tt.input)); got != tt.want {
				t.Errorf("detectFunctionCall(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	table, err := lang.Resolve(t.Context(), []lang.Definition{
		{Name: "initial_gamma", Source: "1000"},
	})
	if err != nil {
		t.Fatal(err)
	}

	session := NewSession(lang.NewCache(table), log.Logger{})
	if _, _, err := session.Eval(t.Context(), "gamma_field = 2"); err != nil {
		t.Fatal(err)
	}

	m := newModel(t.Context(), session, NewHistory(""), log.Logger{})

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
		none  bool
	}{
		{name: "constant", input: "2*initial_g", want: []string{"initial_gamma"}},
		{name: "field", input: "gamma_fi", want: []string{"gamma_field"}},
		{name: "function", input: "sqr", want: []string{"sqrt"}},
		{name: "unit", input: "1.55*Me", want: []string{"MeV"}},
		{name: "number", input: "1.5", none: true},
		{name: "boundary", input: "a0 + ", none: true},
		{name: "command", mode: modeCtrl, input: "uni", want: []string{"units"}},
		{name: "command_arg", mode: modeCtrl, input: "unset gam", want: []string{"gamma_field"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, end := m.computeMatches()
			if end != len(tt.input) {
				t.Errorf("word end = %d, want %d", end, len(tt.input))
			}

			if tt.none {
				if len(matches) != 0 {
					t.Errorf("matches = %v, want none", matches)
				}

				return
			}

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("matches %v missing %q", got, w)
				}
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	fns := lang.DefaultFunctions()

	for _, name := range []string{"sqrt", "max"} {
		fn := fns[name]
		if fn == nil {
			t.Fatalf("missing function %q", name)
		}

		if hint := renderSignatureHint(fn, 0); !strings.Contains(hint, name) {
			t.Errorf("hint for %s = %q", name, hint)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("empty bar = %q", got)
	}
}
