package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	src := `
log-level: debug
log_pretty: false
indent: 4
scale: 0.5
include:
  - /opt/qed
  - 7
`

	r, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	cfg := r.(config)

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"indent", "4"},
		{"scale", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	include, _ := cfg["include"].([]any)
	if !slices.Equal(include, []any{"/opt/qed", "7"}) {
		t.Errorf("include = %#v", cfg["include"])
	}

	if v, _ := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "missing"}}); v != nil {
		t.Errorf("missing flag resolved to %v", v)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, src := range []string{"", "- a\n- b\n", "key: [unterminated"} {
		r, err := resolve(strings.NewReader(src))
		if err != nil {
			t.Fatalf("resolve(%q) error: %v", src, err)
		}

		if len(r.(config)) != 0 {
			t.Errorf("resolve(%q) = %v, want empty", src, r)
		}
	}
}

func TestKongConfiguration(t *testing.T) {
	var cli struct {
		LogLevel string   `default:"info"`
		Include  []string `short:"I"`
	}

	r, err := resolve(strings.NewReader("log_level: warn\ninclude: [a, b]\n"))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(r))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(nil); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if cli.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cli.LogLevel)
	}

	if !slices.Equal(cli.Include, []string{"a", "b"}) {
		t.Errorf("Include = %v, want [a b]", cli.Include)
	}
}
