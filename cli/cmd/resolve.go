package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Resolve prints the fully resolved configuration.
type Resolve struct {
	File   string `arg:"" help:"Configuration file or '-' for stdin" name:"file" default:"-"`
	Format string `help:"Output format" enum:"yaml,json" default:"yaml" short:"o"`
	Indent int    `help:"Indentation width" default:"2"`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg, err := load(ctx, r.File)
	if err != nil {
		return err
	}

	var out []byte

	switch r.Format {
	case "json":
		var buf bytes.Buffer

		enc := json.NewEncoder(&buf)
		enc.SetIndent("", strings.Repeat(" ", r.Indent))

		if err := enc.Encode(cfg); err != nil {
			return ErrJSONMarshal.With(slog.String("file", r.File)).Wrap(err)
		}

		out = buf.Bytes()

	default:
		out, err = yaml.MarshalWithOptions(cfg, yaml.Indent(r.Indent))
		if err != nil {
			return ErrYAMLMarshal.With(slog.String("file", r.File)).Wrap(err)
		}
	}

	_, err = fmt.Fprint(stdout, string(out))

	return err
}
