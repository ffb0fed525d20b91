package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/qedcfg/config"
	"github.com/ardnew/qedcfg/log"
	"github.com/ardnew/qedcfg/pkg"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Check resolves each configuration file and reports every error found.
type Check struct {
	Files []string `arg:"" help:"Configuration file(s) or '-' for stdin" name:"file" default:"-"`
	Quiet bool     `help:"Only report failures" short:"q"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	failed := 0

	for _, file := range c.Files {
		cfg, err := load(ctx, file)
		if err != nil {
			failed++

			c.report(ctx, file, config.Errors(err))

			continue
		}

		log.DebugContext(ctx, "configuration valid",
			slog.String("file", file),
			slog.Int("constants", cfg.Table().Len()))

		if !c.Quiet {
			fmt.Fprintln(stdout, passStyle.Render("✔")+" "+file+
				dimStyle.Render(fmt.Sprintf("  %d constants", cfg.Table().Len())))
		}
	}

	if failed > 0 {
		return ErrCheck.With(
			slog.Int("failed", failed),
			slog.Int("files", len(c.Files)))
	}

	return nil
}

// report prints the errors of one file.
func (c *Check) report(ctx context.Context, file string, errs []error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", failStyle.Render("✘"), file)

	for _, e := range errs {
		log.DebugContext(ctx, "configuration error",
			slog.String("file", file),
			slog.Any("error", e))

		fmt.Fprintf(&b, "  %s\n", formatError(e))
	}

	fmt.Fprint(stdout, b.String())
}

// formatError renders e prefixed by its field and source position.
func formatError(e error) string {
	var pe *pkg.Error
	if !errors.As(e, &pe) {
		return e.Error()
	}

	var where []string

	if v, ok := pe.Attr("field"); ok {
		where = append(where, v.String())
	}

	if v, ok := pe.Attr("line"); ok {
		pos := v.String()
		if col, ok := pe.Attr("column"); ok {
			pos += ":" + col.String()
		}

		where = append(where, pos)
	}

	if len(where) == 0 {
		return e.Error()
	}

	return fieldStyle.Render(strings.Join(where, " ")) + " " + e.Error()
}
