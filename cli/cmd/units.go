package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ardnew/qedcfg/lang"
)

// Units lists the built-in physical constants, units and prefixes.
type Units struct {
	Dim []string `arg:"" help:"Only list units of these dimensions" name:"dimension" optional:""`
}

// Run executes the units command.
func (u *Units) Run(context.Context) error {
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tVALUE\tDIMENSION\tDESCRIPTION")

	for unit := range lang.Builtins().All() {
		dim := unit.Dim.String()
		if !u.match(dim) {
			continue
		}

		fmt.Fprintf(w, "%s\t%g\t%s\t%s\n", unit.Name, unit.Factor, dim, dimStyle.Render(unit.Doc))
	}

	fmt.Fprintf(w, "\n%s\n", dimStyle.Render("table "+lang.UnitsVersion))

	return w.Flush()
}

func (u *Units) match(dim string) bool {
	if len(u.Dim) == 0 {
		return true
	}

	for _, d := range u.Dim {
		if strings.EqualFold(d, dim) {
			return true
		}
	}

	return false
}
