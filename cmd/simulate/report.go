package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/udisondev/galaxies/internal/sim"
)

// printReports writes one block per encounter: outcome line plus a
// survivor table.
func printReports(w io.Writer, reports []sim.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\trounds=%d\telapsed=%.1f\tentries=%d\n",
			r.Encounter, r.Outcome, r.Rounds, r.Elapsed, r.Entries)
		for _, s := range r.Survivors {
			d := s.Summary.Derived
			fmt.Fprintf(tw, "  %s\t%s\tlvl=%d\thp=%.0f/%.0f\tatk=%.1f\tdef=%.1f\txp=%d\n",
				s.ID, s.Kind, s.Level, s.Health, d.MaxHealth, d.AttackPower, d.Defense, s.Summary.Experience)
		}
	}
}
