package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/stevenvo780/duo-eterno/internal/biome"
)

func list(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tWALK\tFRICTION\tFLAMMABLE\tFLUID\tHAZARD\tRAMP")
	tags := biome.TagTable()
	for _, k := range biome.Kinds() {
		def, err := biome.Lookup(k)
		if err != nil {
			return err
		}
		t := tags[k]
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%t\t%s\n",
			k, t.WalkCost, t.Friction, t.Flammable, t.Fluid, t.Hazard, def.Ramp)
	}
	return tw.Flush()
}
