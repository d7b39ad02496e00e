package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/toymeas/internal/distrio"
)

// Inspect prints one line per block of an output file: name, config,
// binning and the integral over bins above minValue.
func Inspect(w io.Writer, path string, minValue float64) error {
	energy, results, err := distrio.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Energy = %s\n", energy)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOLCONFIG\tNBINS\tDIM\tINTEGRAL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%g\n", r.Distribution, r.PolConfig, r.NBins(), r.Dim, r.Integral(minValue))
	}
	return tw.Flush()
}
