// Package report renders fit results and isotherm curves for the
// terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eoslab/internal/fit"
)

// WriteFit prints a tabulated fit report: fitted values with standard
// errors for free parameters, fixed values below, then summary
// statistics.
func WriteFit(out io.Writer, res *fit.Result, free []string) error {
	freeSet := make(map[string]bool, len(free))
	for _, name := range free {
		freeSet[name] = true
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tVALUE\tSTDERR\tROLE")
	for _, e := range res.Params.Entries() {
		role := "fixed"
		if freeSet[e.Name] {
			role = "free"
		}
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%s\n", e.Name, e.Value.Value, e.Value.Sigma, role)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nconverged: %v (%d iterations)\n", res.Converged, res.Iterations)
	fmt.Fprintf(out, "chi2: %.6g  reduced: %.4g  rmse: %.4g GPa\n",
		res.Chi2, res.ReducedChi2, res.RMSE)
	return nil
}

// ResidualPlot renders observed-minus-model pressures as a terminal
// graph.
func ResidualPlot(residuals []float64) string {
	if len(residuals) < 2 {
		return ""
	}
	return asciigraph.Plot(residuals,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("residuals (GPa), observation order"),
	)
}

// IsothermPlot renders a pressure curve against volume at fixed
// temperature.
func IsothermPlot(pressures []float64, tempK float64) string {
	if len(pressures) < 2 {
		return ""
	}
	return asciigraph.Plot(pressures,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("P (GPa) vs V, T=%.0f K", tempK)),
	)
}
