package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/binpack/internal/model"
)

// RenderSummary writes a plain-text report of a packing: instance totals
// followed by one line per bin listing its contents. Bins are numbered 1..k
// in bin id order. The output is deterministic for a given instance and
// solution.
func RenderSummary(w io.Writer, inst model.Instance, sol model.Solution) error {
	weights := inst.Weights()
	if len(sol.Assignment) != len(weights) {
		return fmt.Errorf("assignment has %d entries for %d items", len(sol.Assignment), len(weights))
	}
	names := inst.Labels()
	bins := sol.Bins(weights, inst.Capacity)

	optimal := "no"
	if sol.Optimal {
		optimal = "yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Instance:     %s\n", inst.Name)
	fmt.Fprintf(&b, "Items:        %d\n", len(weights))
	fmt.Fprintf(&b, "Capacity:     %s\n", formatNumber(inst.Capacity))
	fmt.Fprintf(&b, "Total weight: %s\n", formatNumber(inst.TotalWeight()))
	fmt.Fprintf(&b, "Bins used:    %d\n", len(bins))
	fmt.Fprintf(&b, "Lower bound:  %d\n", inst.LowerBound())
	fmt.Fprintf(&b, "Optimal:      %s\n", optimal)
	fmt.Fprintf(&b, "Efficiency:   %.1f%%\n", sol.Efficiency(weights, inst.Capacity))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-4s %5s %9s %9s %7s  %s\n", "BIN", "ITEMS", "LOAD", "FREE", "FILL", "CONTENTS")
	for n, bin := range bins {
		contents := make([]string, len(bin.Items))
		for k, idx := range bin.Items {
			contents[k] = fmt.Sprintf("%s(%s)", names[idx], formatNumber(bin.Weights[k]))
		}
		fmt.Fprintf(&b, "%-4d %5d %9s %9s %6.1f%%  %s\n",
			n+1, len(bin.Items), formatNumber(bin.Load), formatNumber(bin.Free()), bin.Fill(),
			strings.Join(contents, " "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
