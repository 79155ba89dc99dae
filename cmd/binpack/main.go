// binpack: one-dimensional bin packing by simulated annealing
//
// Packs a list of item weights into the fewest bins of a fixed capacity,
// checks the result against an exact branch-and-bound solver, and exports
// PDF reports, QR labels and Excel workbooks.
//
// Build:
//   go build -o binpack ./cmd/binpack
//
// Examples:
//   binpack solve --weights 4,8,1,4,2,1,3,2,1,2 --capacity 10 --compare
//   binpack solve --input items.csv --capacity 50 --pdf packing.pdf --labels labels.pdf
//   binpack bench --trials 1000 --workers 8 --out results.xlsx

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/binpack/cmd/binpack/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
