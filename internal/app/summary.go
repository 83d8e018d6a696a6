package app

import (
	"fmt"
	"time"

	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/specialistvlad/workgraph/internal/runstore"
)

// printSummary writes a short report of the run to the app's output.
func (a *App) printSummary(total int, runs *runstore.Store) {
	var completed, failed int
	for _, rec := range runs.Records() {
		switch rec.State {
		case node.Completed:
			completed++
		case node.Failed:
			failed++
		}
	}

	fmt.Fprintf(a.outW, "Summary: %d nodes, %d completed, %d failed, %d not run\n",
		total, completed, failed, total-completed-failed)
	for _, rec := range runs.Failed() {
		fmt.Fprintf(a.outW, "  FAILED %s [%s] after %s: %v\n", rec.ID, rec.Kind, rec.Duration().Round(time.Millisecond), rec.Err)
	}
}
