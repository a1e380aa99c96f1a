// visualize.go - Console output for finished runs.
//
// DisplaySteps walks a solution from the empty grid to the full one;
// PrintSummary writes the per-run report the executor prints.
package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// DisplaySteps writes every state on the solution path with the action that
// produced it.
func DisplaySteps(w io.Writer, o Outcome) error {
	if !o.Success {
		_, err := fmt.Fprintf(w, "No solution for %s\n", o.Method.Name)
		return err
	}

	var sb strings.Builder
	for i, s := range o.Path {
		fmt.Fprintf(&sb, "--- Step %d: %s ---\n", i, s.Action)
		sb.WriteString(s.String())
		sb.WriteString("\n\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// PrintSummary writes the depth, time and node count of a run.
func PrintSummary(w io.Writer, o Outcome) error {
	var sb strings.Builder
	switch {
	case o.Success:
		fmt.Fprintf(&sb, "Solution found by %s\n", o.Method.Name)
		fmt.Fprintf(&sb, "Solution depth: %d\n", o.Depth())
		if !o.Checked {
			sb.WriteString("WARNING: final state failed the goal check\n")
		}
	case o.TimedOut():
		fmt.Fprintf(&sb, "Could not find solution with %s (time limit reached)\n", o.Method.Name)
		sb.WriteString("Solution depth: N/A\n")
	default:
		fmt.Fprintf(&sb, "Could not find solution with %s", o.Method.Name)
		if o.Err != nil {
			fmt.Fprintf(&sb, " (%v)", o.Err)
		}
		sb.WriteString("\nSolution depth: N/A\n")
	}
	if !o.Success && len(o.Steps) > 0 {
		fmt.Fprintf(&sb, "Best partial path: %d placements\n", len(o.Steps))
	}
	fmt.Fprintf(&sb, "Time used (secs): %.4f\n", o.Elapsed.Seconds())
	fmt.Fprintf(&sb, "Space used (nodes): %s\n", humanize.Comma(int64(o.NodesExplored)))

	_, err := io.WriteString(w, sb.String())
	return err
}
