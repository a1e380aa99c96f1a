// Command inspect prints the first transition of a problem under every
// heuristic strategy: the initial state, its legal actions, the successor of
// the first action, and the initial state again to show it was not modified.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/brensch/tiles/game"
	"github.com/brensch/tiles/loader"
	"github.com/brensch/tiles/logging"
	"github.com/brensch/tiles/rules"
)

func main() {
	problemPath := flag.String("problem", "", "Problem file (text or .yaml); defaults to the built-in 4x4 sample")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, "text", *logLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	gridSize, blocks := 4, game.Inventory{
		{H: 3, W: 2}: 1,
		{H: 2, W: 3}: 1,
		{H: 2, W: 2}: 1,
		{H: 1, W: 2}: 2,
		{H: 2, W: 1}: 1,
		{H: 1, W: 1}: 4,
	}
	if *problemPath != "" {
		p, err := loader.Load(*problemPath)
		if err != nil {
			log.Fatalf("Failed to load problem: %v", err)
		}
		gridSize, blocks = p.GridSize, p.Blocks
	}
	logger.Info("inspecting", "grid", gridSize, "blocks", blocks.String())

	if err := inspect(os.Stdout, logger, gridSize, blocks); err != nil {
		logger.Error("inspect failed", "err", err)
		os.Exit(1)
	}
}

// inspect prints the first transition under each strategy and fails if
// Result modified the state it was applied to.
func inspect(w io.Writer, logger *slog.Logger, gridSize int, blocks game.Inventory) error {
	for _, st := range rules.Strategies {
		p := rules.NewInformedProblem(gridSize, blocks, st)
		s := p.InitialState()
		before := s.Clone()

		fmt.Fprintf(w, "═══ %s ═══\n", st)
		fmt.Fprintf(w, "Initial state:\n%s\n\n", s)

		actions := p.Actions(s)
		fmt.Fprintf(w, "Actions: %v\n\n", actions)
		if len(actions) == 0 {
			logger.Warn("no legal actions from the initial state", "strategy", st.String())
			continue
		}

		next := p.Result(s, actions[0])
		fmt.Fprintf(w, "Applying action: %s\n%s\n\n", actions[0], next)
		fmt.Fprintf(w, "Initial state after the move:\n%s\n\n", s)

		if !s.Equal(before) {
			return fmt.Errorf("%s: initial state was modified by Result", st)
		}
	}
	return nil
}
