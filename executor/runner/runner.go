// Package runner solves one puzzle with one search method and packages the
// outcome for printing and export.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brensch/tiles/executor/search"
	"github.com/brensch/tiles/game"
	"github.com/brensch/tiles/rules"
	"github.com/brensch/tiles/store"
)

// Method is a named way of searching: breadth-first, or A* with a strategy.
type Method struct {
	Name     string
	Blind    bool
	Strategy rules.Strategy
}

// BreadthFirst is the uninformed baseline.
var BreadthFirst = Method{Name: "BFS", Blind: true}

// DefaultMethods are the three A* strategies, in the order the driver runs them.
func DefaultMethods() []Method {
	out := make([]Method, 0, len(rules.Strategies))
	for _, st := range rules.Strategies {
		out = append(out, Method{Name: st.String(), Strategy: st})
	}
	return out
}

// ParseMethod accepts BFS (or breadth-first) and every name rules.ParseStrategy does.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first", "breadthfirst":
		return BreadthFirst, nil
	}
	st, err := rules.ParseStrategy(name)
	if err != nil {
		return Method{}, err
	}
	return Method{Name: st.String(), Strategy: st}, nil
}

// ParseMethods parses a comma separated list, skipping empty entries.
func ParseMethods(list string) ([]Method, error) {
	var out []Method
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m, err := ParseMethod(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no methods in %q", list)
	}
	return out, nil
}

type Config struct {
	// TimeLimit bounds each run. 0 means no limit beyond the caller's context.
	TimeLimit time.Duration
	MaxNodes  int
}

// Outcome is the result of one run.
type Outcome struct {
	RunID    string
	Method   Method
	GridSize int

	Success bool
	// Checked is set when the final state passes the goal test independently of the engine.
	Checked bool
	// Path and Steps lead to the goal on success. When a limit stopped the
	// search they lead to the most promising state reached instead, and are
	// empty if nothing was expanded.
	Path  []*game.State
	Steps []game.Action

	Elapsed       time.Duration
	NodesExplored int
	Err           error
}

// Depth is the number of placements in the solution, or -1 without one.
func (o Outcome) Depth() int {
	if !o.Success {
		return -1
	}
	return len(o.Steps)
}

// TimedOut reports whether the run stopped on its time budget.
func (o Outcome) TimedOut() bool {
	return errors.Is(o.Err, context.DeadlineExceeded)
}

// Run builds the problem for m and searches it.
func Run(ctx context.Context, cfg Config, m Method, gridSize int, blocks game.Inventory) Outcome {
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}
	scfg := search.Config{MaxNodes: cfg.MaxNodes}

	out := Outcome{
		RunID:    uuid.NewString(),
		Method:   m,
		GridSize: gridSize,
	}

	if m.Blind {
		p := rules.NewProblem(gridSize, blocks)
		res := search.BreadthFirst[game.Action](ctx, p, p.InitialState(), scfg)
		out.fill(res.Success, res.Elapsed, res.NodesExplored, res.Err)
		for _, n := range res.Node.Path() {
			out.Path = append(out.Path, n.State)
		}
		out.Steps = res.Node.Actions()
		out.Checked = res.Success && p.IsGoal(res.Node.State)
		return out
	}

	p := rules.NewInformedProblem(gridSize, blocks, m.Strategy)
	res := search.AStar[game.Action](ctx, p, p.InitialState(), scfg)
	out.fill(res.Success, res.Elapsed, res.NodesExplored, res.Err)
	for _, n := range res.Node.Path() {
		out.Path = append(out.Path, n.State.Base())
	}
	out.Steps = res.Node.Actions()
	out.Checked = res.Success && p.IsGoal(res.Node.State)
	return out
}

func (o *Outcome) fill(success bool, elapsed time.Duration, nodes int, err error) {
	o.Success = success
	o.Elapsed = elapsed
	o.NodesExplored = nodes
	o.Err = err
}

// Row converts the outcome into an exportable summary for problem.
func (o Outcome) Row(problem string) store.RunRow {
	row := store.RunRow{
		RunID:         o.RunID,
		Problem:       problem,
		Method:        o.Method.Name,
		GridSize:      int32(o.GridSize),
		Success:       o.Success,
		TimedOut:      o.TimedOut(),
		Depth:         int32(o.Depth()),
		NodesExplored: int64(o.NodesExplored),
		ElapsedMs:     float64(o.Elapsed.Microseconds()) / 1000,
		RecordedAt:    time.Now().UnixMilli(),
	}
	for _, a := range o.Steps {
		row.Steps = append(row.Steps, a.String())
	}
	if o.Err != nil {
		row.Error = o.Err.Error()
	}
	return row
}
