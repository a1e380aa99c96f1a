package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brensch/tiles/executor/search"
	"github.com/brensch/tiles/game"
	"github.com/brensch/tiles/rules"
)

func sampleBlocks() game.Inventory {
	return game.Inventory{
		{H: 3, W: 2}: 1,
		{H: 2, W: 3}: 1,
		{H: 2, W: 2}: 1,
		{H: 1, W: 2}: 2,
		{H: 2, W: 1}: 1,
		{H: 1, W: 1}: 4,
	}
}

func TestParseMethods(t *testing.T) {
	ms, err := ParseMethods("AStar0, AStarH1,,bfs")
	if err != nil {
		t.Fatalf("ParseMethods: %v", err)
	}
	want := []string{"AStar0", "AStarH1", "BFS"}
	if len(ms) != len(want) {
		t.Fatalf("methods=%v want=%v", ms, want)
	}
	for i, m := range ms {
		if m.Name != want[i] {
			t.Fatalf("methods[%d]=%s want=%s", i, m.Name, want[i])
		}
	}
	if !ms[2].Blind || ms[1].Strategy != rules.StrategyAdmissible {
		t.Fatalf("unexpected methods: %+v", ms)
	}

	if _, err := ParseMethods("AStar0,Dijkstra"); !errors.Is(err, rules.ErrUnknownStrategy) {
		t.Fatalf("err=%v want ErrUnknownStrategy", err)
	}
	if _, err := ParseMethods(" , "); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestRun_AllMethods(t *testing.T) {
	methods := append(DefaultMethods(), BreadthFirst)
	for _, m := range methods {
		t.Run(m.Name, func(t *testing.T) {
			o := Run(context.Background(), Config{TimeLimit: 10 * time.Second}, m, 4, sampleBlocks())
			if !o.Success || !o.Checked {
				t.Fatalf("success=%v checked=%v err=%v", o.Success, o.Checked, o.Err)
			}
			if o.RunID == "" {
				t.Fatalf("missing run id")
			}
			if len(o.Path) != len(o.Steps)+1 {
				t.Fatalf("path=%d steps=%d", len(o.Path), len(o.Steps))
			}
			if !o.Path[0].Action.IsInitial() {
				t.Fatalf("path starts at %v", o.Path[0].Action)
			}
			for i, a := range o.Steps {
				if o.Path[i+1].Action != a {
					t.Fatalf("step %d: path action %v want %v", i, o.Path[i+1].Action, a)
				}
			}
			if m.Strategy != rules.StrategyNonAdmissible && o.Depth() != 5 {
				t.Fatalf("depth=%d want=5", o.Depth())
			}
		})
	}
}

func TestRun_TimeLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := Run(ctx, Config{}, DefaultMethods()[0], 4, sampleBlocks())
	if o.Success || o.Depth() != -1 {
		t.Fatalf("success=%v depth=%d", o.Success, o.Depth())
	}

	var buf bytes.Buffer
	if err := PrintSummary(&buf, o); err != nil {
		t.Fatalf("PrintSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "Could not find solution with AStar0") {
		t.Fatalf("summary:\n%s", buf.String())
	}
}

func TestRun_DeadlineReportsTimeout(t *testing.T) {
	o := Outcome{Method: BreadthFirst, Err: context.DeadlineExceeded}
	if !o.TimedOut() {
		t.Fatalf("expected timeout")
	}
	var buf bytes.Buffer
	_ = PrintSummary(&buf, o)
	if !strings.Contains(buf.String(), "time limit reached") {
		t.Fatalf("summary:\n%s", buf.String())
	}
}

func TestDisplaySteps(t *testing.T) {
	o := Run(context.Background(), Config{}, DefaultMethods()[1], 2, game.Inventory{{H: 1, W: 1}: 4})

	var buf bytes.Buffer
	if err := DisplaySteps(&buf, o); err != nil {
		t.Fatalf("DisplaySteps: %v", err)
	}
	out := buf.String()
	t.Logf("\n%s", out)

	if !strings.Contains(out, "--- Step 0: Initial state ---") {
		t.Fatalf("missing initial step")
	}
	if !strings.Contains(out, "--- Step 4: (1x1, 1) ---\n**\n**\n") {
		t.Fatalf("missing final full grid")
	}

	buf.Reset()
	if err := PrintSummary(&buf, o); err != nil {
		t.Fatalf("PrintSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "Solution depth: 4") {
		t.Fatalf("summary:\n%s", buf.String())
	}
}

func TestOutcomeRow(t *testing.T) {
	o := Run(context.Background(), Config{}, DefaultMethods()[0], 2, game.Inventory{{H: 1, W: 1}: 4})
	row := o.Row("unit")

	if row.RunID != o.RunID || row.Problem != "unit" || row.Method != "AStar0" {
		t.Fatalf("row=%+v", row)
	}
	if !row.Success || row.Depth != 4 || row.GridSize != 2 {
		t.Fatalf("row=%+v", row)
	}
	want := []string{"(1x1, 0)", "(1x1, 0)", "(1x1, 1)", "(1x1, 1)"}
	if strings.Join(row.Steps, " ") != strings.Join(want, " ") {
		t.Fatalf("steps=%v want=%v", row.Steps, want)
	}
	if row.Error != "" {
		t.Fatalf("error=%q want empty", row.Error)
	}
}

func TestRun_NodeLimitKeepsBestPath(t *testing.T) {
	m := Method{Name: rules.StrategyAdmissible.String(), Strategy: rules.StrategyAdmissible}
	o := Run(context.Background(), Config{MaxNodes: 3}, m, 4, sampleBlocks())

	if o.Success || o.Checked || o.Depth() != -1 {
		t.Fatalf("success=%v checked=%v depth=%d", o.Success, o.Checked, o.Depth())
	}
	if !errors.Is(o.Err, search.ErrNodeLimit) {
		t.Fatalf("err=%v want ErrNodeLimit", o.Err)
	}
	if o.NodesExplored != 3 {
		t.Fatalf("nodes=%d want=3", o.NodesExplored)
	}
	if len(o.Steps) == 0 || len(o.Path) != len(o.Steps)+1 {
		t.Fatalf("path=%d steps=%d, want a partial path", len(o.Path), len(o.Steps))
	}

	// Replaying the steps from the empty grid must land on the last path state.
	p := rules.NewProblem(4, sampleBlocks())
	s := p.InitialState()
	for i, a := range o.Steps {
		s = p.Result(s, a)
		if !s.Equal(o.Path[i+1]) {
			t.Fatalf("step %d: replay\n%s\nwant\n%s", i, s, o.Path[i+1])
		}
	}

	var buf bytes.Buffer
	if err := PrintSummary(&buf, o); err != nil {
		t.Fatalf("PrintSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "Best partial path:") {
		t.Fatalf("summary:\n%s", buf.String())
	}

	row := o.Row("sample")
	if row.Success || row.Depth != -1 || len(row.Steps) != len(o.Steps) {
		t.Fatalf("row=%+v", row)
	}
}
