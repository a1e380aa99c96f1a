package search

import (
	"context"
	"errors"
	"testing"
	"time"

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

// replay applies the solution's actions from the root and checks each one is legal.
func replay(t *testing.T, p *rules.Problem, actions []game.Action) *game.State {
	t.Helper()
	s := p.InitialState()
	for i, a := range actions {
		legal := false
		for _, b := range p.Actions(s) {
			legal = legal || a == b
		}
		if !legal {
			t.Fatalf("step %d: action %s not in %v", i, a, p.Actions(s))
		}
		s = p.Result(s, a)
	}
	return s
}

func TestAStar_TrivialGrid(t *testing.T) {
	p := rules.NewZeroProblem(2, game.Inventory{{H: 1, W: 1}: 4})
	res := AStar[game.Action](context.Background(), p, p.InitialState(), Config{})

	if !res.Success {
		t.Fatalf("search failed: %v", res.Err)
	}
	if res.Depth() != 4 {
		t.Fatalf("depth=%d want=4", res.Depth())
	}
	final := res.Node.State
	if !p.IsGoal(final) || final.Blocks[game.Shape{H: 1, W: 1}] != 0 {
		t.Fatalf("final state not a full grid:\n%s", final)
	}
	if got := len(res.Node.Path()); got != 5 {
		t.Fatalf("path len=%d want=5", got)
	}
	if !res.Node.Path()[0].State.Action.IsInitial() {
		t.Fatalf("path does not start at the root")
	}
}

func TestAStar_AllStrategiesSolveSample(t *testing.T) {
	base := rules.NewProblem(4, sampleBlocks())
	bfs := BreadthFirst[game.Action](context.Background(), base, base.InitialState(), Config{})
	if !bfs.Success {
		t.Fatalf("bfs failed: %v", bfs.Err)
	}
	t.Logf("BFS depth=%d nodes=%d", bfs.Depth(), bfs.NodesExplored)

	for _, st := range rules.Strategies {
		t.Run(st.String(), func(t *testing.T) {
			p := rules.NewInformedProblem(4, sampleBlocks(), st)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			res := AStar[game.Action](ctx, p, p.InitialState(), Config{})
			if !res.Success {
				t.Fatalf("search failed: %v (nodes=%d)", res.Err, res.NodesExplored)
			}
			t.Logf("%s depth=%d nodes=%d elapsed=%v", st, res.Depth(), res.NodesExplored, res.Elapsed)

			final := replay(t, base, res.Node.Actions())
			if !base.IsGoal(final) {
				t.Fatalf("replayed actions do not fill the grid:\n%s", final)
			}
			if st != rules.StrategyNonAdmissible && res.Depth() != bfs.Depth() {
				t.Fatalf("depth=%d want optimal %d", res.Depth(), bfs.Depth())
			}
			if res.Depth() < bfs.Depth() {
				t.Fatalf("depth=%d shorter than breadth-first %d", res.Depth(), bfs.Depth())
			}
		})
	}
}

func TestAStar_CancelledContext(t *testing.T) {
	p := rules.NewZeroProblem(4, sampleBlocks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := AStar[game.Action](ctx, p, p.InitialState(), Config{})
	if res.Success {
		t.Fatalf("expected failure on cancelled context")
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", res.Err)
	}
	if res.NodesExplored != 0 || res.Depth() != -1 {
		t.Fatalf("nodes=%d depth=%d", res.NodesExplored, res.Depth())
	}
}

func TestAStar_NodeLimit(t *testing.T) {
	p := rules.NewZeroProblem(4, sampleBlocks())
	res := AStar[game.Action](context.Background(), p, p.InitialState(), Config{MaxNodes: 3})

	if res.Success || !errors.Is(res.Err, ErrNodeLimit) {
		t.Fatalf("success=%v err=%v want ErrNodeLimit", res.Success, res.Err)
	}
	if res.NodesExplored != 3 {
		t.Fatalf("nodes=%d want=3", res.NodesExplored)
	}
	if res.Node == nil {
		t.Fatalf("expected a best-so-far node")
	}
}

func TestSearch_Unsolvable(t *testing.T) {
	// Three cells of area for a four cell grid.
	blocks := game.Inventory{{H: 1, W: 1}: 3}

	p := rules.NewAdmissibleProblem(2, blocks)
	res := AStar[game.Action](context.Background(), p, p.InitialState(), Config{})
	if res.Success || !errors.Is(res.Err, ErrNoSolution) {
		t.Fatalf("astar success=%v err=%v want ErrNoSolution", res.Success, res.Err)
	}
	if res.NodesExplored != 4 {
		t.Fatalf("astar nodes=%d want=4", res.NodesExplored)
	}

	base := rules.NewProblem(2, blocks)
	bfs := BreadthFirst[game.Action](context.Background(), base, base.InitialState(), Config{})
	if bfs.Success || !errors.Is(bfs.Err, ErrNoSolution) {
		t.Fatalf("bfs success=%v err=%v want ErrNoSolution", bfs.Success, bfs.Err)
	}
	if bfs.Node == nil || bfs.Node.Depth != 3 {
		t.Fatalf("bfs best node=%v want depth 3", bfs.Node)
	}
}

func TestBreadthFirst_GoalAtRoot(t *testing.T) {
	p := rules.NewProblem(1, game.Inventory{})
	root := game.NewState([]int{1}, game.Inventory{})

	res := BreadthFirst[game.Action](context.Background(), p, root, Config{})
	if !res.Success || res.Depth() != 0 {
		t.Fatalf("success=%v depth=%d", res.Success, res.Depth())
	}
	if acts := res.Node.Actions(); len(acts) != 0 {
		t.Fatalf("actions=%v want none", acts)
	}
}

func TestBreadthFirst_DeduplicatesByState(t *testing.T) {
	// The 1x1 drops reach many equal states by different orders; the 2x1
	// pair is the shallowest fill.
	p := rules.NewProblem(2, game.Inventory{{H: 1, W: 1}: 4, {H: 2, W: 1}: 2})
	res := BreadthFirst[game.Action](context.Background(), p, p.InitialState(), Config{})
	if !res.Success {
		t.Fatalf("bfs failed: %v", res.Err)
	}
	if res.Depth() != 2 {
		t.Fatalf("depth=%d want=2 (two 2x1 drops)", res.Depth())
	}
}
