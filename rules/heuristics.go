package rules

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/brensch/tiles/game"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects the heuristic an InformedProblem attaches to its states.
type Strategy int

const (
	// StrategyZero estimates 0 everywhere: admissible and consistent, no guidance.
	StrategyZero Strategy = iota
	// StrategyAdmissible never overestimates the number of placements left.
	StrategyAdmissible
	// StrategyNonAdmissible may overestimate; solutions can be suboptimal.
	StrategyNonAdmissible
)

// Strategies lists every strategy in driver order.
var Strategies = []Strategy{StrategyZero, StrategyAdmissible, StrategyNonAdmissible}

var strategyNames = map[Strategy]string{
	StrategyZero:          "AStar0",
	StrategyAdmissible:    "AStarH1",
	StrategyNonAdmissible: "AStarH2",
}

var strategyAliases = map[string]Strategy{
	"astar0":        StrategyZero,
	"zero":          StrategyZero,
	"astarh1":       StrategyAdmissible,
	"admissible":    StrategyAdmissible,
	"astarh2":       StrategyNonAdmissible,
	"nonadmissible": StrategyNonAdmissible,
}

func (st Strategy) String() string {
	if name, ok := strategyNames[st]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(st))
}

// ParseStrategy accepts the driver names (AStar0, AStarH1, AStarH2) and the
// descriptive aliases, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "")
	if st, ok := strategyAliases[key]; ok {
		return st, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Heuristic estimates the remaining cost from s to a full grid of size gridSize.
type Heuristic func(gridSize int, s *game.State) float64

// Heuristic returns the estimate function for st. It panics on a value
// outside Strategies; names from user input go through ParseStrategy.
func (st Strategy) Heuristic() Heuristic {
	switch st {
	case StrategyZero:
		return zero
	case StrategyAdmissible:
		return admissible
	case StrategyNonAdmissible:
		return nonAdmissible
	default:
		panic(fmt.Sprintf("rules: unknown strategy %s", st))
	}
}

func zero(int, *game.State) float64 { return 0 }

// admissible counts the fewest remaining blocks whose combined area could cover
// every empty cell. Any solution fills the empty cells exactly with blocks from
// the inventory, so taking the largest blocks first gives a lower bound on the
// number of placements.
func admissible(gridSize int, s *game.State) float64 {
	empty := gridSize*gridSize - s.Filled()
	if empty <= 0 {
		return 0
	}
	areas := usableAreas(gridSize, s)
	slices.Sort(areas)
	slices.Reverse(areas)
	return float64(blocksToCover(empty, areas))
}

// nonAdmissible covers the empty cells with the smallest blocks first and adds
// one for every step in the skyline. Both terms tend to overestimate.
func nonAdmissible(gridSize int, s *game.State) float64 {
	empty := gridSize*gridSize - s.Filled()
	if empty <= 0 {
		return 0
	}
	areas := usableAreas(gridSize, s)
	slices.Sort(areas)

	steps := 0
	for c := 1; c < len(s.Heights); c++ {
		if s.Heights[c] != s.Heights[c-1] {
			steps++
		}
	}
	return float64(blocksToCover(empty, areas) + steps)
}

// usableAreas returns one area per remaining block that could still be placed
// somewhere. Heights only grow, so a block taller than the room above the
// lowest column can never be used again.
func usableAreas(gridSize int, s *game.State) []int {
	room := gridSize - slices.Min(s.Heights)
	areas := make([]int, 0, s.Blocks.Remaining())
	for shape, count := range s.Blocks {
		if shape.W > gridSize || shape.H > room {
			continue
		}
		for i := 0; i < count; i++ {
			areas = append(areas, shape.Area())
		}
	}
	return areas
}

// blocksToCover takes areas in order until they sum to at least empty. If they
// never do the state is a dead end; one more than every block is returned so
// the estimate stays finite.
func blocksToCover(empty int, areas []int) int {
	covered := 0
	for i, a := range areas {
		if covered >= empty {
			return i
		}
		covered += a
	}
	if covered >= empty {
		return len(areas)
	}
	return len(areas) + 1
}

// InformedProblem is a Problem whose states carry a heuristic estimate.
type InformedProblem struct {
	*Problem
	heuristic Heuristic
}

// NewInformedProblem builds the problem and binds the strategy's heuristic.
func NewInformedProblem(gridSize int, blocks game.Inventory, strategy Strategy) *InformedProblem {
	return &InformedProblem{
		Problem:   NewProblem(gridSize, blocks),
		heuristic: strategy.Heuristic(),
	}
}

func NewZeroProblem(gridSize int, blocks game.Inventory) *InformedProblem {
	return NewInformedProblem(gridSize, blocks, StrategyZero)
}

func NewAdmissibleProblem(gridSize int, blocks game.Inventory) *InformedProblem {
	return NewInformedProblem(gridSize, blocks, StrategyAdmissible)
}

func NewNonAdmissibleProblem(gridSize int, blocks game.Inventory) *InformedProblem {
	return NewInformedProblem(gridSize, blocks, StrategyNonAdmissible)
}

// H evaluates the bound heuristic on any state.
func (p *InformedProblem) H(s *game.State) float64 {
	return p.heuristic(p.GridSize(), s)
}

// InitialState wraps the root state with its estimate. Each call returns a
// fresh copy.
func (p *InformedProblem) InitialState() *game.InformedState {
	root := p.Problem.InitialState()
	return game.NewInformedState(root.Heights, root.Blocks, p.H(root))
}

func (p *InformedProblem) IsGoal(s *game.InformedState) bool {
	return p.Problem.IsGoal(s.Base())
}

func (p *InformedProblem) Actions(s *game.InformedState) []game.Action {
	return p.Problem.Actions(s.Base())
}

// Result applies a through the base transition and estimates the successor.
func (p *InformedProblem) Result(s *game.InformedState, a game.Action) *game.InformedState {
	next := p.Problem.Result(s.Base(), a)
	return &game.InformedState{State: *next, H: p.H(next)}
}
