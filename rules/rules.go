// Package rules implements the transition model for the colored tiles puzzle:
// the goal test, legal action generation and the pure state transition.
package rules

import (
	"slices"

	"github.com/brensch/tiles/game"
)

// Problem defines the search graph for one grid size and starting inventory.
// It is immutable after construction and safe for concurrent use.
type Problem struct {
	gridSize int
	goal     []int
	initial  *game.State
}

// NewProblem builds the empty NxN grid with the given blocks available.
// Inputs are assumed to be validated by the caller (see package loader).
func NewProblem(gridSize int, blocks game.Inventory) *Problem {
	goal := make([]int, gridSize)
	for i := range goal {
		goal[i] = gridSize
	}
	return &Problem{
		gridSize: gridSize,
		goal:     goal,
		initial:  game.NewState(make([]int, gridSize), blocks),
	}
}

func (p *Problem) GridSize() int { return p.gridSize }

// Goal returns the heights of a completely full grid.
func (p *Problem) Goal() []int { return slices.Clone(p.goal) }

// InitialState returns the canonical root state. Callers must not mutate it.
func (p *Problem) InitialState() *game.State { return p.initial }

func (p *Problem) IsGoal(s *game.State) bool {
	return slices.Equal(s.Heights, p.goal)
}

// WillFit reports whether shape can be dropped with its left edge in col:
// it must stay inside the grid and rest on a level surface.
func (p *Problem) WillFit(shape game.Shape, col int, s *game.State) bool {
	if col < 0 || col+shape.W > p.gridSize {
		return false
	}

	level := s.Heights[col]
	for c := col + 1; c < col+shape.W; c++ {
		if s.Heights[c] != level {
			return false
		}
	}

	return level+shape.H <= p.gridSize
}

// Actions returns the legal actions in s. By the rules of the puzzle a block is
// always dropped in the leftmost column where it fits, so each shape that has
// blocks left contributes at most one action.
func (p *Problem) Actions(s *game.State) []game.Action {
	actions := make([]game.Action, 0, len(s.Blocks))
	for _, shape := range s.Blocks.Shapes() {
		if s.Blocks[shape] <= 0 {
			continue
		}
		for col := 0; col < p.gridSize; col++ {
			if p.WillFit(shape, col, s) {
				actions = append(actions, game.Action{Shape: shape, Col: col})
				break
			}
		}
	}
	return actions
}

// Result returns the state reached by applying a to s. s is left untouched.
// a must be one of Actions(s).
func (p *Problem) Result(s *game.State, a game.Action) *game.State {
	next := s.Clone()
	next.Action = a

	for c := a.Col; c < a.Col+a.Shape.W; c++ {
		next.Heights[c] += a.Shape.H
	}
	next.Blocks[a.Shape]--

	return next
}
