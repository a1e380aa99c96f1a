// Package game defines the core state types for the colored tiles puzzle.
//
// A state is the height of every column on an NxN grid plus the blocks still
// available to drop. States are cheap value snapshots: every transition
// produces a fresh State via Clone, and no slice or map is ever shared
// between a parent and its successors.
package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Shape is a rectangular block, height x width.
type Shape struct {
	H int
	W int
}

func (s Shape) String() string {
	return strconv.Itoa(s.H) + "x" + strconv.Itoa(s.W)
}

// Area is the number of grid cells the block covers.
func (s Shape) Area() int { return s.H * s.W }

// Action drops Shape so that its leftmost cell lands in column Col.
// The zero Action marks the initial state.
type Action struct {
	Shape Shape
	Col   int
}

func (a Action) IsInitial() bool { return a == Action{} }

func (a Action) String() string {
	if a.IsInitial() {
		return "Initial state"
	}
	return fmt.Sprintf("(%s, %d)", a.Shape, a.Col)
}

// Inventory maps a block shape to the number of such blocks remaining.
type Inventory map[Shape]int

// Clone performs a deep copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Equal reports whether both inventories hold the same shapes with the same counts.
func (inv Inventory) Equal(other Inventory) bool {
	if len(inv) != len(other) {
		return false
	}
	for k, v := range inv {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Shapes returns the inventory keys ordered by height, then width.
func (inv Inventory) Shapes() []Shape {
	out := make([]Shape, 0, len(inv))
	for k := range inv {
		out = append(out, k)
	}
	slices.SortFunc(out, compareShapes)
	return out
}

// Remaining is the total number of blocks left, over all shapes.
func (inv Inventory) Remaining() int {
	n := 0
	for _, v := range inv {
		n += v
	}
	return n
}

func (inv Inventory) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range inv.Shapes() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", s, inv[s])
	}
	b.WriteByte('}')
	return b.String()
}

func compareShapes(a, b Shape) int {
	if a.H != b.H {
		return a.H - b.H
	}
	return a.W - b.W
}

// State is a snapshot of column heights and remaining blocks.
// Action is informational and takes no part in equality.
type State struct {
	Heights []int
	Blocks  Inventory
	Action  Action
}

// NewState copies heights and blocks into a fresh State.
func NewState(heights []int, blocks Inventory) *State {
	return &State{
		Heights: slices.Clone(heights),
		Blocks:  blocks.Clone(),
	}
}

// Clone performs a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	return &State{
		Heights: slices.Clone(s.Heights),
		Blocks:  s.Blocks.Clone(),
		Action:  s.Action,
	}
}

func (s *State) GridSize() int { return len(s.Heights) }

// Filled is the number of occupied grid cells.
func (s *State) Filled() int {
	n := 0
	for _, h := range s.Heights {
		n += h
	}
	return n
}

// Equal compares heights and remaining blocks only.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.Equal(s.Heights, other.Heights) && s.Blocks.Equal(other.Blocks)
}

// Key is a canonical encoding of the state; two states share a key iff Equal.
// Exhausted shapes stay in the key since Equal compares key sets.
func (s *State) Key() string {
	var b strings.Builder
	for i, h := range s.Heights {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(h))
	}
	b.WriteByte('|')
	for i, shape := range s.Blocks.Shapes() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(shape.String())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.Blocks[shape]))
	}
	return b.String()
}

// String draws the grid with the top row first, followed by the remaining blocks.
func (s *State) String() string {
	n := s.GridSize()
	var b strings.Builder
	for row := n; row > 0; row-- {
		for col := 0; col < n; col++ {
			if s.Heights[col] >= row {
				b.WriteByte('*')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("\nRemaining Blocks:\n")
	b.WriteString(s.Blocks.String())
	return b.String()
}
