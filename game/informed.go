package game

import "strconv"

// InformedState is a State carrying a cached estimate of the remaining cost to
// the goal. H is computed once, by the problem that created the state.
type InformedState struct {
	State
	H float64
}

// NewInformedState copies heights and blocks and attaches the estimate h.
func NewInformedState(heights []int, blocks Inventory, h float64) *InformedState {
	return &InformedState{State: *NewState(heights, blocks), H: h}
}

func (s *InformedState) Estimate() float64 { return s.H }

// Base returns the plain State view. The returned pointer aliases s.
func (s *InformedState) Base() *State { return &s.State }

func (s *InformedState) String() string {
	return s.State.String() + "\nH(n) for this state: " + strconv.FormatFloat(s.H, 'g', -1, 64)
}
