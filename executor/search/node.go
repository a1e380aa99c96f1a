package search

import (
	"errors"
	"time"
)

var (
	ErrNoSolution = errors.New("search space exhausted without reaching the goal")
	ErrNodeLimit  = errors.New("node expansion limit reached")
)

// State is anything the engine can deduplicate. Keys must be equal exactly
// when the states are equal.
type State interface {
	Key() string
}

// Informed states carry a cached estimate of the remaining cost.
type Informed interface {
	State
	Estimate() float64
}

// Problem is the transition model the engine explores. Every action has unit
// cost, so a node's depth is its path cost.
type Problem[S State, A any] interface {
	IsGoal(S) bool
	Actions(S) []A
	Result(S, A) S
}

// Node is a state in the search tree together with the edge that reached it.
type Node[S State, A any] struct {
	State  S
	Action A
	Parent *Node[S, A]
	Depth  int

	seq   int
	index int
}

func newNode[S State, A any](state S, parent *Node[S, A], action A, seq int) *Node[S, A] {
	n := &Node[S, A]{State: state, Action: action, Parent: parent, seq: seq}
	if parent != nil {
		n.Depth = parent.Depth + 1
	}
	return n
}

// Path returns the nodes from the root down to n.
func (n *Node[S, A]) Path() []*Node[S, A] {
	if n == nil {
		return nil
	}
	path := make([]*Node[S, A], n.Depth+1)
	for cur, i := n, n.Depth; cur != nil; cur, i = cur.Parent, i-1 {
		path[i] = cur
	}
	return path
}

// Actions returns the actions along the path, root excluded. It is nil for the
// root and for a nil node.
func (n *Node[S, A]) Actions() []A {
	path := n.Path()
	if len(path) < 2 {
		return nil
	}
	out := make([]A, 0, len(path)-1)
	for _, p := range path[1:] {
		out = append(out, p.Action)
	}
	return out
}

// Config holds engine limits. The wall-clock budget travels on the context.
type Config struct {
	// MaxNodes stops the search after this many expansions. 0 means no limit.
	MaxNodes int
}

// Result is what a search run reports back to the driver.
type Result[S State, A any] struct {
	Success bool
	// Node is the goal node on success, otherwise the most promising node
	// expanded before the search stopped (nil if none was).
	Node          *Node[S, A]
	Elapsed       time.Duration
	NodesExplored int
	// Err is nil on success. Otherwise it is ErrNoSolution when the space was
	// exhausted, ErrNodeLimit when Config.MaxNodes was hit, or the context's
	// error (context.DeadlineExceeded, context.Canceled) when it ended first.
	Err error
}

// Depth is the solution length, or -1 when the search failed.
func (r Result[S, A]) Depth() int {
	if !r.Success || r.Node == nil {
		return -1
	}
	return r.Node.Depth
}
