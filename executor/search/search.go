// Package search explores a transition model with uninformed (breadth-first)
// or informed (A*) graph search.
//
// The engine never interrupts a run: it polls the context before every
// expansion and, once the context is done, returns what it has so far.
package search

import (
	"container/heap"
	"context"
	"time"
)

type frontier[S Informed, A any] []*Node[S, A]

func (f frontier[S, A]) Len() int { return len(f) }

// Less orders by f = g + h, then by lower h, then by insertion order.
func (f frontier[S, A]) Less(i, j int) bool {
	hi, hj := f[i].State.Estimate(), f[j].State.Estimate()
	fi, fj := float64(f[i].Depth)+hi, float64(f[j].Depth)+hj
	if fi != fj {
		return fi < fj
	}
	if hi != hj {
		return hi < hj
	}
	return f[i].seq < f[j].seq
}

func (f frontier[S, A]) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier[S, A]) Push(x any) {
	n := x.(*Node[S, A])
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier[S, A]) Pop() any {
	old := *f
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*f = old[:last]
	return n
}

// AStar runs A* from start. With an admissible estimate the returned solution
// has minimum depth. Duplicate states are detected by Key, and a state is
// reopened when a shorter path to it turns up.
func AStar[A any, S Informed](ctx context.Context, p Problem[S, A], start S, cfg Config) Result[S, A] {
	began := time.Now()
	var zero A

	seq := 0
	root := newNode[S, A](start, nil, zero, seq)

	open := &frontier[S, A]{}
	heap.Push(open, root)
	bestDepth := map[string]int{start.Key(): 0}
	closed := map[string]bool{}

	var best *Node[S, A]
	expanded := 0

	done := func(success bool, n *Node[S, A], err error) Result[S, A] {
		return Result[S, A]{
			Success:       success,
			Node:          n,
			Elapsed:       time.Since(began),
			NodesExplored: expanded,
			Err:           err,
		}
	}

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return done(false, best, err)
		}

		current := heap.Pop(open).(*Node[S, A])
		key := current.State.Key()
		if closed[key] || current.Depth > bestDepth[key] {
			continue
		}

		if p.IsGoal(current.State) {
			return done(true, current, nil)
		}

		if cfg.MaxNodes > 0 && expanded >= cfg.MaxNodes {
			return done(false, best, ErrNodeLimit)
		}
		closed[key] = true
		expanded++
		if best == nil || morePromising(current, best) {
			best = current
		}

		for _, a := range p.Actions(current.State) {
			next := p.Result(current.State, a)
			nextKey := next.Key()
			depth := current.Depth + 1
			if prev, seen := bestDepth[nextKey]; seen && depth >= prev {
				continue
			}
			bestDepth[nextKey] = depth
			delete(closed, nextKey)

			seq++
			heap.Push(open, newNode(next, current, a, seq))
		}
	}

	return done(false, best, ErrNoSolution)
}

func morePromising[S Informed, A any](a, b *Node[S, A]) bool {
	ha, hb := a.State.Estimate(), b.State.Estimate()
	if ha != hb {
		return ha < hb
	}
	return a.Depth > b.Depth
}

// BreadthFirst expands states in order of depth, so the first goal found is a
// shallowest one. It ignores any estimate the states may carry.
func BreadthFirst[A any, S State](ctx context.Context, p Problem[S, A], start S, cfg Config) Result[S, A] {
	began := time.Now()
	var zero A

	root := newNode[S, A](start, nil, zero, 0)
	queue := []*Node[S, A]{root}
	seen := map[string]bool{start.Key(): true}

	best := root
	expanded := 0

	done := func(success bool, n *Node[S, A], err error) Result[S, A] {
		return Result[S, A]{
			Success:       success,
			Node:          n,
			Elapsed:       time.Since(began),
			NodesExplored: expanded,
			Err:           err,
		}
	}

	if p.IsGoal(start) {
		return done(true, root, nil)
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return done(false, best, err)
		}

		if cfg.MaxNodes > 0 && expanded >= cfg.MaxNodes {
			return done(false, best, ErrNodeLimit)
		}

		current := queue[0]
		queue[0] = nil
		queue = queue[1:]
		expanded++
		best = current

		for _, a := range p.Actions(current.State) {
			next := p.Result(current.State, a)
			key := next.Key()
			if seen[key] {
				continue
			}
			seen[key] = true

			child := newNode(next, current, a, 0)
			if p.IsGoal(next) {
				return done(true, child, nil)
			}
			queue = append(queue, child)
		}
	}

	return done(false, best, ErrNoSolution)
}
