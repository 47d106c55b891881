// SPDX-License-Identifier: MIT
//
// File: components.go
// Role: Breadth-first decomposition of the declared variables into groups
//       that share no factor, transitively.
// Determinism:
//   - Components are ordered by their smallest id; members ascend.

package graph

import "slices"

// walker holds the BFS queue and visit marks for one Components call.
type walker struct {
	g       *Graph
	queue   []int
	visited map[int]bool
}

// Components returns the connected components of the declared variables,
// where two variables are adjacent when some factor reads both. A variable
// no factor reads forms its own component. Undeclared nodes are skipped.
//
// Complexity: O(V + Σ|scope|·d) where d bounds the factors per variable.
func (g *Graph) Components() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int, 0, len(g.variables))
	var (
		id int
		v  *variable
	)
	for id, v = range g.variables {
		if v.declared {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	w := &walker{g: g, visited: make(map[int]bool, len(ids))}
	var out [][]int
	for _, id = range ids {
		if w.visited[id] {
			continue
		}
		out = append(out, w.walk(id))
	}

	return out
}

// walk collects the component of start. Caller holds g.mu for reading.
func (w *walker) walk(start int) []int {
	w.visited[start] = true
	w.queue = append(w.queue[:0], start)
	comp := []int{}
	var (
		f     FactorID
		other int
	)
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		comp = append(comp, id)
		for _, f = range w.g.variables[id].factors.Slice() {
			for _, other = range w.g.factors[f] {
				if w.visited[other] || !w.g.variables[other].declared {
					continue
				}
				w.visited[other] = true
				w.queue = append(w.queue, other)
			}
		}
	}
	slices.Sort(comp)

	return comp
}
