package dag

import "slices"

// TopoSort computes a load order in which every dependency precedes the
// packages that depend on it.
//
// The node universe is every key and every dependency name in g. Each
// node's in-degree is the number of dependencies it declares; a reverse
// graph maps each dependency to its dependents. Nodes with no dependencies
// seed a FIFO queue in lexicographic order, and emitting a node decrements
// the in-degree of each of its dependents, enqueueing those that reach zero.
//
// complete is true when every node was emitted. When g contains a cycle the
// nodes on (or behind) it never reach zero, complete is false and order is
// a valid topological prefix of the acyclic part. Duplicate declarations
// count once per occurrence on both sides, so they never block a node.
func TopoSort(g *Graph) (order []string, complete bool) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))

	for _, k := range g.keys {
		for _, d := range g.deps[k] {
			inDegree[k]++
			dependents[d] = append(dependents[d], k)
		}
	}

	var queue []string
	for _, id := range slices.Sorted(slices.Values(nodes)) {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order = make([]string, 0, len(nodes))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, dep := range dependents[curr] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	return order, len(order) == len(nodes)
}

// Unordered returns the nodes of g missing from order, in first-seen order.
// For an incomplete [TopoSort] result these are the nodes on or blocked by a
// cycle.
func Unordered(g *Graph, order []string) []string {
	placed := NewSet(order...)
	var out []string
	for _, id := range g.Nodes() {
		if !placed.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
