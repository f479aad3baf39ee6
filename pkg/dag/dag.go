package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.Validate] when a key or a
	// dependency name is empty. All packages must have non-empty names.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDanglingEdge is returned by [Graph.Validate] when a dependency name
	// never appears as a key. After a complete build every dependency has
	// been looked up, so this indicates an unfinished traversal.
	ErrDanglingEdge = errors.New("dependency has no adjacency entry")

	// ErrDuplicateNodeID is returned when decoding a node list that names
	// the same package twice.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an edge references a node that was
	// never declared.
	ErrUnknownNode = errors.New("unknown node")
)

// Edge represents a directed "depends on" relation: From depends on To.
type Edge struct {
	From string
	To   string
}

// Graph maps package names to their ordered direct dependencies.
//
// Keys keep insertion order, which for a built graph is discovery order.
// Dependency lists keep declaration order and are not deduplicated. Names
// that only appear as dependencies are part of the node universe (see
// [Graph.Nodes]) but have no adjacency entry until [Graph.Set] is called
// for them.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use; each resolution run owns its own.
type Graph struct {
	keys []string
	deps map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// Set records the direct dependencies of name. A second call for the same
// name replaces its dependency list (last write wins) but keeps the key's
// original position. A nil deps is stored as an empty list so that "known,
// no dependencies" stays distinguishable from "unknown".
func (g *Graph) Set(name string, deps []string) {
	if _, ok := g.deps[name]; !ok {
		g.keys = append(g.keys, name)
	}
	if deps == nil {
		deps = []string{}
	}
	g.deps[name] = slices.Clone(deps)
}

// Has reports whether name has an adjacency entry.
func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Deps returns the direct dependencies of name in declaration order.
// Returns nil if name has no adjacency entry. The returned slice should not
// be modified.
func (g *Graph) Deps(name string) []string { return g.deps[name] }

// Keys returns a copy of all adjacency keys in insertion order.
func (g *Graph) Keys() []string { return slices.Clone(g.keys) }

// Len returns the number of adjacency keys.
func (g *Graph) Len() int { return len(g.keys) }

// EdgeCount returns the number of edges, counting duplicate declarations.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, k := range g.keys {
		n += len(g.deps[k])
	}
	return n
}

// Edges returns every edge in key order, then dependency order.
// Duplicate declarations produce duplicate edges.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, k := range g.keys {
		for _, d := range g.deps[k] {
			edges = append(edges, Edge{From: k, To: d})
		}
	}
	return edges
}

// Nodes returns the node universe: every key and every dependency name,
// each once, in first-seen order (keys before their dependencies).
func (g *Graph) Nodes() []string {
	seen := make(map[string]bool, len(g.keys))
	nodes := make([]string, 0, len(g.keys))
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}
	for _, k := range g.keys {
		add(k)
		for _, d := range g.deps[k] {
			add(d)
		}
	}
	return nodes
}

// Dangling returns dependency names that have no adjacency entry, in
// first-seen order.
func (g *Graph) Dangling() []string {
	var out []string
	for _, id := range g.Nodes() {
		if !g.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns an independent copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, k := range g.keys {
		c.Set(k, g.deps[k])
	}
	return c
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that no name is empty and that every dependency has an
// adjacency entry. Cycles are allowed; use [Graph.HasCycle] or [TopoSort]
// to detect them.
func (g *Graph) Validate() error {
	for _, k := range g.keys {
		if k == "" {
			return ErrInvalidNodeID
		}
		for _, d := range g.deps[k] {
			if d == "" {
				return ErrInvalidNodeID
			}
			if !g.Has(d) {
				return ErrDanglingEdge
			}
		}
	}
	return nil
}

// HasCycle reports whether any directed cycle (including a self-loop) is
// reachable in the graph. It runs a depth-first search with
// white/gray/black coloring in O(N+E).
func (g *Graph) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.keys))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.deps[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.keys {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return true
			}
		}
	}
	return false
}
