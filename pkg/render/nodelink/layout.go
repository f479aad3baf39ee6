package nodelink

import (
	"github.com/matzehuels/apkgraph/pkg/dag"
)

// Builtin layout geometry, in SVG user units. NodeWidth is even and
// MinRowWidth is twice NodeWidth, so every placement lands on a whole unit.
const (
	AnchorX     = 400 // Root centre X
	AnchorY     = 40  // Root centre Y
	NodeWidth   = 120 // Horizontal slot per sibling
	MinRowWidth = 240 // Minimum width of a sibling row
	LevelHeight = 90  // Vertical distance between tiers
)

// Position is the centre of a node's box.
type Position struct {
	Node string
	X, Y int
}

// Positions holds node placements in placement order.
type Positions struct {
	order []Position
	index map[string]int
}

func newPositions() *Positions {
	return &Positions{index: make(map[string]int)}
}

// Get returns the placement of node.
func (p *Positions) Get(node string) (Position, bool) {
	i, ok := p.index[node]
	if !ok {
		return Position{}, false
	}
	return p.order[i], true
}

// All returns every placement in the order nodes were placed.
func (p *Positions) All() []Position {
	out := make([]Position, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of placed nodes.
func (p *Positions) Len() int { return len(p.order) }

func (p *Positions) place(node string, x, y int) bool {
	if _, ok := p.index[node]; ok {
		return false
	}
	p.index[node] = len(p.order)
	p.order = append(p.order, Position{Node: node, X: x, Y: y})
	return true
}

// Layout places root and everything reachable from it. Nodes not reachable
// from root get no position.
func Layout(g *dag.Graph, root string) *Positions {
	pos := newPositions()
	placeTree(g, pos, root, AnchorX, AnchorY)
	return pos
}

func placeTree(g *dag.Graph, pos *Positions, node string, x, y int) {
	if !pos.place(node, x, y) {
		return
	}
	deps := g.Deps(node)
	n := len(deps)
	if n == 0 {
		return
	}

	total := max(n*NodeWidth, MinRowWidth)
	spacing := total / n
	for i, dep := range deps {
		childX := x - total/2 + spacing*i + spacing/2
		placeTree(g, pos, dep, childX, y+LevelHeight)
	}
}
