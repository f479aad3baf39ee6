// Package tree draws a dependency graph as an indented ASCII tree.
//
// The walk is depth-first from the root. Shared dependencies (diamonds) are
// drawn in full under every parent. A dependency that is already an ancestor
// on the current path is drawn once with a " (cycle)" suffix and not
// expanded, so every tree is finite.
//
//	A
//	├── B
//	│   └── D
//	└── C
//	    └── D
package tree

import (
	"bufio"
	"io"

	"github.com/matzehuels/apkgraph/pkg/dag"
)

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	space      = "    "

	// CycleSuffix marks a dependency that leads back to an ancestor.
	CycleSuffix = " (cycle)"
)

// Render returns the tree lines for root, without trailing newlines.
// The first line is the bare root name.
func Render(root string, g *dag.Graph) []string {
	lines := []string{root}
	walk(g, root, "", dag.NewSet(root), &lines)
	return lines
}

// Write renders the tree to w, one line per node.
func Write(w io.Writer, root string, g *dag.Graph) error {
	bw := bufio.NewWriter(w)
	for _, line := range Render(root, g) {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func walk(g *dag.Graph, node, prefix string, ancestors dag.Set, lines *[]string) {
	deps := g.Deps(node)
	for i, dep := range deps {
		last := i == len(deps)-1
		connector, indent := branch, pipe
		if last {
			connector, indent = lastBranch, space
		}

		if ancestors.Has(dep) {
			*lines = append(*lines, prefix+connector+dep+CycleSuffix)
			continue
		}
		*lines = append(*lines, prefix+connector+dep)

		path := dag.NewSet(dep)
		for a := range ancestors {
			path.Add(a)
		}
		walk(g, dep, prefix+indent, path, lines)
	}
}
