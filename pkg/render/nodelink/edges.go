package nodelink

import (
	"bufio"
	"io"

	"github.com/matzehuels/apkgraph/pkg/dag"
)

// EdgeList returns one "from -> to" line per edge, in key order then
// declaration order. Repeated dependencies produce repeated lines.
func EdgeList(g *dag.Graph) []string {
	edges := g.Edges()
	lines := make([]string, len(edges))
	for i, e := range edges {
		lines[i] = e.From + " -> " + e.To
	}
	return lines
}

// WriteEdgeList writes [EdgeList] to w, newline terminated.
func WriteEdgeList(w io.Writer, g *dag.Graph) error {
	bw := bufio.NewWriter(w)
	for _, line := range EdgeList(g) {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
