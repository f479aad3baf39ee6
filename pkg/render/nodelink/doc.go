// Package nodelink renders dependency graphs as node-link diagrams.
//
// # Overview
//
// Nodes appear as boxes connected by lines, parents above their
// dependencies. Two engines produce the diagram:
//
//   - builtin: [Layout] places nodes on a simple tree grid, [Diagram]
//     turns the placement into boxes and lines, [RenderSVG] writes SVG.
//     Pure Go, deterministic, no external tools.
//   - graphviz: [ToDOT] emits DOT source and [RenderGraphviz] lays it out
//     with the Graphviz dot engine (in process, via go-graphviz).
//
// [EdgeList] gives the plain-text form of the same adjacency.
//
// # Builtin Layout
//
// The root sits at ([AnchorX], [AnchorY]). A node's n dependencies are
// spread over max(n*[NodeWidth], [MinRowWidth]) pixels centred beneath it,
// one [LevelHeight] lower. The walk is depth-first in declaration order and
// the first placement of a node wins: a shared dependency stays under
// whichever parent reached it first, and cycles terminate because placed
// nodes are not revisited. The result is deterministic for a given graph
// but depends on declaration order.
//
//	pos := nodelink.Layout(g, "busybox")
//	svg := nodelink.RenderSVG(nodelink.Diagram(g, pos))
//
// # Graphviz
//
//	dot := nodelink.ToDOT(g, "busybox")
//	svg, err := nodelink.RenderGraphviz(ctx, dot)
package nodelink
