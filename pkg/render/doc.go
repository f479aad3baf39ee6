// Package render holds the output renderers for resolved dependency graphs.
//
// Subpackages:
//
//   - [tree]: indented ASCII tree with cycle markers
//   - [listing]: flat closure list and load order listing
//   - [nodelink]: edge list and node-link diagrams (builtin SVG or Graphviz)
//
// This package converts SVG diagrams into raster and print formats with
// the external rsvg-convert tool (librsvg).
//
//	svg := nodelink.RenderSVG(nodelink.Diagram(g, pos))
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [tree]: github.com/matzehuels/apkgraph/pkg/render/tree
// [listing]: github.com/matzehuels/apkgraph/pkg/render/listing
// [nodelink]: github.com/matzehuels/apkgraph/pkg/render/nodelink
package render
