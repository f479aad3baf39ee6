package pipeline

import (
	"bytes"
	"context"
	"time"

	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
	graphio "github.com/matzehuels/apkgraph/pkg/io"
	"github.com/matzehuels/apkgraph/pkg/observability"
	"github.com/matzehuels/apkgraph/pkg/render"
	"github.com/matzehuels/apkgraph/pkg/render/listing"
	"github.com/matzehuels/apkgraph/pkg/render/nodelink"
	"github.com/matzehuels/apkgraph/pkg/render/tree"
)

// RenderClosure returns the flat dependency list: a header naming the root
// and the sorted closure.
func RenderClosure(res *Result) []byte {
	return listing.Text(listing.ClosureLines(res.Root, res.Closure))
}

// RenderTree returns the ASCII dependency tree.
func RenderTree(res *Result) []byte {
	return listing.Text(tree.Render(res.Root, res.Graph))
}

// RenderOrder returns the load order listing, with a cycle notice when the
// order is incomplete.
func RenderOrder(res *Result) []byte {
	return listing.Text(listing.LoadOrderLines(res.Root, res.Order, res.Complete, res.Unordered()))
}

// RenderEdges returns the "from -> to" edge list.
func RenderEdges(res *Result) []byte {
	return listing.Text(nodelink.EdgeList(res.Graph))
}

// RenderJSON returns the graph as a JSON document.
func RenderJSON(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(res.Graph, res.Root, &buf); err != nil {
		return nil, apkerr.Wrap(apkerr.ErrCodeInternal, err, "encode graph")
	}
	return buf.Bytes(), nil
}

// RenderDiagram draws the graph with engine and encodes it as format.
// DOT output is the Graphviz source regardless of engine.
func RenderDiagram(ctx context.Context, res *Result, engine string, format render.Format) (data []byte, err error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, string(format))
	defer func() { hooks.OnRenderComplete(ctx, string(format), time.Since(start), err) }()

	if err := ValidateEngine(engine); err != nil {
		return nil, err
	}
	if format == render.FormatDOT {
		return []byte(nodelink.ToDOT(res.Graph, res.Root)), nil
	}

	var svg []byte
	switch engine {
	case EngineGraphviz:
		svg, err = nodelink.RenderGraphviz(ctx, nodelink.ToDOT(res.Graph, res.Root))
		if err != nil {
			return nil, apkerr.Wrap(apkerr.ErrCodeInternal, err, "graphviz")
		}
	default:
		pos := nodelink.Layout(res.Graph, res.Root)
		svg = nodelink.RenderSVG(nodelink.Diagram(res.Graph, pos))
	}

	out, err := render.Convert(ctx, svg, format)
	if err != nil {
		return nil, apkerr.Wrap(apkerr.ErrCodeInternal, err, "convert diagram to %s", format)
	}
	return out, nil
}
