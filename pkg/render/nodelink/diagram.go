package nodelink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/apkgraph/pkg/dag"
)

const (
	boxWidth  = 100.0
	boxHeight = 32.0
	margin    = 20.0
	fontSize  = 12.0
)

// Box is a node rectangle. X and Y are the top-left corner.
type Box struct {
	Node       string
	X, Y, W, H float64
}

// Center returns the centre of the box.
func (b Box) Center() (float64, float64) { return b.X + b.W/2, b.Y + b.H/2 }

// Line connects the bottom of a parent box to the top of a dependency box.
type Line struct {
	From, To       string
	X1, Y1, X2, Y2 float64
}

// Drawing is a laid-out diagram ready to be written as SVG.
type Drawing struct {
	Boxes []Box
	Lines []Line
	// Bounds of all boxes, margin included.
	MinX, MinY, Width, Height float64
}

// Diagram assembles a drawing from a layout: one box per positioned node
// and one line per edge whose endpoints are both positioned.
func Diagram(g *dag.Graph, pos *Positions) Drawing {
	var d Drawing
	for _, p := range pos.All() {
		d.Boxes = append(d.Boxes, Box{
			Node: p.Node,
			X:    float64(p.X) - boxWidth/2,
			Y:    float64(p.Y) - boxHeight/2,
			W:    boxWidth,
			H:    boxHeight,
		})
	}

	for _, e := range g.Edges() {
		from, ok1 := pos.Get(e.From)
		to, ok2 := pos.Get(e.To)
		if !ok1 || !ok2 {
			continue
		}
		d.Lines = append(d.Lines, Line{
			From: e.From, To: e.To,
			X1: float64(from.X), Y1: float64(from.Y) + boxHeight/2,
			X2: float64(to.X), Y2: float64(to.Y) - boxHeight/2,
		})
	}

	d.MinX, d.MinY, d.Width, d.Height = bounds(d.Boxes)
	return d
}

func bounds(boxes []Box) (minX, minY, w, h float64) {
	if len(boxes) == 0 {
		return 0, 0, 2 * margin, 2 * margin
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range boxes {
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.W)
		maxY = max(maxY, b.Y+b.H)
	}
	return minX - margin, minY - margin, maxX - minX + 2*margin, maxY - minY + 2*margin
}

// RenderSVG writes the drawing as a standalone SVG document. Lines are drawn
// first so boxes sit on top of them.
func RenderSVG(d Drawing) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		d.MinX, d.MinY, d.Width, d.Height, d.Width, d.Height)
	fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white"/>`+"\n",
		d.MinX, d.MinY, d.Width, d.Height)

	buf.WriteString(`  <g stroke="#555" stroke-width="1.5" fill="none">` + "\n")
	for _, l := range d.Lines {
		fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", l.X1, l.Y1, l.X2, l.Y2)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g font-family="monospace" font-size="%.0f">`+"\n", fontSize)
	for _, b := range d.Boxes {
		cx, cy := b.Center()
		fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="#eef3fb" stroke="#335"/>`+"\n",
			b.X, b.Y, b.W, b.H)
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			cx, cy, escapeXML(b.Node))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
