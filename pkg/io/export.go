package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/apkgraph/pkg/dag"
)

type graph struct {
	Root  string `json:"root,omitempty"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID         string `json:"id"`
	Unresolved bool   `json:"unresolved,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes g as JSON and writes it to w. root may be empty.
func WriteJSON(g *dag.Graph, root string, w io.Writer) error {
	nodes := g.Nodes()
	edges := g.Edges()
	out := graph{
		Root:  root,
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	for i, id := range nodes {
		out.Nodes[i] = node{ID: id, Unresolved: !g.Has(id)}
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *dag.Graph, root, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, root, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
