package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/apkgraph/pkg/dag"
)

// ReadJSON decodes a JSON graph from r. It returns the graph and the
// recorded root, which is empty when the document has none.
//
// Resolved nodes become adjacency keys in node order, each with the
// dependencies of its edges in edge order. ReadJSON fails on malformed
// JSON, empty or duplicate node IDs, edges that reference unknown nodes,
// and edges leaving an unresolved node.
func ReadJSON(r io.Reader) (*dag.Graph, string, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}

	resolved := make(map[string]bool, len(data.Nodes))
	for _, n := range data.Nodes {
		if n.ID == "" {
			return nil, "", fmt.Errorf("node: %w", dag.ErrInvalidNodeID)
		}
		if _, dup := resolved[n.ID]; dup {
			return nil, "", fmt.Errorf("node %s: %w", n.ID, dag.ErrDuplicateNodeID)
		}
		resolved[n.ID] = !n.Unresolved
	}

	adj := make(map[string][]string, len(data.Nodes))
	for _, e := range data.Edges {
		fromResolved, fromKnown := resolved[e.From]
		_, toKnown := resolved[e.To]
		if !fromKnown || !toKnown {
			return nil, "", fmt.Errorf("edge %s->%s: %w", e.From, e.To, dag.ErrUnknownNode)
		}
		if !fromResolved {
			return nil, "", fmt.Errorf("edge %s->%s: source node is unresolved", e.From, e.To)
		}
		adj[e.From] = append(adj[e.From], e.To)
	}

	g := dag.New()
	for _, n := range data.Nodes {
		if resolved[n.ID] {
			g.Set(n.ID, adj[n.ID])
		}
	}
	return g, data.Root, nil
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*dag.Graph, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
