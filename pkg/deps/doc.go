// Package deps resolves the transitive dependency closure of a package.
//
// # Overview
//
// Resolution has two layers:
//
//  1. A [Lookup] answers "what does package X depend on?" for one package.
//     [IndexLookup] reads a repository index through a [source.Source];
//     [GraphLookup] reads a prepared adjacency mapping (test mode).
//  2. A [Builder] walks the lookup breadth-first from a root and records the
//     reachable subgraph as a [dag.Graph] plus the closure set.
//
// # Building
//
//	lookup := deps.NewIndexLookup(source.New(repoURL, source.Options{}))
//	res, err := deps.NewBuilder(lookup, deps.Options{}).Build(ctx, "busybox", "")
//
// Siblings are visited in declaration order, so the same input always yields
// the same graph. The root version, if any, is used for the root lookup only:
// transitive dependencies are declared without versions and are looked up by
// name.
//
// A failed lookup for any package aborts the build. There is no partial
// result; callers either get the whole closure or an error whose code is
// SOURCE_UNAVAILABLE or RECORD_NOT_FOUND.
//
// # Test Mode
//
// [ParseGraphFile] reads a plain adjacency file, one package per line:
//
//	A: B C
//	B: D
//	C: D
//	D:
//
// Lines without a colon are ignored and a repeated name overwrites the
// earlier line.
//
// [source.Source]: github.com/matzehuels/apkgraph/pkg/source.Source
// [dag.Graph]: github.com/matzehuels/apkgraph/pkg/dag.Graph
package deps
