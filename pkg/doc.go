// Package pkg provides the libraries behind apkgraph, an Alpine package
// dependency resolver.
//
// # Overview
//
// apkgraph reads an APKINDEX, follows the "D:" dependency lists of one
// package, and reports what it finds: the transitive closure, an ASCII tree,
// a load order and a node-link diagram.
//
// # Architecture
//
//	APKINDEX (URL, archive or file)
//	         ↓
//	    [source] package (download, cache, decompress)
//	         ↓
//	    [index] package (parse records)
//	         ↓
//	    [deps] package (lookup + breadth-first graph build)
//	         ↓
//	    [dag] package (adjacency graph, topological sort)
//	         ↓
//	    [render] packages (tree, listing, node-link diagram)
//
// # Quick Start
//
//	src := source.New("./APKINDEX", source.Options{})
//	b := deps.NewBuilder(deps.NewIndexLookup(src), deps.Options{})
//	res, err := b.Build(ctx, "app", "")
//	if err != nil {
//	    return err // RECORD_NOT_FOUND for any token without a record, "so:" capabilities included
//	}
//	tree.Write(os.Stdout, "app", res.Graph)
//	order, complete := dag.TopoSort(res.Graph)
//
// # Main Packages
//
// [index] - APKINDEX record parser. Malformed blocks are skipped, never fatal.
//
// [source] - Index sources: local files and remote repositories, with retry,
// caching and gzip/tar extraction.
//
// [deps] - Dependency lookups (index or test-mode graph) and the graph builder.
//
// [dag] - Insertion-ordered adjacency graph, sets and Kahn's topological sort.
//
// [render/tree], [render/listing], [render/nodelink] - Text and diagram views.
//
// [pipeline] - One resolution run end to end, shared by the CLI.
//
// [cache] - File, Redis and no-op caches for downloaded indexes.
//
// [io] - JSON export and import of resolved graphs.
//
// [errors] - Coded errors and input validation.
//
// [index]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/index
// [source]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/source
// [deps]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/deps
// [dag]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/dag
// [render]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/render
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/render/tree
// [render/listing]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/render/listing
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/apkgraph/pkg/errors
package pkg
