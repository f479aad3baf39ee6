// Package dag provides the dependency graph built during one resolution run
// and the algorithms that only need its shape.
//
// # Overview
//
// A [Graph] maps each package name to the ordered list of its direct
// dependencies. Keys are kept in insertion order, which for a graph built by
// [deps.Builder] is the order in which packages were discovered, so every
// renderer produces reproducible output. Despite the package name, a Graph
// may contain cycles: package indexes do not forbid them, and the renderers
// are required to degrade gracefully rather than reject the input.
//
// # Basic Usage
//
//	g := dag.New()
//	g.Set("app", []string{"lib", "log"})
//	g.Set("lib", []string{"log"})
//	g.Set("log", nil)
//
//	order, complete := dag.TopoSort(g) // [log lib app], true
//
// # Load Order
//
// [TopoSort] is a Kahn-style sort whose in-degree counts dependencies, so
// packages without dependencies come first and each package follows
// everything it depends on. On cyclic input it returns the ordered prefix
// and complete=false; [Unordered] lists what was left out.
//
// # Closure
//
// A [Set] holds the transitive closure of a root. It is unordered; use
// [Set.Sorted] for stable output.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. A resolution run owns its
// graph exclusively; parallel runs must each build their own.
//
// [deps.Builder]: github.com/matzehuels/apkgraph/pkg/deps.Builder
package dag
