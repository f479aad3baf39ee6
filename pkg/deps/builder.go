package deps

import (
	"context"
	"time"

	"github.com/matzehuels/apkgraph/pkg/dag"
	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/observability"
)

// Builder computes the dependency subgraph reachable from a root package.
type Builder struct {
	lookup Lookup
	opts   Options
}

// NewBuilder returns a Builder that resolves packages through lookup.
func NewBuilder(lookup Lookup, opts Options) *Builder {
	return &Builder{lookup: lookup, opts: opts.WithDefaults()}
}

// Build walks the dependencies of root breadth-first.
//
// rootVersion (may be empty) applies to the root lookup only. Each package is
// looked up once; its dependencies are recorded in declaration order and the
// unvisited ones are queued. Any lookup error aborts the walk and is returned
// as is.
func (b *Builder) Build(ctx context.Context, root, rootVersion string) (*Result, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnResolveStart(ctx, root, rootVersion)

	res, err := b.build(ctx, root, rootVersion)

	nodes := 0
	if res != nil {
		nodes = res.Graph.Len()
	}
	hooks.OnResolveComplete(ctx, root, nodes, time.Since(start), err)
	return res, err
}

func (b *Builder) build(ctx context.Context, root, rootVersion string) (*Result, error) {
	g := dag.New()
	closure := dag.NewSet()
	visited := dag.NewSet()
	queue := []string{root}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited.Has(name) {
			continue
		}
		visited.Add(name)
		if b.opts.MaxNodes > 0 && visited.Len() > b.opts.MaxNodes {
			return nil, apkerr.New(apkerr.ErrCodeLimitExceeded,
				"dependency graph of %s exceeds %d packages", root, b.opts.MaxNodes)
		}

		version := ""
		if name == root {
			version = rootVersion
		}
		deps, err := b.lookup.Lookup(ctx, name, version)
		observability.Pipeline().OnLookup(ctx, name, len(deps), err)
		if err != nil {
			return nil, err
		}
		b.opts.Logger("resolved %s: %d dependencies", name, len(deps))

		g.Set(name, deps)
		for _, dep := range deps {
			closure.Add(dep)
			if !visited.Has(dep) {
				queue = append(queue, dep)
			}
		}
	}

	return &Result{Graph: g, Closure: closure}, nil
}
