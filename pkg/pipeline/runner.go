package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/apkgraph/pkg/buildinfo"
	"github.com/matzehuels/apkgraph/pkg/cache"
	"github.com/matzehuels/apkgraph/pkg/dag"
	"github.com/matzehuels/apkgraph/pkg/deps"
	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
	graphio "github.com/matzehuels/apkgraph/pkg/io"
	"github.com/matzehuels/apkgraph/pkg/source"
)

// Runner resolves packages against an index, caching downloaded indexes.
//
// The Runner keeps no per-run state, so one Runner can serve several
// independent runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses the charmbracelet default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Resolve builds the dependency graph of opts.Package, computes its closure
// and load order, and returns them. Nothing is rendered or written.
func (r *Runner) Resolve(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])

	lookup, err := r.Lookup(ctx, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	builder := deps.NewBuilder(lookup, deps.Options{
		MaxNodes: opts.MaxNodes,
		Logger:   func(format string, args ...any) { logger.Debugf(format, args...) },
	})
	built, err := builder.Build(ctx, opts.Package, opts.Version)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:   runID,
		Root:    opts.Package,
		Graph:   built.Graph,
		Closure: built.Closure,
	}
	res.Stats.Source = opts.RepoURL
	res.Stats.ResolveTime = time.Since(start)
	res.Stats.NodeCount = built.Graph.Len()
	res.Stats.EdgeCount = built.Graph.EdgeCount()
	res.Stats.ClosureSize = built.Closure.Len()

	logger.Info("resolved dependencies",
		"package", opts.Package,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.ResolveTime)

	sortStart := time.Now()
	res.Order, res.Complete = dag.TopoSort(res.Graph)
	res.Stats.SortTime = time.Since(sortStart)
	if !res.Complete {
		logger.Warn("load order incomplete", "unordered", res.Unordered())
	}

	return res, nil
}

// cacheTTL maps an option TTL onto the source's convention, where 0 means
// no expiry.
func cacheTTL(ttl time.Duration) time.Duration {
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Lookup builds the dependency lookup described by opts: a graph lookup
// over the adjacency file in test mode, an index lookup otherwise.
func (r *Runner) Lookup(ctx context.Context, opts Options) (deps.Lookup, error) {
	if opts.TestMode {
		g, err := loadGraphFile(opts.RepoURL)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("loaded test graph", "path", opts.RepoURL, "packages", g.Len())
		return deps.NewGraphLookup(g), nil
	}

	src := source.New(opts.RepoURL, source.Options{
		Cache:     r.Cache,
		TTL:       cacheTTL(opts.CacheTTL),
		Refresh:   opts.Refresh,
		Timeout:   opts.Timeout,
		Attempts:  opts.Attempts,
		UserAgent: buildinfo.UserAgent(),
	})
	opts.Logger.Debug("using index", "source", src.Name())
	return deps.NewIndexLookup(src), nil
}

func loadGraphFile(path string) (*dag.Graph, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		g, _, err := graphio.ImportJSON(path)
		if err != nil {
			return nil, apkerr.Wrap(apkerr.ErrCodeSourceUnavailable, err, "load graph %s", path)
		}
		return g, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apkerr.Wrap(apkerr.ErrCodeSourceUnavailable, err, "open graph file")
	}
	defer f.Close()
	return deps.ParseGraphFile(f)
}

// Close releases resources held by the runner (the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
