// Package pipeline runs one resolution: build the lookup, walk the graph,
// sort it, and render the requested views.
//
// The CLI is a thin layer over this package. A [Runner] holds the
// long-lived pieces (index cache, logger); everything computed for a run
// lives in the returned [Result] and is discarded with it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Resolve(ctx, pipeline.Options{
//	    Package:  "app",
//	    RepoURL:  "graph.txt",
//	    TestMode: true,
//	})
//	if err != nil {
//	    return err
//	}
//	tree.Write(os.Stdout, res.Root, res.Graph)
//
// Against a real index, dependency tokens are looked up by name, so a
// capability such as "so:libc.musl-x86_64.so.1" fails with RECORD_NOT_FOUND
// unless the index carries a record of that name.
//
// Rendering helpers ([RenderClosure], [RenderOrder], [RenderDiagram], ...)
// turn a Result into bytes. They never touch the filesystem.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apkgraph/pkg/dag"
	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCacheTTL is how long a downloaded index stays fresh when
	// Options.CacheTTL is left unset.
	DefaultCacheTTL = 6 * time.Hour

	// NoExpiry keeps a downloaded index cached until it is refreshed.
	NoExpiry time.Duration = -1

	// DefaultAttempts is the number of download attempts per index.
	DefaultAttempts = 3

	// DefaultEngine is the default diagram engine.
	DefaultEngine = EngineBuiltin
)

// Diagram engines.
const (
	EngineBuiltin  = "builtin"
	EngineGraphviz = "graphviz"
)

// ValidEngines is the set of supported diagram engines.
var ValidEngines = map[string]bool{
	EngineBuiltin:  true,
	EngineGraphviz: true,
}

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return apkerr.New(apkerr.ErrCodeInvalidInput, "invalid engine: %q (must be one of: builtin, graphviz)", engine)
	}
	return nil
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures one resolution run.
type Options struct {
	Package string `json:"package"`
	Version string `json:"version,omitempty"` // Applies to the root package only

	// RepoURL is the index location: an http(s) repository or archive URL,
	// or a local index path. In test mode it is the adjacency file
	// (".json" files are read as graph exports).
	RepoURL  string `json:"repo_url"`
	TestMode bool   `json:"test_mode,omitempty"`

	MaxNodes int           `json:"max_nodes,omitempty"`
	Refresh  bool          `json:"refresh,omitempty"`
	CacheTTL time.Duration `json:"cache_ttl,omitempty"` // 0 = DefaultCacheTTL, NoExpiry = never expire
	Timeout  time.Duration `json:"timeout,omitempty"`
	Attempts int           `json:"attempts,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := apkerr.ValidatePackageName(o.Package); err != nil {
		return err
	}
	if err := apkerr.ValidateVersion(o.Version); err != nil {
		return err
	}
	if strings.TrimSpace(o.RepoURL) == "" {
		return apkerr.New(apkerr.ErrCodeInvalidInput, "repository URL or path is required")
	}
	if !o.TestMode && source.IsRemote(o.RepoURL) {
		if err := apkerr.ValidateURL(o.RepoURL); err != nil {
			return err
		}
	}
	if o.MaxNodes < 0 {
		return apkerr.New(apkerr.ErrCodeInvalidInput, "max nodes must not be negative")
	}

	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is everything computed by one successful run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Root is the requested package.
	Root string

	// Graph is the adjacency of every package reachable from Root.
	Graph *dag.Graph

	// Closure is the set of packages reachable from Root.
	Closure dag.Set

	// Order is the load order; a prefix when Complete is false.
	Order    []string
	Complete bool

	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Source      string
	NodeCount   int
	EdgeCount   int
	ClosureSize int
	ResolveTime time.Duration
	SortTime    time.Duration
}

// Unordered returns the packages missing from the load order.
func (r *Result) Unordered() []string {
	return dag.Unordered(r.Graph, r.Order)
}

// CycleError returns a CYCLE_DETECTED diagnostic when the load order is
// incomplete, or nil. It is informational: every view still renders.
func (r *Result) CycleError() error {
	if r.Complete {
		return nil
	}
	return apkerr.New(apkerr.ErrCodeCycleDetected,
		"dependency cycle: %d of %d packages cannot be ordered", len(r.Unordered()), len(r.Graph.Nodes()))
}
