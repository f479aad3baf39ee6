package deps

import (
	"github.com/matzehuels/apkgraph/pkg/dag"
)

// Options configures a [Builder].
type Options struct {
	MaxNodes int                  // Abort after visiting this many packages (0 = unlimited)
	Logger   func(string, ...any) // Progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxNodes < 0 {
		opts.MaxNodes = 0
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Result is the outcome of a successful build.
type Result struct {
	// Graph maps every visited package to its declared dependencies, keyed
	// in discovery order. Every dependency is itself a key.
	Graph *dag.Graph
	// Closure holds every package reachable from the root. The root itself
	// is included only when a cycle leads back to it.
	Closure dag.Set
}
