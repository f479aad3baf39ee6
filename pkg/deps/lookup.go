package deps

import (
	"context"
	"slices"

	"github.com/matzehuels/apkgraph/pkg/dag"
	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/index"
	"github.com/matzehuels/apkgraph/pkg/source"
)

// Lookup returns the direct dependencies of one package.
//
// An empty version means "match by name only". A nil error with an empty
// slice means the package exists and has no dependencies; a missing package
// is an error with code RECORD_NOT_FOUND.
type Lookup interface {
	Lookup(ctx context.Context, name, version string) ([]string, error)
}

// IndexLookup answers lookups from a repository index.
// The source is fetched and parsed on first use, then kept for the lifetime
// of the lookup.
type IndexLookup struct {
	src    source.Source
	byName map[string][]index.Record
	loaded bool
}

// NewIndexLookup returns a lookup over the index provided by src.
func NewIndexLookup(src source.Source) *IndexLookup {
	return &IndexLookup{src: src}
}

// NewRecordLookup returns a lookup over already parsed records.
func NewRecordLookup(records []index.Record) *IndexLookup {
	l := &IndexLookup{}
	l.load(records)
	return l
}

// Lookup returns the dependencies of the first record named name, or of the
// record matching both name and version when version is not empty.
func (l *IndexLookup) Lookup(ctx context.Context, name, version string) ([]string, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for _, rec := range l.byName[name] {
		if version == "" || rec.Version == version {
			return depsOf(rec.Depends), nil
		}
	}
	if version != "" {
		return nil, apkerr.New(apkerr.ErrCodeRecordNotFound, "package %s version %s not found in index", name, version)
	}
	return nil, apkerr.New(apkerr.ErrCodeRecordNotFound, "package %s not found in index", name)
}

// Len returns the number of parsed records, or 0 before the first lookup.
func (l *IndexLookup) Len() int {
	n := 0
	for _, recs := range l.byName {
		n += len(recs)
	}
	return n
}

func (l *IndexLookup) ensure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apkerr.Wrap(apkerr.ErrCodeSourceUnavailable, err, "lookup cancelled")
	}
	if l.loaded {
		return nil
	}
	data, err := l.src.Fetch(ctx)
	if err != nil {
		return apkerr.Wrap(apkerr.ErrCodeSourceUnavailable, err, "load index %s", l.src.Name())
	}
	l.load(index.Parse(data))
	return nil
}

func (l *IndexLookup) load(records []index.Record) {
	l.byName = make(map[string][]index.Record)
	for _, rec := range records {
		l.byName[rec.Name] = append(l.byName[rec.Name], rec)
	}
	l.loaded = true
}

// GraphLookup answers lookups from an adjacency mapping. Versions are ignored.
type GraphLookup struct {
	g *dag.Graph
}

// NewGraphLookup returns a lookup over g.
func NewGraphLookup(g *dag.Graph) *GraphLookup {
	return &GraphLookup{g: g}
}

// Lookup returns the dependencies recorded for name.
func (l *GraphLookup) Lookup(ctx context.Context, name, _ string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, apkerr.Wrap(apkerr.ErrCodeSourceUnavailable, err, "lookup cancelled")
	}
	if !l.g.Has(name) {
		return nil, apkerr.New(apkerr.ErrCodeRecordNotFound, "package %s not found in graph", name)
	}
	return depsOf(l.g.Deps(name)), nil
}

func depsOf(d []string) []string {
	if len(d) == 0 {
		return []string{}
	}
	return slices.Clone(d)
}

var (
	_ Lookup = (*IndexLookup)(nil)
	_ Lookup = (*GraphLookup)(nil)
)
