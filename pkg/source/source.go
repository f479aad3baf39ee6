package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/matzehuels/apkgraph/pkg/cache"
)

// IndexFile is the name of the index member inside a repository archive.
const IndexFile = "APKINDEX"

// ArchiveFile is the conventional archive name at the root of a repository.
const ArchiveFile = IndexFile + ".tar.gz"

// Source yields the plain-text package index.
type Source interface {
	// Fetch returns the index text. Implementations may cache.
	Fetch(ctx context.Context) ([]byte, error)
	// Name identifies the source in logs and messages.
	Name() string
}

// Options configures [New].
type Options struct {
	Cache     cache.Cache   // nil disables caching
	TTL       time.Duration // cache entry lifetime, 0 = no expiry
	Refresh   bool          // bypass cache reads (still writes)
	Timeout   time.Duration // per-request timeout
	Attempts  int           // download attempts
	UserAgent string        // User-Agent header for downloads
}

// New returns a [Remote] for http(s) locations and a [File] otherwise.
// Remote locations that do not name an index file get [ArchiveFile] appended,
// so both "https://mirror/alpine/v3.19/main/x86_64" and the full archive URL
// work.
func New(location string, opts Options) Source {
	if IsRemote(location) {
		r := NewRemote(IndexURL(location))
		r.Cache = opts.Cache
		r.TTL = opts.TTL
		r.Refresh = opts.Refresh
		r.UserAgent = opts.UserAgent
		if opts.Attempts > 0 {
			r.Attempts = opts.Attempts
		}
		if opts.Timeout > 0 {
			r.Timeout = opts.Timeout
		}
		return r
	}
	return &File{Path: location}
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// IndexURL normalises a repository URL to the URL of its index.
func IndexURL(repo string) string {
	trimmed := strings.TrimRight(repo, "/")
	if strings.HasPrefix(path.Base(trimmed), IndexFile) {
		return trimmed
	}
	return trimmed + "/" + ArchiveFile
}

// File reads the index from a local file.
type File struct {
	Path string
}

// Fetch reads and, if needed, extracts the file.
func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return Extract(data)
}

// Name returns the file path.
func (f *File) Name() string { return f.Path }

// Ensure implementations satisfy Source.
var (
	_ Source = (*File)(nil)
	_ Source = (*Remote)(nil)
)
