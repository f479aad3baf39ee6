package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/apkgraph/pkg/cache"
	"github.com/matzehuels/apkgraph/pkg/httputil"
)

func TestIndexURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://mirror/alpine/v3.19/main/x86_64", "https://mirror/alpine/v3.19/main/x86_64/APKINDEX.tar.gz"},
		{"https://mirror/alpine/v3.19/main/x86_64/", "https://mirror/alpine/v3.19/main/x86_64/APKINDEX.tar.gz"},
		{"https://mirror/x86_64/APKINDEX.tar.gz", "https://mirror/x86_64/APKINDEX.tar.gz"},
		{"http://localhost:8080/APKINDEX", "http://localhost:8080/APKINDEX"},
	}
	for _, tt := range tests {
		if got := IndexURL(tt.in); got != tt.want {
			t.Errorf("IndexURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	if _, ok := New("https://example.org/repo", Options{}).(*Remote); !ok {
		t.Error("New(https) should return *Remote")
	}
	if _, ok := New("./APKINDEX", Options{}).(*File); !ok {
		t.Error("New(path) should return *File")
	}

	r := New("http://example.org/repo", Options{Attempts: 5, Refresh: true}).(*Remote)
	if r.Attempts != 5 || !r.Refresh {
		t.Errorf("options not applied: %+v", r)
	}
	if r.Name() != "http://example.org/repo/APKINDEX.tar.gz" {
		t.Errorf("Name() = %q", r.Name())
	}
}

func TestFileFetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ArchiveFile)
	archive := gzipBytes(t, makeTar(t, member{IndexFile, sampleIndex}))
	if err := os.WriteFile(path, archive, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := (&File{Path: path}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(got) != sampleIndex {
		t.Errorf("Fetch() = %q, want %q", got, sampleIndex)
	}
}

func TestFileFetchMissing(t *testing.T) {
	_, err := (&File{Path: filepath.Join(t.TempDir(), "nope")}).Fetch(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch() error = %v, want not-exist", err)
	}
}

func newTestRemote(url string) *Remote {
	r := NewRemote(url)
	r.Delay = time.Millisecond
	return r
}

func TestRemoteFetch(t *testing.T) {
	archive := gzipBytes(t, makeTar(t, member{IndexFile, sampleIndex}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/x86_64/"+ArchiveFile {
			http.NotFound(w, r)
			return
		}
		w.Write(archive)
	}))
	defer srv.Close()

	src := New(srv.URL+"/main/x86_64", Options{})
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(got) != sampleIndex {
		t.Errorf("Fetch() = %q, want %q", got, sampleIndex)
	}
}

func TestRemoteSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	src := New(srv.URL+"/APKINDEX", Options{UserAgent: "apkgraph/test"})
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "apkgraph/test" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestRemoteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	got, err := newTestRemote(srv.URL + "/APKINDEX").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(got) != sampleIndex {
		t.Errorf("Fetch() = %q", got)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server called %d times, want 3", n)
	}
}

func TestRemoteNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL + "/APKINDEX").Fetch(context.Background())
	if !errors.Is(err, httputil.ErrNotFound) {
		t.Errorf("Fetch() error = %v, want ErrNotFound", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}

func TestRemoteUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	r := newTestRemote(srv.URL + "/APKINDEX")
	r.Cache = c
	for range 2 {
		if _, err := r.Fetch(ctx); err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1 (second fetch cached)", n)
	}

	r.Refresh = true
	if _, err := r.Fetch(ctx); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server called %d times after refresh, want 2", n)
	}
}

func TestRemoteCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRemote(srv.URL + "/APKINDEX").Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}
