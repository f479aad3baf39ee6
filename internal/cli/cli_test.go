package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/apkgraph/internal/config"
	"github.com/matzehuels/apkgraph/pkg/cache"
	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/observability"
	"github.com/matzehuels/apkgraph/pkg/pipeline"
)

const diamondGraph = "A: B C\nB: D\nC: D\nD:\n"

// isolate runs the test in a fresh directory with no config, .env or
// APKGRAPH_* variables leaking in from the host.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{
		"APKGRAPH_REPO_URL", "APKGRAPH_CACHE_BACKEND", "APKGRAPH_CACHE_DIR",
		"APKGRAPH_REDIS_URL", "APKGRAPH_CACHE_TTL", "APKGRAPH_HTTP_TIMEOUT",
		"APKGRAPH_HTTP_ATTEMPTS", "APKGRAPH_MAX_NODES",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)

	prev := uiOut
	uiOut = io.Discard
	t.Cleanup(func() {
		uiOut = prev
		observability.Reset()
	})
	return dir
}

func writeGraph(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestResolveCommand(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)
	outFile := filepath.Join(dir, "deps.txt")

	out, err := execute(t, "resolve", "-p", "A", "--test-mode", "-r", in, "-o", outFile, "--ascii-tree")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if got, want := readFile(t, outFile), "Dependencies of A:\nB\nC\nD\n"; got != want {
		t.Errorf("list file = %q, want %q", got, want)
	}
	if !strings.HasPrefix(out, "A\n") || !strings.Contains(out, "└── C") {
		t.Errorf("tree output = %q", out)
	}
}

func TestRootRunsResolve(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	out, err := execute(t, "--package-name", "B", "--test-mode", "--repo-url", in)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty without --ascii-tree", out)
	}
	if got, want := readFile(t, filepath.Join(dir, defaultListFile)), "Dependencies of B:\nD\n"; got != want {
		t.Errorf("list file = %q, want %q", got, want)
	}
}

func TestResolveJSONExport(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	if _, err := execute(t, "resolve", "-p", "A", "--test-mode", "-r", in, "--json", "graph.json"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got := readFile(t, filepath.Join(dir, "graph.json"))
	if !strings.Contains(got, `"root": "A"`) || !strings.Contains(got, `"edges"`) {
		t.Errorf("json = %s", got)
	}

	// The export is a valid test-mode input.
	if _, err := execute(t, "resolve", "-p", "A", "--test-mode", "-r", "graph.json", "-o", "again.txt"); err != nil {
		t.Fatalf("resolve from json: %v", err)
	}
	if a, b := readFile(t, "deps.txt"), readFile(t, "again.txt"); a != b {
		t.Errorf("json round trip changed the closure: %q vs %q", a, b)
	}
}

func TestResolveFailureWritesNothing(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, "A: B missing\nB:\n")
	outFile := filepath.Join(dir, "deps.txt")

	_, err := execute(t, "resolve", "-p", "A", "--test-mode", "-r", in, "-o", outFile)
	if !apkerr.Is(err, apkerr.ErrCodeRecordNotFound) {
		t.Fatalf("err = %v, want RECORD_NOT_FOUND", err)
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed resolve (stat err %v)", err)
	}
}

func TestResolveMissingPackage(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	_, err := execute(t, "resolve", "--test-mode", "-r", in)
	if !apkerr.Is(err, apkerr.ErrCodeInvalidPackage) {
		t.Errorf("err = %v, want INVALID_PACKAGE", err)
	}
}

func TestResolveMissingRepo(t *testing.T) {
	isolate(t)

	_, err := execute(t, "resolve", "-p", "busybox")
	if !apkerr.Is(err, apkerr.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestResolveMaxNodes(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	_, err := execute(t, "resolve", "-p", "A", "--test-mode", "-r", in, "--max-nodes", "2")
	if !apkerr.Is(err, apkerr.ErrCodeLimitExceeded) {
		t.Errorf("err = %v, want LIMIT_EXCEEDED", err)
	}
}

func TestTreeCommand(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, "A: B\nB: A\n")

	out, err := execute(t, "tree", "-p", "A", "--test-mode", "-r", in)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !strings.HasPrefix(out, "A\n") || !strings.Contains(out, "A (cycle)") {
		t.Errorf("tree output = %q", out)
	}
}

func TestOrderCommand(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  string
	}{
		{
			name:  "diamond",
			graph: diamondGraph,
			want:  "Load order for A:\nD\nB\nC\nA\n",
		},
		{
			name:  "cycle",
			graph: "A: B\nB: A\n",
			want:  "Load order for A:\nCycle detected: 2 packages could not be ordered: A, B\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			in := writeGraph(t, dir, tt.graph)

			out, err := execute(t, "order", "-p", "A", "--test-mode", "-r", in)
			if err != nil {
				t.Fatalf("order: %v", err)
			}
			if out != tt.want {
				t.Errorf("order output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestGraphCommand(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	if _, err := execute(t, "graph", "-p", "A", "--test-mode", "-r", in); err != nil {
		t.Fatalf("graph: %v", err)
	}

	svg := readFile(t, filepath.Join(dir, defaultGraphFile))
	if !strings.HasPrefix(svg, "<svg ") {
		t.Errorf("diagram is not SVG: %.40q", svg)
	}
	for _, name := range []string{">A<", ">B<", ">C<", ">D<"} {
		if !strings.Contains(svg, name) {
			t.Errorf("diagram missing label %s", name)
		}
	}

	want := "A -> B\nA -> C\nB -> D\nC -> D\n"
	if got := readFile(t, filepath.Join(dir, defaultEdgeFile)); got != want {
		t.Errorf("edge list = %q, want %q", got, want)
	}
}

func TestGraphCommandDOT(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	if _, err := execute(t, "graph", "-p", "A", "--test-mode", "-r", in, "-o", "g.dot", "--edges-file", ""); err != nil {
		t.Fatalf("graph: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "g.dot")); !strings.HasPrefix(got, "digraph G {") {
		t.Errorf("dot output = %.40q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, defaultEdgeFile)); !os.IsNotExist(err) {
		t.Error("edge list written although --edges-file was empty")
	}
}

func TestGraphCommandInvalidEngine(t *testing.T) {
	dir := isolate(t)
	in := writeGraph(t, dir, diamondGraph)

	_, err := execute(t, "graph", "-p", "A", "--test-mode", "-r", in, "--engine", "neato")
	if !apkerr.Is(err, apkerr.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if _, err := os.Stat(filepath.Join(dir, defaultGraphFile)); !os.IsNotExist(err) {
		t.Error("diagram written after invalid engine")
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "version: ") {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "apkgraph") {
		t.Error("bash completion does not mention apkgraph")
	}
}

func TestCachePath(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(dir, "cache", appName) + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "cache", appName)

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, cache.IndexKey("https://example.org/APKINDEX.tar.gz"), []byte("index"), 0); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, cache.IndexKey("https://example.org/APKINDEX.tar.gz")); ok {
		t.Error("entry still cached after clear")
	}
}

func TestNewCache(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		backend  string
		disabled bool
		want     string
	}{
		{"disabled", config.BackendFile, true, "*cache.NullCache"},
		{"none", config.BackendNone, false, "*cache.NullCache"},
		{"file", config.BackendFile, false, "*cache.FileCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Dir = dir

			c, err := newCache(context.Background(), cfg, tt.disabled)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer c.Close()

			var got string
			switch c.(type) {
			case *cache.NullCache:
				got = "*cache.NullCache"
			case *cache.FileCache:
				got = "*cache.FileCache"
			}
			if got != tt.want {
				t.Errorf("newCache() = %T, want %s", c, tt.want)
			}
		})
	}
}

func TestOptionsMergeConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RepoURL = "https://dl-cdn.alpinelinux.org/alpine/v3.19/main/x86_64"
	cfg.Limits.MaxNodes = 50

	c := New(io.Discard, LogInfo)
	c.flags.pkg = "busybox"

	opts := c.options(cfg)
	if opts.RepoURL != cfg.RepoURL {
		t.Errorf("RepoURL = %q, want config value", opts.RepoURL)
	}
	if opts.MaxNodes != 50 {
		t.Errorf("MaxNodes = %d, want 50", opts.MaxNodes)
	}

	c.flags.repoURL = "./APKINDEX"
	c.flags.maxNodes = 10
	opts = c.options(cfg)
	if opts.RepoURL != "./APKINDEX" || opts.MaxNodes != 10 {
		t.Errorf("flags did not override config: %+v", opts)
	}

	c.flags.repoURL = ""
	c.flags.testMode = true
	if opts = c.options(cfg); opts.RepoURL != "" {
		t.Errorf("test mode picked up config repo %q", opts.RepoURL)
	}
}

func TestOptionsCacheTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{"configured", 12 * time.Hour, 12 * time.Hour},
		{"zero disables expiry", 0, pipeline.NoExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.TTL = tt.ttl

			c := New(io.Discard, LogInfo)
			c.flags.pkg = "busybox"
			c.flags.repoURL = "./APKINDEX"

			opts := c.options(cfg)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatal(err)
			}
			if opts.CacheTTL != tt.want {
				t.Errorf("CacheTTL = %v, want %v", opts.CacheTTL, tt.want)
			}
		})
	}
}

func TestNewCacheWithoutCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")

	var logs bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&logs, LogDebug))

	cfg := config.Default()
	c, err := newCache(ctx, cfg, false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache() = %T, want *cache.NullCache", c)
	}
	if !strings.Contains(logs.String(), "caching disabled") {
		t.Errorf("missing debug line, got %q", logs.String())
	}
}
