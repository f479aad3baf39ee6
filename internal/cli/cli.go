package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/apkgraph/internal/config"
	"github.com/matzehuels/apkgraph/pkg/cache"
	"github.com/matzehuels/apkgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "apkgraph"

	defaultListFile  = "deps.txt"
	defaultGraphFile = "graph.svg"
	defaultEdgeFile  = "graph.txt"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags globalFlags
}

// globalFlags are the persistent flags shared by every resolving command.
type globalFlags struct {
	pkg        string
	version    string
	repoURL    string
	testMode   bool
	configPath string
	refresh    bool
	noCache    bool
	maxNodes   int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Run without a subcommand, the root behaves like "resolve" so that
//
//	apkgraph --package-name app --test-mode --repo-url graph.txt --ascii-tree
//
// works as a one-shot invocation.
func (c *CLI) RootCommand() *cobra.Command {
	var out resolveOutputs

	root := &cobra.Command{
		Use:   appName,
		Short: "apkgraph resolves Alpine package dependencies from an APKINDEX",
		Long: `apkgraph reads an Alpine APKINDEX (remote or local), walks the dependencies
of one package and reports the transitive closure, an ASCII tree, a load
order and a node-link diagram.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, out)
		},
	}

	c.addGlobalFlags(root.PersistentFlags())
	addResolveFlags(root.Flags(), &out)

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.flags.pkg, "package-name", "p", "", "package to resolve")
	fs.StringVar(&c.flags.version, "version", "", "exact version of the root package")
	fs.StringVarP(&c.flags.repoURL, "repo-url", "r", "", "repository URL, APKINDEX archive, or local index path")
	fs.BoolVar(&c.flags.testMode, "test-mode", false, "read --repo-url as a local adjacency file")
	fs.StringVar(&c.flags.configPath, "config", "", "config file (default: ~/.config/apkgraph/config.toml)")
	fs.BoolVar(&c.flags.refresh, "refresh", false, "ignore cached indexes and download again")
	fs.BoolVar(&c.flags.noCache, "no-cache", false, "disable the index cache")
	fs.IntVar(&c.flags.maxNodes, "max-nodes", 0, "abort when the graph exceeds this many packages (0 = unlimited)")
}

// =============================================================================
// Runner Factory
// =============================================================================

// options merges flags over configuration into pipeline options.
func (c *CLI) options(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Package:  c.flags.pkg,
		Version:  c.flags.version,
		RepoURL:  c.flags.repoURL,
		TestMode: c.flags.testMode,
		MaxNodes: cfg.Limits.MaxNodes,
		Refresh:  c.flags.refresh,
		CacheTTL: cfg.Cache.TTL,
		Timeout:  cfg.HTTP.Timeout,
		Attempts: cfg.HTTP.Attempts,
		Logger:   c.Logger,
	}
	if opts.RepoURL == "" && !opts.TestMode {
		opts.RepoURL = cfg.RepoURL
	}
	if c.flags.maxNodes > 0 {
		opts.MaxNodes = c.flags.maxNodes
	}
	if cfg.Cache.TTL == 0 {
		opts.CacheTTL = pipeline.NoExpiry
	}
	return opts
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, testMode bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg, c.flags.noCache || testMode)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.Logger), nil
}

// newCache opens the configured index cache backend.
func newCache(ctx context.Context, cfg *config.Config, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	case config.BackendNone:
		return cache.NewNullCache(), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		loggerFromContext(ctx).Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// resolve loads configuration and runs one resolution with a spinner.
func (c *CLI) resolve(ctx context.Context) (*pipeline.Result, error) {
	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return nil, err
	}

	opts := c.options(cfg)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, cfg, opts.TestMode)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", opts.Package))
	spinner.enabled = spinner.enabled && c.Logger.GetLevel() > log.DebugLevel
	spinner.Start()
	res, err := runner.Resolve(ctx, opts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	return res, nil
}
