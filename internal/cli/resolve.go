package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/apkgraph/pkg/pipeline"
)

// resolveOutputs holds the output flags of "resolve" (and of the bare root).
type resolveOutputs struct {
	listFile  string
	asciiTree bool
	jsonFile  string
}

func addResolveFlags(fs *pflag.FlagSet, out *resolveOutputs) {
	fs.StringVarP(&out.listFile, "output-file", "o", defaultListFile, "file for the flat dependency list")
	fs.BoolVar(&out.asciiTree, "ascii-tree", false, "print the dependency tree to stdout")
	fs.StringVar(&out.jsonFile, "json", "", "also export the graph as JSON to this file")
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var out resolveOutputs

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Write the transitive dependency list of a package",
		Long: `Resolve a package against the index and write its transitive dependencies,
sorted, to --output-file. Nothing is written when resolution fails.

Dependency tokens are looked up as package names. Capability tokens such as
"so:libc.musl-x86_64.so.1" only resolve when the index has a record with that
name, so most packages of a stock Alpine index fail with RECORD_NOT_FOUND.`,
		Example: `  apkgraph resolve -p app --test-mode -r graph.txt --ascii-tree
  apkgraph resolve -p app -r ./APKINDEX --json app.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, out)
		},
	}

	addResolveFlags(cmd.Flags(), &out)
	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, out resolveOutputs) error {
	res, err := c.resolve(cmd.Context())
	if err != nil {
		return err
	}

	files := []outputFile{{path: out.listFile, data: pipeline.RenderClosure(res)}}
	if out.jsonFile != "" {
		data, err := pipeline.RenderJSON(res)
		if err != nil {
			return err
		}
		files = append(files, outputFile{path: out.jsonFile, data: data})
	}
	if err := writeOutputs(files); err != nil {
		return err
	}

	if out.asciiTree {
		if _, err := cmd.OutOrStdout().Write(pipeline.RenderTree(res)); err != nil {
			return err
		}
	}

	printSuccess("Resolved %s", res.Root)
	printStats(res.Stats)
	for _, f := range files {
		printFile(f.path)
	}
	if err := res.CycleError(); err != nil {
		printWarning("%s", err.Error())
	}
	return nil
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the dependency tree of a package",
		Long: `Print the dependency tree of a package. Every path from the root is shown;
a package that reappears on its own path is marked and not expanded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.resolve(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(pipeline.RenderTree(res))
			return err
		},
	}
}

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print a load order for a package's dependencies",
		Long: `Print the packages of the graph so that every package comes after its
dependencies. Packages caught in a cycle are reported but not ordered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.resolve(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(pipeline.RenderOrder(res)); err != nil {
				return err
			}
			if err := res.CycleError(); err != nil {
				printWarning("%s", err.Error())
			}
			return nil
		},
	}
}
