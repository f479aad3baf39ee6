package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apkgraph/pkg/pipeline"
	"github.com/matzehuels/apkgraph/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		edges    string
		engine   string
		jsonFile string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the dependency graph of a package",
		Long: `Draw the dependency graph of a package as a node-link diagram.

The format follows the --output-file extension: .svg, .png, .pdf or .dot.
PNG and PDF need rsvg-convert on PATH. The edge list ("from -> to") is
written alongside.`,
		Example: `  apkgraph graph -p app --test-mode -r graph.txt -o app.svg
  apkgraph graph -p app -r ./APKINDEX --engine graphviz -o app.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateEngine(engine); err != nil {
				return err
			}

			res, err := c.resolve(cmd.Context())
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			format := render.FormatFromPath(output)
			diagram, err := pipeline.RenderDiagram(cmd.Context(), res, engine, format)
			if err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Rendered %s diagram", format))

			files := []outputFile{{path: output, data: diagram}}
			if edges != "" {
				files = append(files, outputFile{path: edges, data: pipeline.RenderEdges(res)})
			}
			if jsonFile != "" {
				data, err := pipeline.RenderJSON(res)
				if err != nil {
					return err
				}
				files = append(files, outputFile{path: jsonFile, data: data})
			}
			if err := writeOutputs(files); err != nil {
				return err
			}

			printSuccess("Rendered %s (%s, %s)", res.Root, format, engine)
			printStats(res.Stats)
			for _, f := range files {
				printFile(f.path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output-file", "o", defaultGraphFile, "diagram file (.svg, .png, .pdf, .dot)")
	cmd.Flags().StringVar(&edges, "edges-file", defaultEdgeFile, `edge list file (empty to skip)`)
	cmd.Flags().StringVar(&engine, "engine", pipeline.DefaultEngine, "layout engine: builtin or graphviz")
	cmd.Flags().StringVar(&jsonFile, "json", "", "also export the graph as JSON to this file")

	return cmd
}
