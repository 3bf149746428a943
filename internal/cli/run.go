package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/nxfile"
	"github.com/robert-malhotra/go-nxgraph/pipeline"
)

func (c *CLI) runCommand() *cobra.Command {
	var input, output string
	var preflightOnly bool
	cmd := &cobra.Command{
		Use:   "run PIPELINE.json",
		Short: "Execute a pipeline",
		Long: `Execute the steps of a pipeline JSON file against an empty graph, or
against the graph loaded from --input. With --output the resulting graph is
saved along with the pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := pipeline.Parse(data, pipeline.DefaultRegistry())
			if err != nil {
				return err
			}

			g := graph.New()
			if input != "" {
				f, err := nxfile.Read(cmd.Context(), input, c.loadOptions()...)
				if err != nil {
					return err
				}
				g = f.Graph
			}

			w := cmd.OutOrStdout()
			if preflightOnly {
				out, warnings, err := p.Preflight(cmd.Context(), g, pipeline.WithLogger(c.logr()))
				printWarnings(w, warnings)
				if err != nil {
					return err
				}
				printSuccess(w, "preflight of %d steps passed, %d nodes", len(p.Steps), out.Len())
				return printTree(w, out)
			}

			warnings, err := p.Execute(cmd.Context(), g, pipeline.WithLogger(c.logr()))
			printWarnings(w, warnings)
			if err != nil {
				return err
			}
			printSuccess(w, "executed %d steps, %d nodes", len(p.Steps), g.Len())

			if output == "" {
				return nil
			}
			dsOpts, err := c.cfg.Write.DatasetOptions()
			if err != nil {
				return err
			}
			js, err := p.JSON()
			if err != nil {
				return fmt.Errorf("encoding pipeline: %w", err)
			}
			return nxfile.Write(cmd.Context(), output, g,
				nxfile.WithLogger(c.logr()),
				nxfile.WithDatasetOptions(dsOpts...),
				nxfile.WithPipeline(p.Name, js),
			)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "graph file to start from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save the result to")
	cmd.Flags().BoolVar(&preflightOnly, "preflight", false, "only preflight and print the predicted graph")
	return cmd
}
