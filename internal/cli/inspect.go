package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/nxfile"
)

func (c *CLI) loadOptions() []nxfile.Option {
	opts := []nxfile.Option{nxfile.WithLogger(c.logr())}
	if c.cfg.Load.SkipInvalid {
		opts = append(opts, nxfile.WithSkipInvalid())
	}
	return opts
}

func (c *CLI) inspectCommand() *cobra.Command {
	var showPipeline bool
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the node tree of a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := nxfile.Read(cmd.Context(), args[0], c.loadOptions()...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printTitle(w, "%s", f.Path)
			printDetail(w, "version %s, id %s, %d nodes, next id %d", f.Version, f.UUID, f.Graph.Len(), f.Graph.NextID())
			if f.HasPipeline() {
				printDetail(w, "pipeline %q", f.PipelineName)
			}
			if err := printTree(w, f.Graph); err != nil {
				return err
			}
			printWarnings(w, f.Warnings)
			if showPipeline && f.HasPipeline() {
				fmt.Fprintln(w, string(f.Pipeline))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPipeline, "pipeline", false, "also print the stored pipeline JSON")
	return cmd
}

// printTree writes one line per node, indented by depth, followed by the
// node's role slots.
func printTree(w io.Writer, g *graph.Graph) error {
	return g.Walk(func(n graph.Node, depth int) error {
		indent := strings.Repeat("  ", depth)
		line := fmt.Sprintf("%s%s %s %s", indent, n.Name(), styleType.Render(n.Type().String()), styleDim.Render(fmt.Sprintf("#%d", n.ID())))
		if d := graph.Describe(n); d != "" {
			line += " " + styleDim.Render(d)
		}
		fmt.Fprintln(w, line)

		geom, ok := n.(graph.GeometryNode)
		if !ok {
			return nil
		}
		for _, role := range n.Type().Kind.Roles() {
			id, ok := geom.Slot(role).Get()
			if !ok {
				continue
			}
			target, err := g.PathOf(id)
			if err != nil {
				target = "?"
			}
			fmt.Fprintf(w, "%s  %s %s %s\n", indent, styleDim.Render(string(role)), iconArrow, target)
		}
		return nil
	})
}
