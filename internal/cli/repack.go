package cli

import (
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nxgraph/nxfile"
)

func (c *CLI) repackCommand() *cobra.Command {
	var compression string
	var level int
	var shuffle bool
	cmd := &cobra.Command{
		Use:   "repack IN OUT",
		Short: "Rewrite a file with other storage filters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := c.cfg.Write
			if cmd.Flags().Changed("compression") {
				ws.Compression = compression
			}
			if cmd.Flags().Changed("level") {
				ws.Level = level
			}
			if cmd.Flags().Changed("shuffle") {
				ws.Shuffle = shuffle
			}
			dsOpts, err := ws.DatasetOptions()
			if err != nil {
				return err
			}

			in, err := nxfile.Read(cmd.Context(), args[0], c.loadOptions()...)
			if err != nil {
				return err
			}
			opts := []nxfile.Option{
				nxfile.WithLogger(c.logr()),
				nxfile.WithDatasetOptions(dsOpts...),
			}
			if in.HasPipeline() {
				opts = append(opts, nxfile.WithPipeline(in.PipelineName, in.Pipeline))
			}
			if err := nxfile.Write(cmd.Context(), args[1], in.Graph, opts...); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "%s %s %s", args[0], iconArrow, args[1])
			printDetail(w, "%d nodes, compression %s", in.Graph.Len(), ws.Compression)
			printWarnings(w, in.Warnings)
			return nil
		},
	}
	cmd.Flags().StringVar(&compression, "compression", "", "none, deflate or lz4 (default from config)")
	cmd.Flags().IntVar(&level, "level", 0, "deflate level 1-9 (default from config)")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle bytes before compressing (default from config)")
	return cmd
}
