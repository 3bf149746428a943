package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-nxgraph/nxfile"
	"github.com/robert-malhotra/go-nxgraph/result"
)

type validation struct {
	path     string
	nodes    int
	warnings result.Warnings
	err      error
}

func (c *CLI) validateCommand() *cobra.Command {
	var jobs int
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Load files and check their graphs",
		Long:  "Load every file, check the graph invariants, and report per file. Files are checked concurrently.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]validation, len(args))
			eg, ctx := errgroup.WithContext(cmd.Context())
			eg.SetLimit(jobs)
			for i, path := range args {
				eg.Go(func() error {
					res := validation{path: path}
					f, err := nxfile.Read(ctx, path, c.loadOptions()...)
					if err == nil {
						res.nodes = f.Graph.Len()
						res.warnings = f.Warnings
						err = f.Graph.Validate()
					}
					if result.IsCanceled(err) {
						return err
					}
					res.err = err
					results[i] = res
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				switch {
				case res.err != nil:
					failed++
					printError(w, "%s: %v", res.path, res.err)
				case strict && len(res.warnings) > 0:
					failed++
					printError(w, "%s: %d warnings", res.path, len(res.warnings))
				default:
					printSuccess(w, "%s: %d nodes", res.path, res.nodes)
				}
				printWarnings(w, res.warnings)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "files to check at once")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat load warnings as failures")
	return cmd
}
