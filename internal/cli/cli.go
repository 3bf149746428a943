// Package cli implements the nxtool command-line interface.
//
// Commands:
//   - inspect: print the node tree of a graph file
//   - validate: load and check many files concurrently
//   - render: draw a graph file as DOT or SVG
//   - repack: rewrite a file with other storage filters
//   - run: execute a pipeline JSON file
//   - dump: print the raw container hierarchy
//
// Defaults come from an optional TOML config file; flags override it.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

const appName = "nxtool"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        Config
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// logr returns the CLI logger for the library packages.
func (c *CLI) logr() logr.Logger {
	return logr.FromSlogHandler(c.Logger)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "nxtool inspects, checks and converts graph files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if c.verbose {
				level = log.DebugLevel
			}
			c.SetLogLevel(level)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nxtool/config.toml)")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.repackCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.dumpCommand())
	return root
}
