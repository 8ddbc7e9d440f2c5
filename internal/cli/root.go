// Package cli implements the roadspt command-line interface.
//
// The commands search shortest paths on road networks, replay searches in the
// terminal, benchmark Dijkstra against A*, import OpenStreetMap extracts and
// serve the routing API. All commands support --verbose (-v) for debug
// logging and --config for a TOML file with defaults. Loggers and the config
// are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand creates the roadspt command with all subcommands
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configFile string
	)

	root := &cobra.Command{
		Use:          "roadspt",
		Short:        "roadspt computes and replays shortest paths on road networks",
		Long:         `roadspt runs Dijkstra and A* searches on road networks, records which vertices the search visited and replays them step by step.`,
		Version:      version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			cfg := DefaultConfig()
			if configFile != "" {
				var err error
				if cfg, err = LoadConfig(configFile); err != nil {
					return err
				}
				logger.Debug("loaded config", "file", configFile)
			}

			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("roadspt %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "TOML config file")

	root.AddCommand(newSearchCmd())
	root.AddCommand(newReplayCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newServeCmd())

	return root
}

// Execute runs the roadspt CLI until ctx is canceled
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	root.SetErr(os.Stderr)
	return root.ExecuteContext(ctx)
}
