/*
Command phylo inspects phylogenetic trees given in Newick format.

	phylo show tree.nwk --data samples.yaml --color-by project_name
	phylo newick tree.nwk --reroot S17
	phylo dot tree.nwk --highlight S3 --highlight S9 | dot -Tsvg > tree.svg

Node data files map node names to node attributes, in YAML or JSON:

	S3:
	  project_name: Malaria survey
	  coverage_breadth: 0.21
	  metadata:
	    country: Uganda

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the global flags and the logger shared by all sub-commands.
type app struct {
	verbose  bool
	dataFile string
	reroot   string
	logger   *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phylo",
		Short: "Inspect and re-root phylogenetic trees",
		Long: `phylo reads a phylogenetic tree in Newick format, optionally decorates
its nodes with sample data and re-roots it, and prints it as a drawing,
as Newick text, or as a GraphViz diagram.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&a.dataFile, "data", "d", "", "Node data file (YAML or JSON), keyed by node name")
	rootCmd.PersistentFlags().StringVar(&a.reroot, "reroot", "", "Re-root the tree at the node with this name")

	rootCmd.AddCommand(
		newShowCmd(a),
		newNewickCmd(a),
		newDotCmd(a),
		newAncestorsCmd(a),
		newStatsCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}
