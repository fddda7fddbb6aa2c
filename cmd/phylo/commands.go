package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/phylo/dendro"
	"github.com/npillmayer/phylo/phylodbg"
	"github.com/npillmayer/phylo/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func noTree(w io.Writer) error {
	_, err := fmt.Fprintln(w, "no tree")
	return err
}

// highlighted selects all leaves carrying one of names and returns the
// nodes on the paths from the root to them.
func highlighted(a *app, t *tree.Tree, names []string) map[tree.NodeID]bool {
	if len(names) == 0 {
		return nil
	}
	sel := dendro.Selection{}
	for _, name := range names {
		nodes := t.NodesNamed(name)
		if len(nodes) == 0 {
			a.logger.Warn("Cannot highlight unknown node", zap.String("name", name))
		}
		for _, node := range nodes {
			sel[node.ID] = struct{}{}
		}
	}
	return dendro.Highlight(t, sel)
}

func newShowCmd(a *app) *cobra.Command {
	var colorBy string
	var highlight []string
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a tree as an indented drawing",
		Long: `Prints every node with its name, ID and branch length. With --color-by,
nodes are annotated with their color group for a node attribute
(e.g. project_name, host_genome_name or metadata.<key>). Nodes on the path
to a highlighted leaf are marked with '*'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return noTree(cmd.OutOrStdout())
			}
			hl := highlighted(a, t, highlight)
			var coloring *dendro.Coloring
			if colorBy != "" {
				c := dendro.ColorGroups(t, colorBy)
				if c.Skip {
					a.logger.Info("No node has a value for attribute", zap.String("attribute", colorBy))
				} else {
					coloring = &c
				}
			}
			decorate := func(node *tree.Node) string {
				var tags []string
				if coloring != nil {
					tags = append(tags, "["+coloring.Group(node.ID)+"]")
				}
				if hl[node.ID] {
					tags = append(tags, "*")
				}
				return strings.Join(tags, " ")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), phylodbg.Print(t, decorate))
			return err
		},
	}
	cmd.Flags().StringVar(&colorBy, "color-by", "", "Group nodes by a node attribute")
	cmd.Flags().StringArrayVar(&highlight, "highlight", nil, "Highlight the path to a leaf (repeatable)")
	return cmd
}

func newNewickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "newick FILE",
		Short: "Print a tree in Newick format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return noTree(cmd.OutOrStdout())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}

func newDotCmd(a *app) *cobra.Command {
	var highlight []string
	cmd := &cobra.Command{
		Use:   "dot FILE",
		Short: "Print a tree as a GraphViz diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return noTree(cmd.OutOrStdout())
			}
			return phylodbg.ToGraphViz(t, cmd.OutOrStdout(), highlighted(a, t, highlight))
		},
	}
	cmd.Flags().StringArrayVar(&highlight, "highlight", nil, "Highlight the path to a leaf (repeatable)")
	return cmd
}

func newAncestorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors FILE NAME",
		Short: "Print the path from a node up to the root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return noTree(cmd.OutOrStdout())
			}
			named := t.NodesNamed(args[1])
			if len(named) == 0 {
				return fmt.Errorf("node %q: %w", args[1], tree.ErrNodeNotFound)
			}
			path := t.Ancestors(t.Root().ID, named[0].ID)
			labels := make([]string, len(path))
			for i, node := range path {
				labels[i] = phylodbg.Label(node)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, " -> "))
			return err
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print node counts, tree depth and low-coverage samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTree(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if t == nil {
				return noTree(out)
			}
			_, maxDist := dendro.DistancesToRoot(t)
			fmt.Fprintf(out, "root:   %s\n", phylodbg.Label(t.Root()))
			fmt.Fprintf(out, "nodes:  %d\n", len(t.BFS()))
			fmt.Fprintf(out, "leaves: %d\n", len(t.Leaves()))
			fmt.Fprintf(out, "depth:  %g\n", maxDist)
			low := dendro.LowCoverage(t, threshold)
			for _, node := range low {
				a.logger.Warn("Low coverage breadth",
					zap.String("node", node.Name),
					zap.Float64("coverage_breadth", node.Data.CoverageBreadth))
				fmt.Fprintf(out, "low coverage: %s (%g)\n", node.Name, node.Data.CoverageBreadth)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "coverage-threshold", dendro.DefaultCoverageThreshold,
		"Report samples with a coverage breadth below this value")
	return cmd
}
