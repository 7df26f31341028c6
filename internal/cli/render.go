package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/render/tree"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source    graphSource
	highlight string // module to mark as the error source
	title     bool   // print the "Project dependencies:" heading
	stats     bool   // print module and edge counts
}

// renderCommand prints the dependency tree without a diagnostic around it.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the dependency tree of a module universe or snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}
	opts.source.addFlags(cmd)
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "module to mark as the source of an error")
	cmd.Flags().BoolVar(&opts.title, "title", false, "print a heading above the tree")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print module and edge counts")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	l, err := c.loadGraph(cmd, opts.source)
	if err != nil {
		return err
	}

	highlight := dag.Root
	if opts.highlight != "" {
		id, ok, err := l.lookup(opts.highlight)
		if err != nil {
			return err
		}
		if !ok {
			printWarning(cmd.ErrOrStderr(), "%s is not part of the dependency graph", opts.highlight)
		}
		highlight = id
	}

	out := cmd.OutOrStdout()
	if opts.title {
		fmt.Fprintln(out, StyleTitle.Render("Project dependencies:"))
	}
	text := tree.Render(l.graph, tree.Options{Policy: l.policy, Highlight: highlight})
	if text == "" {
		text = "<empty>"
	}
	fmt.Fprintln(out, text)

	if opts.stats {
		printStats(cmd.ErrOrStderr(), len(l.graph), l.graph.EdgeCount())
	}
	return nil
}
