package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/errors"
	graphio "github.com/matzehuels/linkdiag/pkg/io"
	"github.com/matzehuels/linkdiag/pkg/render/nodelink"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	source    graphSource
	output    string  // output file; format from extension
	detailed  bool    // versions on labels and edges
	highlight string  // module to mark
	scale     float64 // PNG scale factor
}

// graphCommand exports the dependency graph as a node-link diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph as DOT, SVG, PDF, PNG or a JSON snapshot",
		Long: `Export the dependency graph as a node-link diagram.

Without --output the DOT source is printed to stdout. The output format is
chosen by file extension: .dot, .gv, .svg, .pdf or .png. PDF and PNG need
rsvg-convert on PATH.

A .json file holds a snapshot of the graph itself, which render, why,
cycles and graph accept again through --snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts)
		},
	}
	opts.source.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show versions on nodes and edges")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "module to mark as the source of an error")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG scale factor")
	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts) error {
	format, err := graphFormat(opts.output)
	if err != nil {
		return err
	}

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

	dot := nodelink.ToDOT(l.graph, nodelink.Options{
		Detailed:  opts.detailed,
		Policy:    l.policy,
		Highlight: highlight,
		RootLabel: l.rootLabel(),
	})
	if opts.output == "" {
		fmt.Fprint(cmd.OutOrStdout(), dot)
		return nil
	}

	if format == "json" {
		if err := graphio.ExportJSON(l.graph, opts.output); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
		}
	} else {
		data, err := encodeGraph(dot, format, opts.scale)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
		}
	}

	stderr := cmd.ErrOrStderr()
	printFile(stderr, opts.output)
	printInfo(stderr, "%d modules, %d edges", len(l.graph), l.graph.EdgeCount())
	return nil
}

// graphFormat maps an output path to a format name. An empty path means DOT
// on stdout.
func graphFormat(path string) (string, error) {
	if path == "" {
		return "dot", nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		return "dot", nil
	case ".svg", ".pdf", ".png", ".json":
		return ext[1:], nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want .dot, .gv, .svg, .pdf, .png or .json)", ext)
	}
}

func encodeGraph(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case "svg":
		return nodelink.RenderSVG(dot)
	case "pdf":
		return nodelink.RenderPDF(dot)
	case "png":
		return nodelink.RenderPNG(dot, scale)
	default:
		return []byte(dot), nil
	}
}
