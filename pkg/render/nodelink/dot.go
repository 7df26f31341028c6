package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/ordering"
	"github.com/matzehuels/linkdiag/pkg/render"
)

// RootLabel is the default label of the node standing for the module being
// compiled.
const RootLabel = "<root>"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds selected versions to node labels and requested versions
	// to edge labels.
	Detailed bool
	// Policy orders nodes and edges in the output.
	Policy ordering.Policy
	// Highlight fills the module with the error in red. dag.Root marks
	// nothing.
	Highlight dag.ModuleID
	// RootLabel overrides the label of the root node.
	RootLabel string
}

// ToDOT converts a dependency graph to Graphviz DOT format. Edges point from
// a dependent to its dependency; the module being compiled is drawn as a
// separate root node.
//
// Modules hidden at root level (for example compressed platform libraries)
// keep their edges but are drawn dashed and grey.
func ToDOT(g dag.Graph, opts Options) string {
	rootLabel := opts.RootLabel
	if rootLabel == "" {
		rootLabel = RootLabel
	}

	nodes := g.Nodes()
	opts.Policy.Sort(nodes)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=lightgrey];\n", dag.Root.String(), rootLabel)
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID.String(), fmtAttrs(n, opts))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		dependents := n.Dependents()
		opts.Policy.SortIDs(dependents)
		for _, d := range dependents {
			if d.IsRoot() && !n.VisibleAtRoot {
				continue
			}
			if opts.Detailed && n.RequestedVersions[d] != "" {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", d.String(), n.ID.String(), n.RequestedVersions[d])
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", d.String(), n.ID.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *dag.Node, detailed bool) string {
	label := strings.Join(n.ID.Names(), "\n")
	if detailed && n.SelectedVersion != "" {
		label += "\n" + n.SelectedVersion
	}
	return label
}

func fmtAttrs(n *dag.Node, opts Options) string {
	attrs := fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))
	switch {
	case !opts.Highlight.IsRoot() && n.ID == opts.Highlight:
		attrs += ", fillcolor=\"#f4b6b6\", penwidth=2"
	case !n.VisibleAtRoot:
		attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black"
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
