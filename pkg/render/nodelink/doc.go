// Package nodelink exports dependency graphs as node-link diagrams.
//
// Where the tree renderer prints a graph for a diagnostic message, this
// package draws the same graph with Graphviz, which is easier to read when a
// project pulls in many shared dependencies.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true, Policy: policy})
//	svg, err := nodelink.RenderSVG(dot)
//
// PDF and PNG output go through [RenderPDF] and [RenderPNG], which need the
// rsvg-convert tool from librsvg.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
