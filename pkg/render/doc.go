// Package render turns dependency graphs into human-readable output.
//
// The [tree] subpackage prints the box-drawn dependency tree embedded in
// linker diagnostics. The [nodelink] subpackage exports the same graph as a
// Graphviz diagram. This package holds the SVG conversions they share.
//
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
//
// [tree]: github.com/matzehuels/linkdiag/pkg/render/tree
// [nodelink]: github.com/matzehuels/linkdiag/pkg/render/nodelink
package render
