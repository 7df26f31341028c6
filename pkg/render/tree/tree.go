// Package tree renders a dependency graph as indented, box-drawn text for
// inclusion in linker diagnostics.
//
// The tree starts at the modules the project depends on directly and descends
// through their dependencies:
//
//	├─── com.example:liba: 1.0
//	│    └─── stdlib: 2.0
//	└─── com.example:libb: 1.0 -> 1.2
//	     └─── stdlib: 2.0
//
// A module is expanded only the first time it is reached. Later occurrences
// are printed as leaves and marked "(*)" if they have dependencies, which
// keeps output finite on shared subtrees and true cycles alike.
package tree

import (
	"strings"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/observability"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

const (
	branch     = "├─── "
	lastBranch = "└─── "
	bar        = "│    "
	blank      = "     "

	unknownVersion = "unknown"
	elidedMarker   = " (*)"

	// ErrorMarker is printed on its own line below the highlighted module.
	ErrorMarker = "^^^ This module has an error."

	// Legend explains the elision marker. It follows the tree, separated by
	// an empty line, whenever something was elided.
	Legend = "(*) - dependencies omitted (listed previously)"
)

// Options configures rendering.
type Options struct {
	// Policy orders siblings.
	Policy ordering.Policy
	// Highlight marks a module as the source of the error. dag.Root marks
	// nothing.
	Highlight dag.ModuleID
}

// Render returns the tree for g. Lines are separated by "\n" without a
// trailing newline. The result is empty if nothing is visible at root level.
//
// Render does not modify g and produces identical output for identical input.
func Render(g dag.Graph, opts Options) string {
	r := &renderer{
		opts:     opts,
		index:    g.Index(),
		rendered: make(map[dag.ModuleID]bool, len(g)),
	}
	r.walk(r.index.DependenciesOf(dag.Root), nil)

	observability.Diagnostics().OnRender(len(r.lines), r.elided)

	out := strings.Join(r.lines, "\n")
	if r.elided {
		out += "\n\n" + Legend
	}
	return out
}

// renderer holds the state of a single traversal.
type renderer struct {
	opts     Options
	index    dag.Index
	rendered map[dag.ModuleID]bool
	lines    []string
	elided   bool
}

// level is one step on the path from the root to the module being printed.
type level struct {
	parent *level
	id     dag.ModuleID
	last   bool
}

func (r *renderer) walk(nodes []*dag.Node, parent *level) {
	var children []*dag.Node
	if parent == nil {
		for _, n := range nodes {
			if n.VisibleAtRoot {
				children = append(children, n)
			}
		}
	} else {
		children = append(children, nodes...)
	}
	r.opts.Policy.Sort(children)

	incoming := dag.Root
	if parent != nil {
		incoming = parent.id
	}

	for i, n := range children {
		lv := &level{parent: parent, id: n.ID, last: i == len(children)-1}
		deps := r.index.DependenciesOf(n.ID)
		repeated := r.rendered[n.ID]

		var line strings.Builder
		line.WriteString(lv.linePrefix())
		line.WriteString(strings.Join(n.ID.Names(), ", "))
		line.WriteString(VersionText(n.RequestedVersions[incoming], n.SelectedVersion))
		if repeated && len(deps) > 0 {
			line.WriteString(elidedMarker)
			r.elided = true
		}
		r.lines = append(r.lines, line.String())

		if !r.opts.Highlight.IsRoot() && n.ID == r.opts.Highlight {
			r.lines = append(r.lines, lv.continuation()+ErrorMarker)
		}

		if repeated {
			continue
		}
		r.rendered[n.ID] = true
		if len(deps) > 0 {
			r.walk(deps, lv)
		}
	}
}

// linePrefix draws the connector of the module itself and the continuation
// columns of its ancestors.
func (lv *level) linePrefix() string {
	own := branch
	if lv.last {
		own = lastBranch
	}
	return lv.parent.continuation() + own
}

// continuation draws one column per level, from the root down to lv.
func (lv *level) continuation() string {
	var cols []string
	for l := lv; l != nil; l = l.parent {
		if l.last {
			cols = append(cols, blank)
		} else {
			cols = append(cols, bar)
		}
	}
	var b strings.Builder
	for i := len(cols) - 1; i >= 0; i-- {
		b.WriteString(cols[i])
	}
	return b.String()
}

// VersionText formats the version suffix of a tree line: ": <requested>"
// when it matches the selected version, ": <requested> -> <selected>"
// otherwise, with "unknown" standing in for an empty side. It is empty when
// both versions are unknown.
func VersionText(requested, selected string) string {
	if requested == "" && selected == "" {
		return ""
	}
	text := ": " + orUnknown(requested)
	if requested != selected {
		text += " -> " + orUnknown(selected)
	}
	return text
}

func orUnknown(v string) string {
	if v == "" {
		return unknownVersion
	}
	return v
}
