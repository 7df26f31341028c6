package tree

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// edge is an incoming dependency: dependent "" stands for dag.Root.
type edge struct{ dependent, requested string }

func node(t *testing.T, g dag.Graph, names []string, selected string, edges ...edge) *dag.Node {
	t.Helper()
	n := dag.NewNode(dag.MustModuleID(names...), selected)
	for _, e := range edges {
		dependent := dag.Root
		if e.dependent != "" {
			dependent = dag.MustModuleID(e.dependent)
		}
		n.SetRequested(dependent, e.requested)
	}
	require.NoError(t, g.Add(n))
	return n
}

func TestRender_VersionArrow(t *testing.T) {
	g := make(dag.Graph)
	node(t, g, []string{"LibA"}, "v1", edge{"", "v1"})
	node(t, g, []string{"LibB"}, "v2", edge{"", "v1"})

	got := Render(g, Options{Policy: ordering.Default()})
	assert.Equal(t, "├─── LibA: v1\n└─── LibB: v1 -> v2", got)
}

func TestRender_Cycle(t *testing.T) {
	g := make(dag.Graph)
	node(t, g, []string{"a"}, "1", edge{"", "1"}, edge{"b", "1"})
	node(t, g, []string{"b"}, "1", edge{"a", "1"})

	got := Render(g, Options{Policy: ordering.Default()})
	want := "└─── a: 1\n" +
		"     └─── b: 1\n" +
		"          └─── a: 1 (*)\n" +
		"\n" +
		Legend
	assert.Equal(t, want, got)
}

func TestRender_RepeatedLeafIsNotMarked(t *testing.T) {
	g := make(dag.Graph)
	node(t, g, []string{"a"}, "", edge{"", ""})
	node(t, g, []string{"b"}, "", edge{"", ""})
	node(t, g, []string{"c"}, "", edge{"a", ""}, edge{"b", ""})

	got := Render(g, Options{Policy: ordering.Default()})
	want := "├─── a\n" +
		"│    └─── c\n" +
		"└─── b\n" +
		"     └─── c"
	assert.Equal(t, want, got)
}

func TestRender_HighlightAtRoot(t *testing.T) {
	g := make(dag.Graph)
	node(t, g, []string{"a"}, "", edge{"", ""})

	got := Render(g, Options{Highlight: dag.MustModuleID("a")})
	assert.Equal(t, "└─── a\n     ^^^ This module has an error.", got)
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(dag.Graph{}, Options{}))

	g := make(dag.Graph)
	hidden := node(t, g, []string{"a"}, "1", edge{"", "1"})
	hidden.VisibleAtRoot = false
	assert.Empty(t, Render(g, Options{}))
}

func TestRender_HiddenNodesStillShownBelowRoot(t *testing.T) {
	g := make(dag.Graph)
	node(t, g, []string{"a"}, "", edge{"", ""})
	hidden := node(t, g, []string{"b"}, "", edge{"", ""}, edge{"a", ""})
	hidden.VisibleAtRoot = false

	got := Render(g, Options{})
	assert.Equal(t, "└─── a\n     └─── b", got)
}

func TestRender_Golden(t *testing.T) {
	g := projectGraph(t)
	opts := Options{
		Policy:    ordering.Distribution(),
		Highlight: dag.MustModuleID("com.example:net", "com.example:net-cinterop"),
	}

	gold := goldie.New(t)
	gold.Assert(t, "project", []byte(Render(g, opts)))
}

func TestRender_Idempotent(t *testing.T) {
	g := projectGraph(t)
	before := g.Clone()
	opts := Options{Policy: ordering.Distribution(), Highlight: dag.MustModuleID("util")}

	first := Render(g, opts)
	second := Render(g, opts)
	assert.Equal(t, first, second)
	assert.Equal(t, before, g)
}

func TestVersionText(t *testing.T) {
	tests := []struct {
		requested, selected, want string
	}{
		{"", "", ""},
		{"1.0", "1.0", ": 1.0"},
		{"1.0", "2.0", ": 1.0 -> 2.0"},
		{"", "2.0", ": unknown -> 2.0"},
		{"1.0", "", ": 1.0 -> unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VersionText(tt.requested, tt.selected), "%q/%q", tt.requested, tt.selected)
	}
}

// projectGraph is a compressed graph with a multi-name module, standard
// libraries, a hidden platform library and an unknown selected version.
func projectGraph(t *testing.T) dag.Graph {
	t.Helper()
	const (
		summary = "org.jetbrains.kotlin.native.platform.* (1 libraries)"
		posix   = "org.jetbrains.kotlin.native.platform.posix"
	)
	net := []string{"com.example:net", "com.example:net-cinterop"}

	g := make(dag.Graph)
	node(t, g, []string{"app-core"}, "1.0", edge{"", "1.0"})
	n := node(t, g, net, "2.1", edge{"", "2.0"})
	n.SetRequested(dag.MustModuleID("app-core"), "2.1")
	node(t, g, []string{"util"}, "", edge{"app-core", "0.9"})

	p := node(t, g, []string{posix}, "2.0.0", edge{"", "2.0.0"})
	p.VisibleAtRoot = false
	node(t, g, []string{summary}, "2.0.0", edge{"", "2.0.0"})

	s := node(t, g, []string{"stdlib"}, "2.0.0",
		edge{"app-core", "2.0.0"}, edge{posix, "2.0.0"}, edge{summary, "2.0.0"})
	s.SetRequested(dag.MustModuleID(net...), "1.9.0")

	a := node(t, g, []string{"org.jetbrains.kotlin:atomicfu"}, "")
	a.SetRequested(dag.MustModuleID(net...), "")
	return g
}
