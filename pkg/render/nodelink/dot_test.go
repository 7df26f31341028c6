package nodelink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

func graph() dag.Graph {
	a := dag.NewNode(dag.MustModuleID("a"), "1.0")
	a.SetRequested(dag.Root, "0.9")
	b := dag.NewNode(dag.MustModuleID("org.jetbrains.kotlin.native.platform.posix"), "2.0")
	b.SetRequested(dag.Root, "2.0")
	b.VisibleAtRoot = false
	c := dag.NewNode(dag.MustModuleID("stdlib"), "2.0")
	c.SetRequested(a.ID, "2.0")
	c.SetRequested(b.ID, "")
	return dag.Graph{a.ID: a, b.ID: b, c.ID: c}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(graph(), Options{Policy: ordering.Distribution()})

	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.Contains(t, dot, `"<root>" [label="<root>", shape=ellipse, fillcolor=lightgrey];`)
	assert.Contains(t, dot, `"a" [label="a"];`)
	assert.Contains(t, dot, `"<root>" -> "a";`)
	assert.Contains(t, dot, `"a" -> "stdlib";`)
	assert.Contains(t, dot, `"org.jetbrains.kotlin.native.platform.posix" -> "stdlib";`)
	assert.NotContains(t, dot, `"<root>" -> "org.jetbrains.kotlin.native.platform.posix"`)
	assert.Contains(t, dot, `style="rounded,filled,dashed"`)

	// Nodes follow the ordering policy: standard libraries last.
	assert.Less(t, strings.Index(dot, `"a" [`), strings.Index(dot, `"stdlib" [`))
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(graph(), Options{Detailed: true, Highlight: dag.MustModuleID("a"), RootLabel: "app"})

	assert.Contains(t, dot, `"<root>" [label="app"`)
	assert.Contains(t, dot, `"a" [label="a\n1.0", fillcolor="#f4b6b6", penwidth=2];`)
	assert.Contains(t, dot, `"<root>" -> "a" [label="0.9"];`)
	assert.Contains(t, dot, `"org.jetbrains.kotlin.native.platform.posix" -> "stdlib";`)
}

func TestToDOT_Deterministic(t *testing.T) {
	g := graph()
	assert.Equal(t, ToDOT(g, Options{}), ToDOT(g, Options{}))
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200">`)
	assert.Contains(t, out, "<g/>")

	plain := []byte("<svg><g/></svg>")
	assert.Equal(t, plain, normalizeViewBox(plain))
}
