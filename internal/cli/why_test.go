package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// rootNamedGraph has a module literally called "<root>", which prints the
// same as dag.Root.
func rootNamedGraph(t *testing.T) (dag.Graph, dag.ModuleID) {
	t.Helper()
	named := dag.MustModuleID("<root>")
	a := dag.NewNode(dag.MustModuleID("a"), "")
	b := dag.NewNode(named, "")
	a.SetRequested(dag.Root, "")
	a.SetRequested(named, "")
	b.SetRequested(a.ID, "")

	g := dag.Graph{}
	require.NoError(t, g.Add(a))
	require.NoError(t, g.Add(b))
	return g, named
}

func TestDependencyChain_ModuleNamedLikeRoot(t *testing.T) {
	g, named := rootNamedGraph(t)

	chain, err := dependencyChain(g, named)
	require.NoError(t, err)
	assert.Equal(t, []dag.ModuleID{dag.Root, dag.MustModuleID("a"), named}, chain)
}

func TestDependencyCycles_ModuleNamedLikeRoot(t *testing.T) {
	g, named := rootNamedGraph(t)

	cycles, err := dependencyCycles(g, ordering.Default())
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []dag.ModuleID{dag.MustModuleID("a"), named}, cycles[0])
}
