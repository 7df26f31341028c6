package deps

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/errors"
)

// Pending is a node whose outgoing dependencies are known but not yet
// recorded as incoming edges on the dependency nodes.
type Pending struct {
	Node     *dag.Node
	Outgoing []dag.ModuleID
}

// Stamp records every edge A -> B of pending as B.RequestedVersions[A] =
// B.SelectedVersion, unless A already has a recorded request on B.
//
// Without independent information the requested version is assumed to match
// the installed one. This makes "unknown request" and "confirmed match"
// indistinguishable in the output.
//
// An outgoing ID absent from pending yields an INCONSISTENT_GRAPH error
// wrapping dag.ErrDanglingDependency.
func Stamp(pending map[dag.ModuleID]Pending) (dag.Graph, error) {
	g := make(dag.Graph, len(pending))
	for id, p := range pending {
		g[id] = p.Node
	}

	for _, id := range slices.SortedFunc(maps.Keys(pending), compareIDs) {
		for _, out := range pending[id].Outgoing {
			dep, ok := g[out]
			if !ok {
				return nil, danglingError(id, out)
			}
			if _, exists := dep.RequestedBy(id); !exists {
				dep.SetRequested(id, dep.SelectedVersion)
			}
		}
	}
	return g, nil
}

func compareIDs(a, b dag.ModuleID) int {
	return slices.Compare(a.Names(), b.Names())
}

// danglingError reports an edge whose target is missing from the universe.
func danglingError(from, to dag.ModuleID) error {
	return errors.Wrap(errors.ErrCodeInconsistentGraph,
		fmt.Errorf("%w: %s -> %s", dag.ErrDanglingDependency, from, to),
		"module %s depends on a module outside the universe", from)
}
