package manifest

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// Write serializes g in manifest format. Nodes are numbered from 1 in the
// order given by policy, so output is stable across runs. Dependents are
// written in ordinal order with the module being compiled first.
//
// Write returns dag.ErrDanglingDependency (wrapped) if g is inconsistent.
func Write(w io.Writer, g dag.Graph, policy ordering.Policy) error {
	if err := g.Validate(); err != nil {
		return err
	}

	nodes := g.Nodes()
	policy.Sort(nodes)
	ordinals := make(map[dag.ModuleID]int, len(nodes)+1)
	ordinals[dag.Root] = rootOrdinal
	for i, n := range nodes {
		ordinals[n.ID] = i + 1
	}

	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		fmt.Fprintf(bw, "%d %s[%s]", ordinals[n.ID], strings.Join(n.ID.Names(), ","), n.SelectedVersion)

		dependents := n.Dependents()
		slices.SortFunc(dependents, func(a, b dag.ModuleID) int {
			return cmp.Compare(ordinals[a], ordinals[b])
		})
		for _, d := range dependents {
			fmt.Fprintf(bw, " #%d[%s]", ordinals[d], n.RequestedVersions[d])
		}
		bw.WriteByte('\n')

		for _, p := range n.ArtifactPaths {
			fmt.Fprintf(bw, "\t%s\n", p)
		}
	}
	return bw.Flush()
}
