package cli

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	graphlib "github.com/dominikbraun/graph"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/ordering"
	"github.com/matzehuels/linkdiag/pkg/render/tree"
)

// whyCommand explains how a module ends up in the project.
func (c *CLI) whyCommand() *cobra.Command {
	var src graphSource
	cmd := &cobra.Command{
		Use:               "why <module>",
		Short:             "Print the shortest dependency chain from the project to a module",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeModules,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadGraph(cmd, src)
			if err != nil {
				return err
			}
			target, ok, err := l.lookup(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeModuleNotFound, "module %q is not part of the dependency graph", args[0])
			}

			chain, err := dependencyChain(l.graph, target)
			if stderrors.Is(err, graphlib.ErrTargetNotReachable) {
				printWarning(cmd.OutOrStdout(), "%s is not reachable from the project", target)
				return nil
			}
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "shortest path to %s", target)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatChain(l.graph, chain, l.rootLabel()))
			return nil
		},
	}
	src.addFlags(cmd)
	return cmd
}

// cyclesCommand lists groups of modules that depend on each other.
func (c *CLI) cyclesCommand() *cobra.Command {
	var src graphSource
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List dependency cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadGraph(cmd, src)
			if err != nil {
				return err
			}
			cycles, err := dependencyCycles(l.graph, l.policy)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "find cycles")
			}

			out := cmd.OutOrStdout()
			if len(cycles) == 0 {
				printSuccess(out, "no dependency cycles")
				return nil
			}
			for _, cycle := range cycles {
				names := make([]string, len(cycle))
				for i, id := range cycle {
					names[i] = id.String()
				}
				printError(out, "cycle: %s", strings.Join(names, " ↔ "))
			}
			return nil
		},
	}
	src.addFlags(cmd)
	return cmd
}

// moduleHash keys graphlib vertices by identity, so dag.Root never collides
// with a module whose name matches its printed form.
func moduleHash(id dag.ModuleID) dag.ModuleID { return id }

// toGraphlib converts g into a directed graph with edges pointing from a
// dependent to its dependency, including edges from dag.Root.
func toGraphlib(g dag.Graph) (graphlib.Graph[dag.ModuleID, dag.ModuleID], error) {
	gl := graphlib.New(moduleHash, graphlib.Directed())
	if err := gl.AddVertex(dag.Root); err != nil {
		return nil, err
	}
	for _, id := range g.IDs() {
		if err := gl.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for _, n := range g.Nodes() {
		for _, dependent := range n.Dependents() {
			err := gl.AddEdge(dependent, n.ID)
			if err != nil && !stderrors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}
	return gl, nil
}

// dependencyChain returns the shortest path from dag.Root to target.
func dependencyChain(g dag.Graph, target dag.ModuleID) ([]dag.ModuleID, error) {
	gl, err := toGraphlib(g)
	if err != nil {
		return nil, err
	}
	return graphlib.ShortestPath(gl, dag.Root, target)
}

// dependencyCycles returns the strongly connected components with more than
// one module, each sorted by policy, in policy order of their first module.
func dependencyCycles(g dag.Graph, policy ordering.Policy) ([][]dag.ModuleID, error) {
	gl, err := toGraphlib(g)
	if err != nil {
		return nil, err
	}
	components, err := graphlib.StronglyConnectedComponents(gl)
	if err != nil {
		return nil, err
	}

	var cycles [][]dag.ModuleID
	for _, comp := range components {
		if len(comp) < 2 {
			continue
		}
		policy.SortIDs(comp)
		cycles = append(cycles, comp)
	}
	slices.SortFunc(cycles, func(a, b []dag.ModuleID) int {
		return policy.Compare(a[0], b[0])
	})
	return cycles, nil
}

// formatChain prints a chain starting at dag.Root as a single-branch tree.
func formatChain(g dag.Graph, chain []dag.ModuleID, root string) string {
	lines := []string{root}
	for i := 1; i < len(chain); i++ {
		n := g[chain[i]]
		requested := n.RequestedVersions[chain[i-1]]
		lines = append(lines, strings.Repeat("     ", i-1)+"└─── "+
			strings.Join(n.ID.Names(), ", ")+tree.VersionText(requested, n.SelectedVersion))
	}
	return strings.Join(lines, "\n")
}
