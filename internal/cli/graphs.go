package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
	graphio "github.com/matzehuels/linkdiag/pkg/io"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// graphSource selects where a command's graph comes from: a module universe
// run through the configured builder, or a JSON snapshot exported earlier.
type graphSource struct {
	universe string
	snapshot string
}

func (s *graphSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.universe, "universe", "u", "", "module universe (YAML)")
	cmd.Flags().StringVar(&s.snapshot, "snapshot", "", "graph snapshot (JSON) written by 'graph -o <file>.json'")
}

// loaded is a graph together with the ordering used to display it.
type loaded struct {
	universe *universe // nil for snapshots
	policy   ordering.Policy
	graph    dag.Graph
}

// loadGraph builds the graph named by src. For a universe, the current
// module becomes the root.
func (c *CLI) loadGraph(cmd *cobra.Command, src graphSource) (*loaded, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	if src.snapshot != "" {
		g, err := graphio.ImportJSON(src.snapshot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "snapshot %s", src.snapshot)
		}
		prog.done("Loaded graph snapshot", "modules", len(g), "edges", g.EdgeCount())
		return &loaded{policy: cfg.policy(ordering.Distribution()), graph: g}, nil
	}

	u, err := loadUniverse(src.universe)
	if err != nil {
		return nil, err
	}
	b := cfg.builder(u.current, logger)
	g, err := b.Build(u.modules)
	if err != nil {
		return nil, err
	}
	prog.done("Built dependency graph", "modules", len(g), "edges", g.EdgeCount())

	return &loaded{universe: u, policy: b.Policy(), graph: g}, nil
}

// lookup returns the identity of a module given by name on the command
// line and reports whether it is part of the graph.
func (l *loaded) lookup(name string) (dag.ModuleID, bool, error) {
	id, err := deps.NameID(name)
	if err != nil {
		return dag.Root, false, err
	}
	_, ok := l.graph[id]
	return id, ok, nil
}

// rootLabel names the module being compiled, if the universe says which.
func (l *loaded) rootLabel() string {
	if l.universe != nil && l.universe.current != "" {
		return l.universe.current
	}
	return dag.Root.String()
}
