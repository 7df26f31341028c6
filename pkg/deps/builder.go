package deps

import (
	"slices"
	"time"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/observability"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// DefaultBuilder builds unversioned graphs directly from module handles.
//
// Every node gets an empty selected version, so stamped edges carry no
// version either and the rendered tree shows names only.
type DefaultBuilder struct {
	// Current is the unique name of the module being compiled. Its node is
	// not created; its outgoing edges are recorded under dag.Root instead.
	// When empty, modules that nothing depends on become direct dependencies
	// of dag.Root.
	Current string

	// Ordering decides which modules sort last as standard libraries.
	Ordering ordering.Policy
}

// NewDefault creates a DefaultBuilder for the given current module with the
// default ordering policy.
func NewDefault(current string) *DefaultBuilder {
	return &DefaultBuilder{Current: current, Ordering: ordering.Default()}
}

// ModuleID returns the identity of m, derived from its unique name.
func (b *DefaultBuilder) ModuleID(m Module) (dag.ModuleID, error) { return ModuleID(m) }

// Policy returns the builder's ordering policy.
func (b *DefaultBuilder) Policy() ordering.Policy { return b.Ordering }

// Build creates one node per module and stamps every edge with the
// dependency's selected version. Self-references and dependencies on the
// current module are dropped. Modules listed more than once contribute the
// union of their dependencies.
func (b *DefaultBuilder) Build(modules []Module) (dag.Graph, error) {
	hooks := observability.Diagnostics()
	hooks.OnBuildStart("default", len(modules))
	start := time.Now()

	g, err := b.build(modules)
	if err != nil {
		hooks.OnBuildComplete("default", 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnBuildComplete("default", len(g), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

func (b *DefaultBuilder) build(modules []Module) (dag.Graph, error) {
	pending := make(map[dag.ModuleID]Pending, len(modules))
	var rootOutgoing []dag.ModuleID

	// Edges back to the module being compiled close a cycle through
	// dag.Root, which has no node to carry them.
	current := dag.Root
	if b.Current != "" {
		id, err := NameID(b.Current)
		if err != nil {
			return nil, err
		}
		current = id
	}

	for _, m := range modules {
		id, err := ModuleID(m)
		if err != nil {
			return nil, err
		}
		outgoing, err := outgoingIDs(id, m.Dependencies())
		if err != nil {
			return nil, err
		}
		if !current.IsRoot() {
			outgoing = slices.DeleteFunc(outgoing, func(dep dag.ModuleID) bool { return dep == current })
		}

		if b.Current != "" && m.Name() == b.Current {
			rootOutgoing = appendUnique(rootOutgoing, outgoing...)
			continue
		}

		p, ok := pending[id]
		if !ok {
			p = Pending{Node: dag.NewNode(id, "")}
		}
		p.Outgoing = appendUnique(p.Outgoing, outgoing...)
		pending[id] = p
	}

	g, err := Stamp(pending)
	if err != nil {
		return nil, err
	}

	if b.Current == "" {
		for _, n := range g {
			if len(n.RequestedVersions) == 0 {
				n.SetRequested(dag.Root, n.SelectedVersion)
			}
		}
		return g, nil
	}

	for _, id := range rootOutgoing {
		if n, ok := g[id]; ok {
			n.SetRequested(dag.Root, n.SelectedVersion)
			continue
		}
		return nil, danglingError(dag.Root, id)
	}
	return g, nil
}

// outgoingIDs converts dependency names to identities, skipping self.
func outgoingIDs(self dag.ModuleID, names []string) ([]dag.ModuleID, error) {
	ids := make([]dag.ModuleID, 0, len(names))
	for _, name := range names {
		id, err := NameID(name)
		if err != nil {
			return nil, err
		}
		if id == self {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func appendUnique(dst []dag.ModuleID, ids ...dag.ModuleID) []dag.ModuleID {
	for _, id := range ids {
		if !slices.Contains(dst, id) {
			dst = append(dst, id)
		}
	}
	return dst
}
