package dag

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrInvalidModuleID is returned by [NewModuleID] when no non-empty name
	// is given, and by [Graph.Add] when a node is keyed by [Root].
	ErrInvalidModuleID = errors.New("module ID must have at least one unique name")

	// ErrDuplicateModuleID is returned by [Graph.Add] when a node with the same
	// identity already exists. Identities are unique within a graph.
	ErrDuplicateModuleID = errors.New("duplicate module ID")

	// ErrDanglingDependency is returned by [Graph.Validate] when a node lists a
	// dependent that is neither Root nor a node of the same graph. It indicates
	// a builder bug, not a user-facing condition.
	ErrDanglingDependency = errors.New("dependency edge references unknown module")

	// ErrKeyMismatch is returned by [Graph.Validate] when a node is stored
	// under a key different from its own ID.
	ErrKeyMismatch = errors.New("node stored under foreign key")
)

// Node is one module in the dependency graph.
//
// Nodes are created once per builder invocation. Merge passes may mutate the
// version and edge fields of an existing node, but never its ID.
type Node struct {
	// ID is the unique key of the node. Immutable after creation.
	ID ModuleID

	// SelectedVersion is the version actually used. Empty means unknown.
	SelectedVersion string

	// RequestedVersions maps every dependent of this node to the version it
	// asked for. Direct project dependencies are keyed by Root.
	RequestedVersions map[ModuleID]string

	// ArtifactPaths holds location hints of the backing library files,
	// sorted and deduplicated. May be empty.
	ArtifactPaths []string

	// VisibleAtRoot reports whether the node may be shown as a first-level
	// entry of the rendered tree. Compression clears it on absorbed nodes.
	VisibleAtRoot bool
}

// NewNode creates a node visible at root level with an empty edge map.
func NewNode(id ModuleID, selectedVersion string, artifactPaths ...string) *Node {
	n := &Node{
		ID:                id,
		SelectedVersion:   selectedVersion,
		RequestedVersions: make(map[ModuleID]string),
		VisibleAtRoot:     true,
	}
	for _, p := range artifactPaths {
		n.AddArtifactPath(p)
	}
	return n
}

// AddArtifactPath records p, keeping ArtifactPaths sorted and unique.
// Empty paths are ignored.
func (n *Node) AddArtifactPath(p string) {
	if p == "" {
		return
	}
	i, found := slices.BinarySearch(n.ArtifactPaths, p)
	if !found {
		n.ArtifactPaths = slices.Insert(n.ArtifactPaths, i, p)
	}
}

// HasArtifactPath reports whether p is one of the node's artifact paths.
func (n *Node) HasArtifactPath(p string) bool {
	_, found := slices.BinarySearch(n.ArtifactPaths, p)
	return found
}

// RequestedBy returns the version requested by dependent and whether the
// edge dependent -> n exists.
func (n *Node) RequestedBy(dependent ModuleID) (string, bool) {
	v, ok := n.RequestedVersions[dependent]
	return v, ok
}

// SetRequested records that dependent asked for version of this node.
func (n *Node) SetRequested(dependent ModuleID, version string) {
	if n.RequestedVersions == nil {
		n.RequestedVersions = make(map[ModuleID]string)
	}
	n.RequestedVersions[dependent] = version
}

// IsDirect reports whether the module being compiled depends on n directly.
func (n *Node) IsDirect() bool {
	_, ok := n.RequestedVersions[Root]
	return ok
}

// Dependents returns the IDs of the modules that depend on n, in canonical
// order.
func (n *Node) Dependents() []ModuleID {
	return slices.SortedFunc(maps.Keys(n.RequestedVersions), compareKeys)
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := *n
	c.RequestedVersions = maps.Clone(n.RequestedVersions)
	if c.RequestedVersions == nil {
		c.RequestedVersions = make(map[ModuleID]string)
	}
	c.ArtifactPaths = slices.Clone(n.ArtifactPaths)
	return &c
}

// Graph maps module identities to their nodes.
//
// The zero value is a nil map; use make(Graph) or [Graph.Add] on a non-nil
// graph. Graph is not safe for concurrent use; builders allocate a fresh one
// per call.
type Graph map[ModuleID]*Node

// Add inserts n. Returns ErrInvalidModuleID if n is keyed by Root, or
// ErrDuplicateModuleID if a node with the same identity already exists.
func (g Graph) Add(n *Node) error {
	if n.ID.IsRoot() {
		return ErrInvalidModuleID
	}
	if _, exists := g[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModuleID, n.ID)
	}
	g[n.ID] = n
	return nil
}

// IDs returns all identities in canonical key order. This order is stable
// across runs but is not the display order; see the ordering package.
func (g Graph) IDs() []ModuleID {
	return slices.SortedFunc(maps.Keys(g), compareKeys)
}

// Nodes returns all nodes in canonical key order.
func (g Graph) Nodes() []*Node {
	ids := g.IDs()
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = g[id]
	}
	return nodes
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	c := make(Graph, len(g))
	for id, n := range g {
		c[id] = n.Clone()
	}
	return c
}

// EdgeCount returns the number of dependent -> dependency edges, including
// edges from Root.
func (g Graph) EdgeCount() int {
	count := 0
	for _, n := range g {
		count += len(n.RequestedVersions)
	}
	return count
}

// Validate checks graph integrity and returns nil if valid.
//
// It verifies that every node is stored under its own ID and that every
// dependent recorded in RequestedVersions is either Root or a node of g.
// Returns ErrKeyMismatch or ErrDanglingDependency (wrapped with the offending
// identities) otherwise. Nodes are visited in canonical order so the reported
// error is deterministic.
func (g Graph) Validate() error {
	for _, id := range g.IDs() {
		n := g[id]
		if n.ID != id {
			return fmt.Errorf("%w: %s stored as %s", ErrKeyMismatch, n.ID, id)
		}
		for _, dependent := range n.Dependents() {
			if dependent.IsRoot() {
				continue
			}
			if _, ok := g[dependent]; !ok {
				return fmt.Errorf("%w: %s -> %s", ErrDanglingDependency, dependent, id)
			}
		}
	}
	return nil
}

// Index is the reverse view of a Graph: for each dependent, the nodes it
// depends on. It is a transient structure built once per render.
type Index map[ModuleID][]*Node

// Index inverts RequestedVersions across all nodes. Root maps to the direct
// project dependencies. Slices are in canonical key order.
func (g Graph) Index() Index {
	ix := make(Index)
	for _, n := range g.Nodes() {
		for dependent := range n.RequestedVersions {
			ix[dependent] = append(ix[dependent], n)
		}
	}
	return ix
}

// DependenciesOf returns the nodes that id depends on. Returns nil when id
// has no dependencies or is unknown.
func (ix Index) DependenciesOf(id ModuleID) []*Node { return ix[id] }
