package klib

import (
	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/observability"
)

// Merge reconciles the external view with the resolver view and returns the
// merged graph. external is modified in place and becomes the result;
// resolved nodes are moved into it. Neither argument may be used afterwards.
//
// For a module present in both views, incoming edges missing from the
// external node are added; an empty requested version falls back to the
// external node's selected version. Artifact paths are unioned.
//
// The build system may describe a library and its interop artifacts as a
// single module with several artifact paths. A resolver-only node backed by
// one of those paths is folded into that external node: its edges are
// attached to it and every reference to the folded identity is redirected.
//
// Any other resolver-only node is inserted as is. If nothing depends on it,
// it becomes a direct dependency of dag.Root at its own selected version.
func Merge(external, resolved dag.Graph) (dag.Graph, error) {
	externalCount := len(external)
	if external == nil {
		external = make(dag.Graph, len(resolved))
	}
	merged := external

	origins := make(map[string]*dag.Node)
	for _, n := range merged.Nodes() {
		if len(n.ArtifactPaths) < 2 {
			continue
		}
		for _, p := range n.ArtifactPaths {
			if _, taken := origins[p]; !taken {
				origins[p] = n
			}
		}
	}

	aliases := make(map[dag.ModuleID]dag.ModuleID)
	for _, r := range resolved.Nodes() {
		if ext, ok := merged[r.ID]; ok {
			addMissing(ext, r)
			for _, p := range r.ArtifactPaths {
				ext.AddArtifactPath(p)
			}
			continue
		}

		if origin := originOf(r, origins); origin != nil {
			addMissing(origin, r)
			aliases[r.ID] = origin.ID
			continue
		}

		if len(r.RequestedVersions) == 0 {
			r.SetRequested(dag.Root, r.SelectedVersion)
		}
		merged[r.ID] = r
	}

	if len(aliases) > 0 {
		redirect(merged, aliases)
	}

	observability.Diagnostics().OnMerge(externalCount, len(resolved), len(merged), len(aliases))

	if err := merged.Validate(); err != nil {
		return nil, inconsistent(err, "merge")
	}
	return merged, nil
}

// addMissing copies the incoming edges of from that into does not have yet.
func addMissing(into, from *dag.Node) {
	for dependent, requested := range from.RequestedVersions {
		if dependent == into.ID {
			continue
		}
		if _, exists := into.RequestedBy(dependent); exists {
			continue
		}
		if requested == "" {
			requested = into.SelectedVersion
		}
		into.SetRequested(dependent, requested)
	}
}

// originOf returns the multi-artifact external node sharing an artifact path
// with n, if any.
func originOf(n *dag.Node, origins map[string]*dag.Node) *dag.Node {
	for _, p := range n.ArtifactPaths {
		if origin, ok := origins[p]; ok && origin.ID != n.ID {
			return origin
		}
	}
	return nil
}

// redirect rewrites incoming-edge keys naming a folded module to its origin.
// Existing edges from the origin win; self edges are dropped.
func redirect(g dag.Graph, aliases map[dag.ModuleID]dag.ModuleID) {
	for _, n := range g.Nodes() {
		for _, dependent := range n.Dependents() {
			target, folded := aliases[dependent]
			if !folded {
				continue
			}
			requested := n.RequestedVersions[dependent]
			delete(n.RequestedVersions, dependent)
			if target == n.ID {
				continue
			}
			if _, exists := n.RequestedBy(target); !exists {
				n.SetRequested(target, requested)
			}
		}
	}
}
