package klib

import (
	"fmt"
	"strings"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/observability"
)

// IsPlatform reports whether any unique name of id starts with prefix.
func IsPlatform(id dag.ModuleID, prefix string) bool {
	return id.AnyName(func(name string) bool { return strings.HasPrefix(name, prefix) })
}

// CompressedID returns the identity of the summary node standing for count
// platform libraries.
func CompressedID(prefix string, count int) dag.ModuleID {
	return dag.MustModuleID(fmt.Sprintf("%s* (%d libraries)", prefix, count))
}

// Compress replaces the platform libraries that the project depends on
// directly with one summary node, provided they all share one selected
// version. It returns the summary node's identity and true on success.
//
// Compressed libraries stay in g but are hidden at root level. Every other
// module that one of them depends on gains an incoming edge from the summary
// node, so it is still reachable in the rendered tree.
//
// If the versions differ, or there is nothing to compress, g is left
// untouched.
func Compress(g dag.Graph, prefix string) (dag.ModuleID, bool) {
	hooks := observability.Diagnostics()

	var (
		platform []*dag.Node
		version  string
	)
	for _, n := range g.Nodes() {
		if !IsPlatform(n.ID, prefix) || !n.IsDirect() {
			continue
		}
		if len(platform) > 0 && n.SelectedVersion != version {
			hooks.OnCompress(0, "", false)
			return dag.Root, false
		}
		version = n.SelectedVersion
		platform = append(platform, n)
	}
	if len(platform) == 0 {
		hooks.OnCompress(0, "", false)
		return dag.Root, false
	}

	id := CompressedID(prefix, len(platform))
	if _, exists := g[id]; exists {
		hooks.OnCompress(len(platform), version, false)
		return dag.Root, false
	}

	compressed := make(map[dag.ModuleID]bool, len(platform))
	for _, n := range platform {
		n.VisibleAtRoot = false
		compressed[n.ID] = true
	}

	for _, n := range g {
		if IsPlatform(n.ID, prefix) {
			continue
		}
		for dependent := range n.RequestedVersions {
			if compressed[dependent] {
				n.SetRequested(id, version)
				break
			}
		}
	}

	summary := dag.NewNode(id, version)
	summary.SetRequested(dag.Root, version)
	g[id] = summary

	hooks.OnCompress(len(platform), version, true)
	return id, true
}
