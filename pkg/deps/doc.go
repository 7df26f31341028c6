// Package deps builds dependency graphs from the linker's module universe.
//
// # Overview
//
// A graph builder turns a collection of compiled modules into a [dag.Graph]
// whose nodes carry version-annotated incoming edges. Two implementations
// satisfy the [Builder] contract:
//
//   - [DefaultBuilder] (this package): direct, unversioned, single source.
//     Every edge is stamped with the dependency's own selected version.
//   - klib.Builder ([github.com/matzehuels/linkdiag/pkg/deps/klib]): merges
//     an external build-system manifest with the resolver's view, then
//     compresses platform libraries.
//
// Both builders share only the ordering policy (exposed via
// [Builder.Policy]) and the [Stamp] helper.
//
// # Module Universe
//
// The linker supplies modules as opaque handles implementing [Module]. A
// handle that also implements [Library] contributes its declared version and
// artifact location. [StaticLibrary] is a plain value implementation used by
// tests and the CLI.
//
// # Usage
//
//	b := deps.NewDefault("app")
//	g, err := b.Build([]deps.Module{app, liba, libb})
//	if err != nil {
//	    // errors.ErrCodeInconsistentGraph: a dependency is missing from the universe
//	}
package deps
