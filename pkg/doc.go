// Package pkg provides the libraries behind linkdiag, which explains linker
// failures with the module dependency tree that led to them.
//
// # Overview
//
// When a linker cannot resolve a cross-module reference, the bare error ("no
// declaration for symbol X") rarely says why. linkdiag reconstructs which
// libraries the project depends on, which versions were requested and which
// were selected, and prints that tree below the error with the offending
// module marked.
//
// # Architecture
//
// The data flow of a diagnostic:
//
//	Module universe (+ dependency manifest)
//	         ↓
//	    [deps] / [deps/klib] (build the node map)
//	         ↓
//	    [dag] (identities, nodes, edges)
//	         ↓
//	    [render/tree] (ordered by [ordering])
//	         ↓
//	    [issues] (compose the message) → [sink]
//
// # Quick Start
//
//	composer := &issues.Composer{
//	    Builder: klib.New(klib.Options{
//	        Distribution:    "/opt/toolchain/klib",
//	        CompilerVersion: "2.0.0",
//	        Manifest:        manifest.File{Path: "build/deps.txt"},
//	    }),
//	    Sink: sink.NewLogSink(log.Default()),
//	}
//	err := composer.Raise(issues.UnresolvedSymbol{
//	    Symbol:  "com.example/foo|1",
//	    Module:  current,
//	    Modules: modules,
//	})
//
// # Package Organization
//
// ## Domain
//
// [dag] - Module identities, dependency nodes and the graph map.
//
// [deps] - The builder contract and the default, unversioned builder.
//
// [deps/klib] - The merging builder: folds the build system's manifest into
// the resolved modules and compresses platform libraries.
//
// [manifest] - Parser and writer of the line-oriented dependency manifest.
//
// [ordering] - The comparator every renderer sorts by.
//
// [issues] - Linkage failure kinds and the diagnostic composer.
//
// ## Rendering
//
// [render/tree] - Box-drawn text tree embedded in diagnostics.
//
// [render/nodelink] - Graphviz diagrams of the same graph.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// ## Support
//
// [io] - JSON snapshots of a built graph.
//
// [sink] - Destinations for composed diagnostics.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for build, merge, render and issue events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./...
//	go test ./pkg/render/tree -update   # Regenerate golden files
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/dag
// [deps]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/deps
// [deps/klib]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/deps/klib
// [manifest]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/manifest
// [ordering]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/ordering
// [issues]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/issues
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/render/tree
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/io
// [sink]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/sink
// [errors]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/linkdiag/pkg/buildinfo
package pkg
