package deps

import "github.com/matzehuels/linkdiag/pkg/dag"

// MalformedLineFunc receives a malformed manifest line and its 1-based line
// number. Parsing continues after the callback returns.
type MalformedLineFunc func(lineNo int, line string)

// ManifestLoader reads an externally supplied, build-system-produced
// dependency manifest.
type ManifestLoader interface {
	// Load returns the nodes described by the manifest. The nodes carry real
	// selected versions, incoming edges (dag.Root marks direct project
	// dependencies) and artifact paths. A manifest that does not exist yields
	// an empty graph.
	Load(onMalformed MalformedLineFunc) (dag.Graph, error)
	// Source describes where the manifest comes from, for messages.
	Source() string
}
