package manifest

import (
	"bytes"
	"os"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
)

// File loads a manifest from the filesystem. It implements
// deps.ManifestLoader.
type File struct {
	Path string
}

// Load reads and parses the file. A missing file or an empty Path yields an
// empty graph: the build system did not provide dependency information.
func (f File) Load(onMalformed deps.MalformedLineFunc) (dag.Graph, error) {
	if f.Path == "" {
		return make(dag.Graph), nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(dag.Graph), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", f.Path)
	}
	return Parse(bytes.NewReader(data), onMalformed)
}

// Source returns the file path.
func (f File) Source() string { return f.Path }

// Bytes is an in-memory manifest, mostly useful in tests. It implements
// deps.ManifestLoader.
type Bytes struct {
	Name string
	Data []byte
}

// Load parses the data.
func (b Bytes) Load(onMalformed deps.MalformedLineFunc) (dag.Graph, error) {
	return Parse(bytes.NewReader(b.Data), onMalformed)
}

// Source returns the configured name.
func (b Bytes) Source() string { return b.Name }
