// Package klib implements the merging graph builder used when the build
// system supplies an authoritative dependency manifest.
//
// The builder combines two partial views of the module universe:
//
//   - the external view, deserialized from the manifest: real versions,
//     hierarchy and grouped artifacts, but no libraries shipped with the
//     toolchain
//   - the resolver view, built from the libraries that actually participate
//     in the link: complete, but without requested versions
//
// The views are reconciled by [Merge] and the result is shrunk by
// [Compress], which replaces identical platform libraries with one summary
// node.
package klib

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/observability"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// DefaultPlatformPrefix is the unique-name prefix of platform libraries
// bundled with the toolchain distribution.
const DefaultPlatformPrefix = "org.jetbrains.kotlin.native.platform."

// Options configures the merging builder.
type Options struct {
	Distribution       string               // Default-distribution library directory
	CompilerVersion    string               // Version of libraries found under Distribution
	Manifest           deps.ManifestLoader  // External dependency manifest (optional)
	OnMalformed        func(message string) // Receives malformed-manifest messages (optional)
	PlatformPrefix     string               // Platform library prefix (default: DefaultPlatformPrefix)
	DisableCompression bool                 // Render every platform library individually
	Policy             ordering.Policy      // Ordering policy (default: ordering.Distribution())
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.PlatformPrefix == "" {
		opts.PlatformPrefix = DefaultPlatformPrefix
	}
	if len(opts.Policy.StandardPrefixes) == 0 && len(opts.Policy.StandardNames) == 0 {
		opts.Policy = ordering.Distribution()
	}
	if opts.OnMalformed == nil {
		opts.OnMalformed = func(string) {}
	}
	return opts
}

// Builder is the merging implementation of deps.Builder.
type Builder struct {
	opts Options
}

// New creates a merging builder.
func New(opts Options) *Builder {
	return &Builder{opts: opts.WithDefaults()}
}

// ModuleID returns the identity of m, derived from its unique name.
func (b *Builder) ModuleID(m deps.Module) (dag.ModuleID, error) { return deps.ModuleID(m) }

// Policy returns the ordering policy, which recognizes the distribution's
// standard library names.
func (b *Builder) Policy() ordering.Policy { return b.opts.Policy }

// Build loads the manifest, builds the resolver view of modules, merges the
// two and compresses platform libraries unless disabled.
func (b *Builder) Build(modules []deps.Module) (dag.Graph, error) {
	hooks := observability.Diagnostics()
	hooks.OnBuildStart("klib", len(modules))
	start := time.Now()

	g, err := b.build(modules)
	if err != nil {
		hooks.OnBuildComplete("klib", 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnBuildComplete("klib", len(g), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

func (b *Builder) build(modules []deps.Module) (dag.Graph, error) {
	external, err := b.external()
	if err != nil {
		return nil, err
	}
	resolved, err := b.Resolved(modules)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(external, resolved)
	if err != nil {
		return nil, err
	}
	if !b.opts.DisableCompression {
		Compress(merged, b.opts.PlatformPrefix)
	}
	return merged, nil
}

// external loads the manifest view. No manifest means an empty view.
func (b *Builder) external() (dag.Graph, error) {
	if b.opts.Manifest == nil {
		return make(dag.Graph), nil
	}
	source := b.opts.Manifest.Source()
	return b.opts.Manifest.Load(func(lineNo int, line string) {
		b.opts.OnMalformed(fmt.Sprintf("Malformed external dependencies at %s:%d: %s", source, lineNo, line))
	})
}

// Resolved builds the resolver view: one node per participating module, with
// incoming edges stamped to the dependency's selected version.
//
// Modules implementing deps.Library contribute their artifact path, and their
// declared version when the artifact lies in the default distribution.
func (b *Builder) Resolved(modules []deps.Module) (dag.Graph, error) {
	pending := make(map[dag.ModuleID]deps.Pending, len(modules))
	for _, m := range modules {
		id, err := deps.ModuleID(m)
		if err != nil {
			return nil, err
		}

		p, ok := pending[id]
		if !ok {
			version, path := b.describe(m)
			var paths []string
			if path != "" {
				paths = append(paths, path)
			}
			p = deps.Pending{Node: dag.NewNode(id, version, paths...)}
		}

		for _, name := range m.Dependencies() {
			dep, err := deps.NameID(name)
			if err != nil {
				return nil, err
			}
			if dep != id && !slices.Contains(p.Outgoing, dep) {
				p.Outgoing = append(p.Outgoing, dep)
			}
		}
		pending[id] = p
	}
	return deps.Stamp(pending)
}

// describe returns the effective version and absolute artifact path of m.
func (b *Builder) describe(m deps.Module) (version, path string) {
	lib, ok := m.(deps.Library)
	if !ok || lib.Path() == "" {
		return "", ""
	}
	path = lib.Path()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if b.opts.CompilerVersion != "" && IsWithin(path, b.opts.Distribution) {
		version = b.opts.CompilerVersion
	}
	return version, path
}

// IsWithin reports whether path lies inside dir. An empty dir contains
// nothing.
func IsWithin(path, dir string) bool {
	if dir == "" || path == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func inconsistent(err error, stage string) error {
	return errors.Wrap(errors.ErrCodeInconsistentGraph, err, "%s produced an inconsistent graph", stage)
}
