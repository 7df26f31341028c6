package deps

import (
	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// Module is a compiled module as seen by the linker.
type Module interface {
	// Name returns the module's unique name.
	Name() string
	// Dependencies returns the unique names of the direct dependencies.
	// The module itself may appear in the list; builders skip it.
	Dependencies() []string
}

// Library is a Module backed by a library artifact produced by the
// compiled-module resolver.
type Library interface {
	Module
	// Version returns the version declared by the library. Empty if unknown.
	Version() string
	// Path returns the location of the library file. Empty if unknown.
	Path() string
}

// StaticLibrary is a Library described by plain values.
type StaticLibrary struct {
	UniqueName      string   // Unique name of the library
	DependsOn       []string // Unique names of direct dependencies
	DeclaredVersion string   // Version declared by the library
	File            string   // Library artifact location
}

func (l StaticLibrary) Name() string           { return l.UniqueName }
func (l StaticLibrary) Dependencies() []string { return l.DependsOn }
func (l StaticLibrary) Version() string        { return l.DeclaredVersion }
func (l StaticLibrary) Path() string           { return l.File }

// Builder constructs dependency graphs from a module universe.
type Builder interface {
	// ModuleID returns the user-visible identity of m.
	ModuleID(m Module) (dag.ModuleID, error)
	// Build returns a node for every module of the universe. The result is
	// total over its input and passes dag.Graph.Validate.
	Build(modules []Module) (dag.Graph, error)
	// Policy returns the ordering policy matching the builder's notion of
	// standard libraries.
	Policy() ordering.Policy
}

// ModuleID returns the identity derived from a module's unique name.
func ModuleID(m Module) (dag.ModuleID, error) {
	return NameID(m.Name())
}

// NameID returns the identity for a single unique name.
func NameID(name string) (dag.ModuleID, error) {
	id, err := dag.NewModuleID(name)
	if err != nil {
		return dag.Root, errors.Wrap(errors.ErrCodeInvalidModuleName, err, "module %q", name)
	}
	return id, nil
}
