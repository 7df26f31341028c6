// Package ordering provides the comparator that gives rendered dependency
// trees a deterministic, human-stable order.
//
// The order is, in priority:
//
//  1. equal identities compare equal
//  2. standard libraries (name prefix or exact name match) sort last
//  3. modules whose names are all simple (no '.' or ':') sort first, as they
//     are most likely user-made libraries
//  4. otherwise unique names are compared one by one; a name list that is a
//     prefix of the other sorts first
//
// Renderers must sort exclusively through [Policy]; no other package orders
// nodes for display.
package ordering

import (
	"slices"
	"strings"

	"github.com/matzehuels/linkdiag/pkg/dag"
)

// DefaultStandardPrefix marks libraries shipped with the toolchain.
const DefaultStandardPrefix = "org.jetbrains.kotlin"

// DefaultStdlibName is the unique name of the toolchain's standard library
// when it is resolved from the compiler distribution.
const DefaultStdlibName = "stdlib"

// Policy decides which modules are standard libraries and orders identities.
// The zero value treats no module as standard.
type Policy struct {
	// StandardPrefixes marks a module as standard if any of its unique names
	// starts with one of them.
	StandardPrefixes []string
	// StandardNames marks a module as standard if any of its unique names is
	// exactly one of them.
	StandardNames []string
}

// Default returns the policy used when no distribution-specific knowledge
// is available.
func Default() Policy {
	return Policy{StandardPrefixes: []string{DefaultStandardPrefix}}
}

// Distribution returns the policy for libraries resolved from the compiler
// distribution, which additionally recognizes the bare stdlib name.
func Distribution() Policy {
	return Policy{
		StandardPrefixes: []string{DefaultStandardPrefix},
		StandardNames:    []string{DefaultStdlibName},
	}
}

// IsStandard reports whether id names a library provided by the toolchain.
func (p Policy) IsStandard(id dag.ModuleID) bool {
	return id.AnyName(func(name string) bool {
		if slices.Contains(p.StandardNames, name) {
			return true
		}
		for _, prefix := range p.StandardPrefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	})
}

// HasSimpleName reports whether every unique name of id is free of path and
// namespace separators.
func HasSimpleName(id dag.ModuleID) bool {
	return id.AllNames(func(name string) bool {
		return !strings.ContainsAny(name, ".:")
	})
}

// Compare returns a negative number when a sorts before b, a positive number
// when after, and zero when they are equal. It is a strict weak ordering.
func (p Policy) Compare(a, b dag.ModuleID) int {
	if a == b {
		return 0
	}

	aStd, bStd := p.IsStandard(a), p.IsStandard(b)
	switch {
	case aStd && !bStd:
		return 1
	case !aStd && bStd:
		return -1
	}

	aSimple, bSimple := HasSimpleName(a), HasSimpleName(b)
	switch {
	case aSimple && !bSimple:
		return -1
	case !aSimple && bSimple:
		return 1
	}

	return slices.Compare(a.Names(), b.Names())
}

// Sort orders nodes in place by their identities.
func (p Policy) Sort(nodes []*dag.Node) {
	slices.SortStableFunc(nodes, func(a, b *dag.Node) int {
		return p.Compare(a.ID, b.ID)
	})
}

// SortIDs orders identities in place.
func (p Policy) SortIDs(ids []dag.ModuleID) {
	slices.SortStableFunc(ids, p.Compare)
}
