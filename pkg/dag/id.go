package dag

import (
	"slices"
	"strings"
)

// nameSep joins unique names inside a ModuleID key. Unique names never
// contain NUL, so splitting on it is lossless.
const nameSep = "\x00"

// ModuleID identifies a compiled library by one or more equivalent unique
// names. ModuleID is comparable and can be used as a map key; two IDs are
// equal iff their name sets are equal.
//
// The zero value is [Root].
type ModuleID struct {
	key string
}

// Root is the sentinel identity of the module currently being compiled.
// Direct project dependencies record their requested version under Root.
var Root = ModuleID{}

// NewModuleID creates an identity from the given unique names. Names are
// sorted and deduplicated; empty names are ignored. Returns
// ErrInvalidModuleID if no non-empty name remains.
func NewModuleID(names ...string) (ModuleID, error) {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return Root, ErrInvalidModuleID
	}
	slices.Sort(clean)
	clean = slices.Compact(clean)
	return ModuleID{key: strings.Join(clean, nameSep)}, nil
}

// MustModuleID is like NewModuleID but panics on invalid input.
// It is intended for tests and package-level fixtures.
func MustModuleID(names ...string) ModuleID {
	id, err := NewModuleID(names...)
	if err != nil {
		panic(err)
	}
	return id
}

// IsRoot reports whether id is the [Root] sentinel.
func (id ModuleID) IsRoot() bool { return id.key == "" }

// Names returns the unique names in canonical (sorted) order.
// Returns nil for Root.
func (id ModuleID) Names() []string {
	if id.IsRoot() {
		return nil
	}
	return strings.Split(id.key, nameSep)
}

// AnyName reports whether at least one unique name satisfies pred.
func (id ModuleID) AnyName(pred func(string) bool) bool {
	return slices.ContainsFunc(id.Names(), pred)
}

// AllNames reports whether every unique name satisfies pred.
// Root has no names and yields false.
func (id ModuleID) AllNames(pred func(string) bool) bool {
	names := id.Names()
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if !pred(n) {
			return false
		}
	}
	return true
}

// String joins the unique names with ", ".
func (id ModuleID) String() string {
	if id.IsRoot() {
		return "<root>"
	}
	return strings.Join(id.Names(), ", ")
}

// compareKeys orders identities by canonical key. It is used for stable
// iteration only; display order belongs to the ordering package.
func compareKeys(a, b ModuleID) int { return strings.Compare(a.key, b.key) }
