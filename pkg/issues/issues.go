// Package issues composes the diagnostics for fatal linkage failures.
//
// Each failure kind is a small value type implementing [Issue]. A single
// [Composer] turns any of them into a message (cause, explanation, advice
// and, where a module graph is available, the rendered dependency tree),
// delivers it to a [sink.Sink] at error severity and returns a
// [*LinkageError] that the linker driver must treat as fatal.
//
//	c := &issues.Composer{Builder: b, Sink: s}
//	err := c.Raise(issues.UnresolvedSymbol{Symbol: sig, Module: m, Modules: all})
//	if issues.IsFatal(err) {
//	    return err // stop linking
//	}
package issues

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
)

// Kind names a failure kind.
type Kind string

const (
	KindUnresolvedSymbol Kind = "unresolved-symbol"
	KindModuleNotLoaded  Kind = "module-not-loaded"
	KindTypeMismatch     Kind = "type-mismatch"
)

// Issue is a fatal linkage failure. The set of implementations is closed:
// UnresolvedSymbol, ModuleNotLoaded and TypeMismatch.
type Issue interface {
	Kind() Kind
	Code() errors.Code
	isIssue()
}

// UnresolvedSymbol reports a reference that neither the referencing module
// nor its dependencies declare.
type UnresolvedSymbol struct {
	Symbol  string        // Human-readable name of the missing symbol
	Module  deps.Module   // Module holding the reference
	Modules []deps.Module // Every module participating in the link
}

// ModuleNotLoaded reports a module that could not be loaded while looking
// up a symbol's declaration. No dependency tree is available for it.
type ModuleNotLoaded struct {
	Module string // Name of the module that failed to load
	Symbol string // Symbol being looked up (optional)
}

// TypeMismatch reports two uses of one symbol with incompatible kinds,
// typically caused by binary-incompatible library revisions.
type TypeMismatch struct {
	Description string        // Description of the mismatch
	Modules     []deps.Module // Every module participating in the link
}

func (UnresolvedSymbol) Kind() Kind { return KindUnresolvedSymbol }
func (ModuleNotLoaded) Kind() Kind  { return KindModuleNotLoaded }
func (TypeMismatch) Kind() Kind     { return KindTypeMismatch }

func (UnresolvedSymbol) Code() errors.Code { return errors.ErrCodeUnresolvedSymbol }
func (ModuleNotLoaded) Code() errors.Code  { return errors.ErrCodeModuleNotLoaded }
func (TypeMismatch) Code() errors.Code     { return errors.ErrCodeTypeMismatch }

func (UnresolvedSymbol) isIssue() {}
func (ModuleNotLoaded) isIssue()  {}
func (TypeMismatch) isIssue()     {}

// ErrLinkageFailed is wrapped by every LinkageError.
var ErrLinkageFailed = stderrors.New("linkage failed")

// LinkageError is the fatal signal returned after a diagnostic has been
// delivered. The remainder of the link step must not run.
type LinkageError struct {
	Kind    Kind      // Failure kind
	EventID uuid.UUID // Correlates the error with the delivered diagnostic
	cause   *errors.Error
}

func newLinkageError(issue Issue, event uuid.UUID) *LinkageError {
	return &LinkageError{
		Kind:    issue.Kind(),
		EventID: event,
		cause:   errors.Wrap(issue.Code(), ErrLinkageFailed, "%s", issue.Kind()),
	}
}

// Error implements the error interface.
func (e *LinkageError) Error() string {
	return fmt.Sprintf("linkage failed: %s (event %s)", e.Kind, e.EventID)
}

// Unwrap exposes the coded cause, so errors.Is(err, ErrLinkageFailed) and
// errors.GetCode work on a LinkageError.
func (e *LinkageError) Unwrap() error { return e.cause }

// IsFatal reports whether err carries a LinkageError.
func IsFatal(err error) bool {
	var le *LinkageError
	return stderrors.As(err, &le)
}
