package issues

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/observability"
	"github.com/matzehuels/linkdiag/pkg/ordering"
	"github.com/matzehuels/linkdiag/pkg/render/tree"
	"github.com/matzehuels/linkdiag/pkg/sink"
)

const (
	unresolvedExplanation = "\n\nThis could happen if the required dependency is missing in the project." +
		" Or if there are two (or more) dependency libraries, where one library (%s)" +
		" was compiled against the different version of the other library" +
		" than the one currently used in the project." +
		" Please check that the project configuration is correct and has consistent versions of all required dependencies."

	mismatchExplanation = "\n\nThis could happen if there are two (or more) dependency libraries," +
		" where one library was compiled against the different version of the other library" +
		" than the one currently used in the project." +
		" Please check that the project configuration is correct and has consistent versions of dependencies."
)

// Composer builds diagnostics and delivers them.
type Composer struct {
	// Builder discovers the user-visible module graph. Defaults to an
	// unversioned deps.DefaultBuilder.
	Builder deps.Builder
	// Sink receives the composed message. Required by Raise.
	Sink sink.Sink
	// Logger records composed diagnostics at debug level (optional).
	Logger *log.Logger
}

func (c *Composer) builder() deps.Builder {
	if c.Builder != nil {
		return c.Builder
	}
	return &deps.DefaultBuilder{Ordering: ordering.Default()}
}

// Message returns the full diagnostic text for issue. It fails only if the
// builder does, which indicates a broken module universe rather than a
// linkage problem.
func (c *Composer) Message(issue Issue) (string, error) {
	var b strings.Builder

	switch is := issue.(type) {
	case UnresolvedSymbol:
		if is.Module == nil {
			return "", errors.New(errors.ErrCodeInvalidInput, "unresolved symbol %s has no referencing module", is.Symbol)
		}
		current, err := c.builder().ModuleID(is.Module)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Module %s has a reference to symbol %s.", current, is.Symbol)
		b.WriteString(" Neither the module itself nor its dependencies contain such declaration.")
		fmt.Fprintf(&b, unresolvedExplanation, current)
		if err := c.appendModules(&b, is.Modules, current); err != nil {
			return "", err
		}

	case ModuleNotLoaded:
		fmt.Fprintf(&b, "Could not load module %s", is.Module)
		if is.Symbol != "" {
			fmt.Fprintf(&b, " in an attempt to find deserializer for symbol %s.", is.Symbol)
		}

	case TypeMismatch:
		b.WriteString(is.Description)
		b.WriteString(mismatchExplanation)
		if err := c.appendModules(&b, is.Modules, dag.Root); err != nil {
			return "", err
		}

	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unknown issue %T", issue)
	}

	return b.String(), nil
}

// appendModules writes the "Project dependencies" section.
func (c *Composer) appendModules(b *strings.Builder, modules []deps.Module, highlight dag.ModuleID) error {
	builder := c.builder()
	g, err := builder.Build(modules)
	if err != nil {
		return err
	}

	b.WriteString("\n\nProject dependencies:")
	if len(g) == 0 {
		b.WriteString(" <empty>")
		return nil
	}
	if text := tree.Render(g, tree.Options{Policy: builder.Policy(), Highlight: highlight}); text != "" {
		b.WriteString("\n")
		b.WriteString(text)
	}
	return nil
}

// Raise composes the diagnostic for issue, reports it to the sink at error
// severity without a location and returns the fatal *LinkageError.
//
// Raise never returns nil. If the message cannot be composed, nothing is
// reported and the composition error (an internal invariant failure) is
// returned instead.
func (c *Composer) Raise(issue Issue) error {
	if c.Sink == nil {
		return errors.New(errors.ErrCodeInternal, "composer has no diagnostic sink")
	}
	msg, err := c.Message(issue)
	if err != nil {
		return err
	}

	event := uuid.New()
	if c.Logger != nil {
		c.Logger.Debug("composed linkage diagnostic",
			"kind", issue.Kind(),
			"modules", moduleCount(issue),
			"event", event)
	}
	c.Sink.Report(sink.SeverityError, msg, nil)
	observability.Diagnostics().OnIssue(string(issue.Kind()), event.String())

	return newLinkageError(issue, event)
}

func moduleCount(issue Issue) int {
	switch is := issue.(type) {
	case UnresolvedSymbol:
		return len(is.Modules)
	case TypeMismatch:
		return len(is.Modules)
	}
	return 0
}
