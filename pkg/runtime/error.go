package runtime

import (
	"fmt"
	"strings"

	"github.com/aaronc81/yascad-go/pkg/source"
)

// RuntimeErrorKind enumerates the runtime diagnostics of §7: type,
// name, arity/binding and semantic errors. This is the authoritative
// kind list from spec.md §7, which synthesizes (and in places
// supersedes the naming of) several inconsistent snapshots across
// original_source/lang/backend/src/{error,geometry_table,builtin/operators}.rs.
type RuntimeErrorKind int

const (
	// Type errors.
	IncorrectType RuntimeErrorKind = iota
	IncorrectVectorLength

	// Name errors.
	UndefinedIdentifier
	InvalidIdentifier
	UndefinedField
	DuplicateName

	// Arity/binding errors.
	IncorrectArity
	DuplicateNamedArgument
	UndefinedNamedArgument
	MissingNamedArguments
	NamedArgumentRepeatsPositional

	// Semantic errors.
	MixedGeometryDisposition
	MixedGeometryDimensions
	Requires2DGeometry
	ChildrenExpected
	ChildrenInvalid
	ItReferenceInvalid
	ItReferenceUnsupportedNotOneChild
	FlippedRange
)

// RuntimeError is one evaluation-time diagnostic (§7). Interpretation
// fails at the first one raised; only its fields relevant to Kind are
// populated, the rest left at their zero value.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Span source.Span

	// IncorrectType, IncorrectVectorLength, IncorrectArity.
	Expected string
	Actual   string

	// UndefinedIdentifier, UndefinedField, DuplicateName,
	// DuplicateNamedArgument, UndefinedNamedArgument.
	Name string

	// InvalidIdentifier: what the name actually resolved to.
	ResolvedKind string

	// UndefinedField: the runtime type the field was looked up on.
	FieldOwnerType string

	// MissingNamedArguments: every still-unbound required parameter.
	MissingNames []string
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case IncorrectType:
		return fmt.Sprintf("type error - expected %s, got %s", e.Expected, e.Actual)
	case IncorrectVectorLength:
		return fmt.Sprintf("vector of incorrect length - expected %s, got %s", e.Expected, e.Actual)
	case UndefinedIdentifier:
		return fmt.Sprintf("undefined identifier %q", e.Name)
	case InvalidIdentifier:
		return fmt.Sprintf("%q does not refer to a value here (resolved to a %s)", e.Name, e.ResolvedKind)
	case UndefinedField:
		return fmt.Sprintf("%s has no field %q", e.FieldOwnerType, e.Name)
	case DuplicateName:
		return fmt.Sprintf("%q is already bound in this scope or an ancestor", e.Name)
	case IncorrectArity:
		return fmt.Sprintf("incorrect number of arguments - expected %s, got %s", e.Expected, e.Actual)
	case DuplicateNamedArgument:
		return fmt.Sprintf("argument %q given more than once", e.Name)
	case UndefinedNamedArgument:
		return fmt.Sprintf("no parameter named %q", e.Name)
	case MissingNamedArguments:
		return fmt.Sprintf("missing required argument(s): %s", strings.Join(e.MissingNames, ", "))
	case NamedArgumentRepeatsPositional:
		return fmt.Sprintf("named argument %q repeats a positional argument", e.Name)
	case MixedGeometryDisposition:
		return "cannot combine physical and virtual geometry in one operation"
	case MixedGeometryDimensions:
		return "cannot combine 2D and 3D geometry in one operation"
	case Requires2DGeometry:
		return "this operation requires 2D geometry"
	case ChildrenExpected:
		return "this operator requires at least one child"
	case ChildrenInvalid:
		return "children() is only valid inside a user-defined operator body"
	case ItReferenceInvalid:
		return "it is not available here"
	case ItReferenceUnsupportedNotOneChild:
		return "it refers to a single operator child, but there was not exactly one"
	case FlippedRange:
		return "range end must not be less than its start"
	default:
		return "runtime error"
	}
}
