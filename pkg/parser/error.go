package parser

import (
	"fmt"

	"github.com/aaronc81/yascad-go/pkg/source"
	"github.com/aaronc81/yascad-go/pkg/token"
)

// ErrorKind enumerates the parse-time diagnostics of §7.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEnd
	InvalidNumber
	RequiredParameterAfterOptionalParameter
	PositionalArgumentAfterNamedArgument
)

// Error is one parse-time diagnostic. Got is only meaningful when Kind is
// UnexpectedToken.
type Error struct {
	Kind ErrorKind
	Span source.Span
	Got  token.Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected %s", e.Got)
	case UnexpectedEnd:
		return "unexpected end-of-file"
	case InvalidNumber:
		return "number could not be parsed, possibly out-of-range?"
	case RequiredParameterAfterOptionalParameter:
		return "a required parameter may not follow an optional parameter"
	case PositionalArgumentAfterNamedArgument:
		return "a positional argument may not follow a named argument"
	default:
		return "parse error"
	}
}
