package urlpattern

import (
	"fmt"
	"strings"
)

// ErrorKind classifies pattern parse failures.
type ErrorKind int

const (
	// ErrNoLeadingSlash: the pattern does not start with "/".
	ErrNoLeadingSlash ErrorKind = iota
	// ErrUnexpectedCharacter: a character outside the path-safe set appeared
	// in a literal position.
	ErrUnexpectedCharacter
	// ErrParameterNotAllowed: a "{" appeared somewhere other than directly
	// after a separator.
	ErrParameterNotAllowed
	// ErrInvalidParameterCharacter: a parameter name contains a character
	// other than letters, digits, and underscore, or starts with a digit.
	ErrInvalidParameterCharacter
	// ErrUnclosedParameter: a "{" without a matching "}".
	ErrUnclosedParameter
)

// ParseError describes a pattern parse failure. Start and End are byte
// offsets into Pattern delimiting the offending span (End exclusive), so the
// error can be rendered as a caret diagnostic.
type ParseError struct {
	Kind    ErrorKind
	Pattern string
	Start   int
	End     int
	Char    byte // offending character, when applicable
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrNoLeadingSlash:
		return fmt.Sprintf("pattern %q must start with '/'", e.Pattern)
	case ErrUnexpectedCharacter:
		return fmt.Sprintf("pattern %q: unexpected character %q at offset %d", e.Pattern, e.Char, e.Start)
	case ErrParameterNotAllowed:
		return fmt.Sprintf("pattern %q: parameter not allowed at offset %d, parameters must directly follow '/'", e.Pattern, e.Start)
	case ErrInvalidParameterCharacter:
		return fmt.Sprintf("pattern %q: invalid character %q in parameter name at offset %d", e.Pattern, e.Char, e.End-1)
	case ErrUnclosedParameter:
		return fmt.Sprintf("pattern %q: unclosed parameter starting at offset %d", e.Pattern, e.Start)
	default:
		return fmt.Sprintf("pattern %q: invalid pattern", e.Pattern)
	}
}

// Diagnostic renders the pattern with a caret line pointing at the
// offending span. Intended for developer-facing startup failures.
func (e *ParseError) Diagnostic() string {
	width := e.End - e.Start
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteByte('\n')
	b.WriteString(e.Pattern)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", e.Start))
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
