package urlpattern

import "strings"

// SegmentKind discriminates the segment variants of a parsed pattern.
type SegmentKind int

const (
	// KindSeparator is a single "/".
	KindSeparator SegmentKind = iota
	// KindLiteral is a run of literal path characters.
	KindLiteral
	// KindParam is a brace-delimited parameter capturing one path segment.
	KindParam
)

// Segment is one element of a parsed pattern.
// For KindLiteral, Text holds the literal run. For KindParam, Text holds
// the parameter name; an empty name denotes a positional parameter.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Pattern is the parsed form of a URL pattern. It is immutable after Parse
// and safe for concurrent use.
type Pattern struct {
	raw      string
	segments []Segment
}

// String returns the original pattern text.
func (p Pattern) String() string { return p.raw }

// Segments returns the parsed segment sequence. A non-zero Pattern always
// starts with a separator. Callers must not modify the returned slice.
func (p Pattern) Segments() []Segment { return p.segments }

// IsPrefix reports whether the pattern ends with a separator, which marks
// it as a prefix pattern suitable for sub-route delegation.
func (p Pattern) IsPrefix() bool {
	return len(p.segments) > 0 && p.segments[len(p.segments)-1].Kind == KindSeparator
}

// Params returns the parameter names in pattern order. Positional parameters
// contribute an empty string.
func (p Pattern) Params() []string {
	var names []string
	for _, s := range p.segments {
		if s.Kind == KindParam {
			names = append(names, s.Text)
		}
	}
	return names
}

// Parse compiles a pattern string into its segment sequence. The pattern
// must start with "/". Errors are always of type *ParseError.
func Parse(pattern string) (Pattern, error) {
	if pattern == "" || pattern[0] != '/' {
		return Pattern{}, &ParseError{
			Kind:    ErrNoLeadingSlash,
			Pattern: pattern,
			Start:   0,
			End:     1,
		}
	}

	var segments []Segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, Segment{Kind: KindLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch {
		case c == '/':
			flush()
			segments = append(segments, Segment{Kind: KindSeparator})
			i++

		case c == '{':
			// Parameters must directly follow a separator; they cannot be
			// glued to literal text or to a preceding parameter.
			if lit.Len() > 0 || len(segments) == 0 || segments[len(segments)-1].Kind != KindSeparator {
				return Pattern{}, &ParseError{
					Kind:    ErrParameterNotAllowed,
					Pattern: pattern,
					Start:   i,
					End:     i + 1,
				}
			}
			start := i
			i++
			nameStart := i
			for i < len(pattern) && pattern[i] != '}' {
				if !isParamChar(pattern[i]) {
					return Pattern{}, &ParseError{
						Kind:    ErrInvalidParameterCharacter,
						Pattern: pattern,
						Start:   start,
						End:     i + 1,
						Char:    pattern[i],
					}
				}
				i++
			}
			if i == len(pattern) {
				return Pattern{}, &ParseError{
					Kind:    ErrUnclosedParameter,
					Pattern: pattern,
					Start:   start,
					End:     len(pattern),
				}
			}
			name := pattern[nameStart:i]
			if name != "" && name[0] >= '0' && name[0] <= '9' {
				return Pattern{}, &ParseError{
					Kind:    ErrInvalidParameterCharacter,
					Pattern: pattern,
					Start:   start,
					End:     nameStart + 1,
					Char:    name[0],
				}
			}
			segments = append(segments, Segment{Kind: KindParam, Text: name})
			i++ // closing brace

		case isPathChar(c):
			lit.WriteByte(c)
			i++

		default:
			return Pattern{}, &ParseError{
				Kind:    ErrUnexpectedCharacter,
				Pattern: pattern,
				Start:   i,
				End:     i + 1,
				Char:    c,
			}
		}
	}
	flush()

	return Pattern{raw: pattern, segments: segments}, nil
}

// isPathChar reports whether c may appear bare in a pattern literal.
// This is the RFC 3986 path-safe set, with "/" handled as a separator and
// braces reserved for parameters.
func isPathChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', ':', '@', '%':
		return true
	}
	return false
}

// isParamChar reports whether c may appear inside a parameter name.
func isParamChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
