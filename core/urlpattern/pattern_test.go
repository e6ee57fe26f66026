package urlpattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxroute/core/urlpattern"
)

func TestParse(t *testing.T) {
	t.Parallel()

	sep := urlpattern.Segment{Kind: urlpattern.KindSeparator}
	lit := func(s string) urlpattern.Segment {
		return urlpattern.Segment{Kind: urlpattern.KindLiteral, Text: s}
	}
	param := func(name string) urlpattern.Segment {
		return urlpattern.Segment{Kind: urlpattern.KindParam, Text: name}
	}

	tests := []struct {
		name    string
		pattern string
		want    []urlpattern.Segment
	}{
		{
			name:    "root",
			pattern: "/",
			want:    []urlpattern.Segment{sep},
		},
		{
			name:    "single literal",
			pattern: "/users",
			want:    []urlpattern.Segment{sep, lit("users")},
		},
		{
			name:    "named parameter",
			pattern: "/users/{user_id}",
			want:    []urlpattern.Segment{sep, lit("users"), sep, param("user_id")},
		},
		{
			name:    "positional parameter",
			pattern: "/users/{}",
			want:    []urlpattern.Segment{sep, lit("users"), sep, param("")},
		},
		{
			name:    "trailing separator",
			pattern: "/api/",
			want:    []urlpattern.Segment{sep, lit("api"), sep},
		},
		{
			name:    "mixed parameters",
			pattern: "/a/{x}/b/{}",
			want:    []urlpattern.Segment{sep, lit("a"), sep, param("x"), sep, lit("b"), sep, param("")},
		},
		{
			name:    "path-safe punctuation in literal",
			pattern: "/v1.2/user@host/a-b_c~d",
			want:    []urlpattern.Segment{sep, lit("v1.2"), sep, lit("user@host"), sep, lit("a-b_c~d")},
		},
		{
			name:    "percent escape passes through as literal",
			pattern: "/caf%C3%A9",
			want:    []urlpattern.Segment{sep, lit("caf%C3%A9")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := urlpattern.Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments())
			assert.Equal(t, tt.pattern, p.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		kind    urlpattern.ErrorKind
		start   int
	}{
		{
			name:    "empty pattern",
			pattern: "",
			kind:    urlpattern.ErrNoLeadingSlash,
		},
		{
			name:    "missing leading slash",
			pattern: "users",
			kind:    urlpattern.ErrNoLeadingSlash,
		},
		{
			name:    "unexpected character",
			pattern: "/foo<bar",
			kind:    urlpattern.ErrUnexpectedCharacter,
			start:   4,
		},
		{
			name:    "space in literal",
			pattern: "/foo bar",
			kind:    urlpattern.ErrUnexpectedCharacter,
			start:   4,
		},
		{
			name:    "parameter glued to literal",
			pattern: "/foo-{bar}",
			kind:    urlpattern.ErrParameterNotAllowed,
			start:   5,
		},
		{
			name:    "adjacent parameters",
			pattern: "/{a}{b}",
			kind:    urlpattern.ErrParameterNotAllowed,
			start:   4,
		},
		{
			name:    "parameter at pattern start",
			pattern: "{a}/b",
			kind:    urlpattern.ErrNoLeadingSlash,
		},
		{
			name:    "unclosed parameter",
			pattern: "/users/{id",
			kind:    urlpattern.ErrUnclosedParameter,
			start:   7,
		},
		{
			name:    "dash in parameter name",
			pattern: "/users/{user-id}",
			kind:    urlpattern.ErrInvalidParameterCharacter,
			start:   7,
		},
		{
			name:    "digit-first parameter name",
			pattern: "/users/{1st}",
			kind:    urlpattern.ErrInvalidParameterCharacter,
			start:   7,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := urlpattern.Parse(tt.pattern)
			require.Error(t, err)

			var perr *urlpattern.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.start, perr.Start)
			assert.Equal(t, tt.pattern, perr.Pattern)
		})
	}
}

func TestParseSlashHandling(t *testing.T) {
	t.Parallel()

	// Consecutive separators are each their own segment; the matcher decides
	// what to do with empty segments, not the parser.
	p, err := urlpattern.Parse("//x")
	require.NoError(t, err)
	assert.Len(t, p.Segments(), 3)
}

func TestPatternIsPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    bool
	}{
		{"/", true},
		{"/api/", true},
		{"/api/{v}/", true},
		{"/api", false},
		{"/api/{v}", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			p, err := urlpattern.Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.IsPrefix())
		})
	}
}

func TestPatternParams(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.Parse("/a/{x}/{}/b/{y}")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "", "y"}, p.Params())

	p, err = urlpattern.Parse("/plain")
	require.NoError(t, err)
	assert.Empty(t, p.Params())
}

func TestParseErrorDiagnostic(t *testing.T) {
	t.Parallel()

	_, err := urlpattern.Parse("/foo-{bar}")
	require.Error(t, err)

	var perr *urlpattern.ParseError
	require.ErrorAs(t, err, &perr)

	diag := perr.Diagnostic()
	assert.Contains(t, diag, "/foo-{bar}")
	// Caret line points at the offending "{".
	assert.Contains(t, diag, "\n     ^")
}
