package route

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/dmitrymomot/hxroute/core/binder"
	"github.com/dmitrymomot/hxroute/core/urlpattern"
)

// Nested is the hook a compiled route set exposes to a parent set for
// sub-route and catch-all delegation. It is implemented only by *Set.
type Nested interface {
	decodeNested(r *http.Request, path string) (any, error)
	formatNested(v any) string
	methodNested(v any) string
	routesNested() []Route
	routeType() reflect.Type
}

// Route describes a single compiled route for introspection.
type Route struct {
	Method  string
	Pattern string
}

// Set is the compiled form of one route sum type: matcher, formatter, and
// decoder in one. Sets are built once by New and are immutable afterwards;
// any number of requests may match, decode, and format concurrently.
type Set[R any] struct {
	rtype    reflect.Type
	subs     []*Def
	exacts   []*exactEntry
	exactIdx map[string]*exactEntry
	catchAll *Def
	byType   map[reflect.Type]*Def
}

// exactEntry groups every method declared for one literal pattern.
type exactEntry struct {
	raw     string
	re      *regexp.Regexp
	methods map[string]*Def
	order   []string // declared methods, in declaration order
}

var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// bodyMethods are the methods for which a body field is valid.
var bodyMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// New compiles the given definitions into a Set for the route interface R.
// Every definition-time invariant is checked here: pattern syntax, variant
// field roles, parameter bindings, method validity, sub-route prefix
// ambiguity. Errors from New should abort startup.
func New[R any](defs ...Def) (*Set[R], error) {
	rtype := reflect.TypeOf((*R)(nil)).Elem()
	if rtype.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: got %s", ErrNotInterface, rtype)
	}

	s := &Set[R]{
		rtype:    rtype,
		exactIdx: make(map[string]*exactEntry),
		byType:   make(map[reflect.Type]*Def),
	}
	for i := range defs {
		d := defs[i]
		if err := s.add(&d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Must is like New but panics on error. Intended for package-level sets,
// where a bad definition should fail the program immediately.
func Must[R any](defs ...Def) *Set[R] {
	s, err := New[R](defs...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set[R]) add(d *Def) error {
	if d.variant == nil || d.variant.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotStruct, d.variant)
	}

	switch {
	case d.variant.Implements(s.rtype):
		d.usePtr = false
	case reflect.PointerTo(d.variant).Implements(s.rtype):
		d.usePtr = true
	default:
		return fmt.Errorf("%w: %s does not implement %s", ErrVariantMismatch, d.variant, s.rtype)
	}

	if err := s.scanFields(d); err != nil {
		return err
	}

	if d.kind != KindCatchAll {
		raw := d.rawPattern
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		p, err := urlpattern.Parse(raw)
		if err != nil {
			if perr, ok := err.(*urlpattern.ParseError); ok {
				return fmt.Errorf("%w: variant %s:\n%s", ErrInvalidPattern, d.variant, perr.Diagnostic())
			}
			return fmt.Errorf("%w: variant %s: %v", ErrInvalidPattern, d.variant, err)
		}
		d.rawPattern = raw
		d.pattern = p

		if err := s.bindParams(d); err != nil {
			return err
		}
		if err := compileDef(d); err != nil {
			return err
		}
	}

	if err := s.registerVariant(d); err != nil {
		return err
	}

	switch d.kind {
	case KindSubroute:
		return s.addSubroute(d)
	case KindCatchAll:
		return s.addCatchAll(d)
	default:
		return s.addExact(d)
	}
}

func (s *Set[R]) addSubroute(d *Def) error {
	if !d.pattern.IsPrefix() {
		return fmt.Errorf("%w: variant %s pattern %q", ErrNotPrefixPattern, d.variant, d.rawPattern)
	}
	if d.nested == nil {
		return fmt.Errorf("%w: variant %s", ErrNilNested, d.variant)
	}
	key := structuralKey(d.pattern)
	for _, sub := range s.subs {
		if structuralKey(sub.pattern) == key {
			return fmt.Errorf("%w: %q and %q", ErrAmbiguousSubroute, sub.rawPattern, d.rawPattern)
		}
	}
	s.subs = append(s.subs, d)
	return nil
}

func (s *Set[R]) addCatchAll(d *Def) error {
	if s.catchAll != nil {
		return fmt.Errorf("%w: %s and %s", ErrDuplicateCatchAll, s.catchAll.variant, d.variant)
	}
	s.catchAll = d
	return nil
}

func (s *Set[R]) addExact(d *Def) error {
	d.method = strings.ToUpper(d.method)
	if !validMethods[d.method] {
		return fmt.Errorf("%w: %q on variant %s", ErrInvalidMethod, d.method, d.variant)
	}
	if d.fields.body != -1 && !bodyMethods[d.method] {
		return fmt.Errorf("%w: variant %s method %s", ErrBodyNotAllowed, d.variant, d.method)
	}

	e := s.exactIdx[d.rawPattern]
	if e == nil {
		e = &exactEntry{
			raw:     d.rawPattern,
			re:      d.re,
			methods: make(map[string]*Def),
		}
		s.exactIdx[d.rawPattern] = e
		s.exacts = append(s.exacts, e)
	}
	if e.methods[d.method] != nil {
		return fmt.Errorf("%w: %s %q", ErrDuplicateRoute, d.method, d.rawPattern)
	}
	e.methods[d.method] = d
	e.order = append(e.order, d.method)
	return nil
}

// registerVariant records the variant for Format lookups. A variant may be
// declared several times only when every declaration shares one pattern
// (the multi-method case); the first declaration wins the lookup.
func (s *Set[R]) registerVariant(d *Def) error {
	key := d.variant
	if d.usePtr {
		key = reflect.PointerTo(d.variant)
	}
	if prev, ok := s.byType[key]; ok {
		if prev.rawPattern != d.rawPattern || prev.kind != d.kind {
			return fmt.Errorf("%w: %s declared for %q and %q",
				ErrVariantReuse, d.variant, prev.rawPattern, d.rawPattern)
		}
		return nil
	}
	s.byType[key] = d
	return nil
}

// scanFields resolves the role of every variant field from its tags and
// checks the role invariants that do not depend on the pattern.
func (s *Set[R]) scanFields(d *Def) error {
	fs := fieldSet{
		named:    make(map[string]int),
		query:    -1,
		body:     -1,
		subroute: -1,
		rest:     -1,
	}
	t := d.variant

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		if name, ok := f.Tag.Lookup("path"); ok {
			if name == "-" {
				continue
			}
			if !binder.CanScalar(f.Type) {
				return fmt.Errorf("%w: %s.%s (%s)", ErrUnsupportedParam, t, f.Name, f.Type)
			}
			if name == "" {
				fs.positional = append(fs.positional, i)
				continue
			}
			if _, dup := fs.named[name]; dup {
				return fmt.Errorf("%w: %s.%s binds %q twice", ErrDuplicateParam, t, f.Name, name)
			}
			fs.named[name] = i
			continue
		}

		if _, ok := f.Tag.Lookup("query"); ok {
			if fs.query != -1 {
				return fmt.Errorf("%w: %s", ErrMultipleQuery, t)
			}
			// A bag that decodes must also format, so reject un-encodable
			// shapes here rather than dropping the query at format time.
			if err := binder.CanEncodeQuery(f.Type); err != nil {
				return fmt.Errorf("%w: %s.%s: %v", ErrInvalidQueryBag, t, f.Name, err)
			}
			fs.query = i
			continue
		}

		if enc, ok := f.Tag.Lookup("body"); ok {
			if fs.body != -1 {
				return fmt.Errorf("%w: %s", ErrMultipleBody, t)
			}
			if enc == "" {
				enc = "form"
			}
			if enc != "form" && enc != "json" {
				return fmt.Errorf("%w: %s.%s tagged %q", ErrInvalidBodyEnc, t, f.Name, enc)
			}
			fs.body = i
			fs.bodyEnc = enc
			continue
		}

		if _, ok := f.Tag.Lookup("subroute"); ok {
			if fs.subroute != -1 {
				return fmt.Errorf("%w: %s", ErrMultipleSubroute, t)
			}
			fs.subroute = i
			continue
		}

		if _, ok := f.Tag.Lookup("rest"); ok {
			if d.kind != KindCatchAll || f.Type.Kind() != reflect.String {
				return fmt.Errorf("%w: %s.%s", ErrRestField, t, f.Name)
			}
			fs.rest = i
			continue
		}
	}

	// Role combinations that depend on the definition kind.
	switch d.kind {
	case KindSubroute:
		if fs.subroute == -1 {
			return fmt.Errorf("%w: %s", ErrMissingSubroute, t)
		}
		if err := checkNestedField(d, t.Field(fs.subroute)); err != nil {
			return err
		}
	case KindCatchAll:
		if len(fs.named) > 0 || len(fs.positional) > 0 || fs.query != -1 || fs.body != -1 {
			return fmt.Errorf("%w: catch-all %s may only carry rest or subroute fields", ErrRestField, t)
		}
		if d.nested != nil {
			if fs.subroute == -1 {
				return fmt.Errorf("%w: %s", ErrMissingSubroute, t)
			}
			if err := checkNestedField(d, t.Field(fs.subroute)); err != nil {
				return err
			}
		} else if fs.subroute != -1 {
			return fmt.Errorf("%w: %s has a subroute field but no nested set", ErrNilNested, t)
		}
	default:
		if fs.subroute != -1 {
			return fmt.Errorf("%w: %s", ErrSubrouteField, t)
		}
		if fs.rest != -1 {
			return fmt.Errorf("%w: %s", ErrRestField, t)
		}
	}

	d.fields = fs
	return nil
}

func checkNestedField(d *Def, f reflect.StructField) error {
	if d.nested == nil {
		return fmt.Errorf("%w: variant %s", ErrNilNested, d.variant)
	}
	if nt := d.nested.routeType(); nt != f.Type {
		return fmt.Errorf("%w: field %s.%s is %s, nested set routes %s",
			ErrNestedTypeMismatch, d.variant, f.Name, f.Type, nt)
	}
	return nil
}

// bindParams checks that the variant's path fields line up with the
// pattern's parameters, both named and positional.
func (s *Set[R]) bindParams(d *Def) error {
	params := d.pattern.Params()

	var unnamed int
	seen := make(map[string]bool, len(d.fields.named))
	for _, name := range params {
		if name == "" {
			unnamed++
			continue
		}
		if _, ok := d.fields.named[name]; !ok {
			return fmt.Errorf("%w: pattern %q parameter %q has no field on %s",
				ErrParamCount, d.rawPattern, name, d.variant)
		}
		seen[name] = true
	}
	for name := range d.fields.named {
		if !seen[name] {
			return fmt.Errorf("%w: %s field bound to %q, pattern %q",
				ErrUnboundParam, d.variant, name, d.rawPattern)
		}
	}
	if unnamed != len(d.fields.positional) {
		return fmt.Errorf("%w: pattern %q has %d positional parameters, %s has %d positional fields",
			ErrParamCount, d.rawPattern, unnamed, d.variant, len(d.fields.positional))
	}
	return nil
}

// compileDef builds the pattern's regexp once and precomputes the capture
// plan so request-time matching never touches reflection metadata.
func compileDef(d *Def) error {
	var b strings.Builder
	b.WriteString("^")

	segs := d.pattern.Segments()
	if d.kind == KindSubroute {
		segs = segs[:len(segs)-1] // trailing separator is owned by the nested path
	}

	var captures []capture
	posIdx := 0
	for _, seg := range segs {
		switch seg.Kind {
		case urlpattern.KindSeparator:
			b.WriteString("/")
		case urlpattern.KindLiteral:
			b.WriteString(regexp.QuoteMeta(seg.Text))
		case urlpattern.KindParam:
			b.WriteString("([^/]+)")
			if seg.Text != "" {
				captures = append(captures, capture{
					field: d.fields.named[seg.Text],
					name:  seg.Text,
					label: seg.Text,
				})
			} else {
				captures = append(captures, capture{
					field: d.fields.positional[posIdx],
					label: fmt.Sprintf("#%d", posIdx+1),
				})
				posIdx++
			}
		}
	}

	if d.kind == KindSubroute {
		// The remainder keeps its leading separator so the nested pattern,
		// which must itself start with "/", matches it directly.
		b.WriteString("(/.*)$")
		captures = append(captures, capture{rest: true})
	} else {
		b.WriteString("$")
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPattern, d.rawPattern, err)
	}
	d.re = re
	d.captures = captures
	return nil
}

// structuralKey renders a pattern with parameter names erased, so two
// prefixes that match the same shapes compare equal.
func structuralKey(p urlpattern.Pattern) string {
	var b strings.Builder
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case urlpattern.KindSeparator:
			b.WriteByte('/')
		case urlpattern.KindLiteral:
			b.WriteString(seg.Text)
		case urlpattern.KindParam:
			b.WriteString("{}")
		}
	}
	return b.String()
}

// Routes returns every compiled route for introspection, nested sets
// expanded beneath their mount prefix.
func (s *Set[R]) Routes() []Route {
	var routes []Route
	for _, e := range s.exacts {
		for _, m := range e.order {
			routes = append(routes, Route{Method: m, Pattern: e.raw})
		}
	}
	for _, d := range s.subs {
		prefix := strings.TrimSuffix(d.rawPattern, "/")
		for _, nr := range d.nested.routesNested() {
			routes = append(routes, Route{Method: nr.Method, Pattern: prefix + nr.Pattern})
		}
	}
	if s.catchAll != nil {
		routes = append(routes, Route{Method: "*", Pattern: "/*"})
	}
	return routes
}

func (s *Set[R]) routesNested() []Route {
	return s.Routes()
}

func (s *Set[R]) routeType() reflect.Type {
	return s.rtype
}
