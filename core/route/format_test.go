package route_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxroute/core/route"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("0190b34f-5a2e-7c1d-9e8f-aabbccddeeff")

	tests := []struct {
		name  string
		value siteRoute
		want  string
	}{
		{"root", home{}, "/"},
		{"static", listUsers{}, "/users"},
		{"named parameter", showUser{UserID: 42}, "/users/42"},
		{"positional parameters", showFile{Bucket: "photos", Key: "cat.jpg"}, "/files/photos/cat.jpg"},
		{"parameter needing escaping", showFile{Bucket: "a b", Key: "x/y.txt"}, "/files/a%20b/x%2Fy.txt"},
		{"text marshaler parameter", showDoc{ID: id}, "/docs/" + id.String()},
		{"body does not affect the url", updateUser{UserID: 7, Payload: userPayload{Name: "bob"}}, "/users/7"},
		{"empty query bag has no question mark", search{}, "/search"},
		{"query bag in sorted key order", search{Query: searchParams{Q: "go", Page: 2}}, "/search?page=2&q=go"},
		{"repeated query key", search{Query: searchParams{Tags: []string{"a", "b"}}}, "/search?tags=a&tags=b"},
		{"nested bag under dotted keys", advancedSearch{Query: advancedParams{Q: "go", Filter: rangeFilter{Min: 3}}}, "/advanced?filter.min=3&q=go"},
		{"nested bag alone survives formatting", advancedSearch{Query: advancedParams{Filter: rangeFilter{Min: 3, Max: 9}}}, "/advanced?filter.max=9&filter.min=3"},
		{"empty nested bag has no question mark", advancedSearch{}, "/advanced"},
		{"subroute", apiMount{Rest: apiGet{ID: 9}}, "/api/users/9"},
		{"two-level subroute", apiMount{Rest: v2Mount{Rest: ping{}}}, "/api/v2/ping"},
		{"catch-all keeps its path", fallback{Path: "/no/such/page"}, "/no/such/page"},
		{"empty catch-all renders root", fallback{}, "/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, siteSet.Format(tt.value))
		})
	}
}

func TestFormatDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	// Format then Decode must reproduce the original value, including
	// parameters that only survive thanks to percent-encoding.
	values := []siteRoute{
		home{},
		showUser{UserID: -3},
		currentUser{},
		showFile{Bucket: "a/b", Key: "k e y"},
		search{Query: searchParams{Q: "x y", Page: 9, Tags: []string{"t1", "t2"}}},
		advancedSearch{Query: advancedParams{Q: "go", Filter: rangeFilter{Min: 3, Max: 9}}},
		advancedSearch{Query: advancedParams{Filter: rangeFilter{Min: 1}}},
		apiMount{Rest: apiList{}},
		apiMount{Rest: v2Mount{Rest: ping{}}},
		fallback{Path: "/gone"},
	}

	for _, v := range values {
		url := siteSet.Format(v)
		got, err := siteSet.Decode(httptest.NewRequest(siteSet.Method(v), url, nil))
		require.NoError(t, err, "url %s", url)
		assert.Equal(t, v, got, "url %s", url)
	}
}

func TestMethod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.MethodGet, siteSet.Method(home{}))
	assert.Equal(t, http.MethodPost, siteSet.Method(createUser{}))
	assert.Equal(t, http.MethodPut, siteSet.Method(updateUser{}))
	assert.Equal(t, http.MethodGet, siteSet.Method(apiMount{Rest: apiList{}}))
	assert.Equal(t, http.MethodGet, siteSet.Method(fallback{}))
}

func TestAttr(t *testing.T) {
	t.Parallel()

	attr := siteSet.Attr(showUser{UserID: 5})
	assert.Equal(t, route.Attr{Method: http.MethodGet, URL: "/users/5"}, attr)

	attr = siteSet.Attr(createUser{})
	assert.Equal(t, route.Attr{Method: http.MethodPost, URL: "/users"}, attr)
}

func TestFormatUnknownVariantPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		siteSet.Format(unregistered{})
	})
}

// unregistered satisfies siteRoute but was never declared to the set.
type unregistered struct{}

func (unregistered) site() {}

func TestRoutes(t *testing.T) {
	t.Parallel()

	routes := siteSet.Routes()

	assert.Contains(t, routes, route.Route{Method: "GET", Pattern: "/users/{user_id}"})
	assert.Contains(t, routes, route.Route{Method: "POST", Pattern: "/users"})
	// Nested routes appear under their mount prefix.
	assert.Contains(t, routes, route.Route{Method: "GET", Pattern: "/api/users/{id}"})
	assert.Contains(t, routes, route.Route{Method: "GET", Pattern: "/api/v2/ping"})
	assert.Contains(t, routes, route.Route{Method: "*", Pattern: "/*"})
}
