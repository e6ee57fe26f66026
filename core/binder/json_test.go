package binder_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxroute/core/binder"
)

type createPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name":"widget","count":3}`))
		r.Header.Set("Content-Type", "application/json")

		var got createPayload
		require.NoError(t, binder.JSON(r, &got))
		assert.Equal(t, createPayload{Name: "widget", Count: 3}, got)
	})

	t.Run("accepts charset parameter", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name":"widget"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var got createPayload
		require.NoError(t, binder.JSON(r, &got))
		assert.Equal(t, "widget", got.Name)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/items", strings.NewReader(`{}`))

		var got createPayload
		assert.ErrorIs(t, binder.JSON(r, &got), binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/items", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")

		var got createPayload
		assert.ErrorIs(t, binder.JSON(r, &got), binder.ErrUnsupportedMediaType)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/items", strings.NewReader(""))
		r.Header.Set("Content-Type", "application/json")

		var got createPayload
		assert.ErrorIs(t, binder.JSON(r, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name":`))
		r.Header.Set("Content-Type", "application/json")

		var got createPayload
		assert.ErrorIs(t, binder.JSON(r, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()

		big := `{"name":"` + strings.Repeat("x", binder.DefaultMaxJSONSize) + `"}`
		r := httptest.NewRequest("POST", "/items", strings.NewReader(big))
		r.Header.Set("Content-Type", "application/json")

		var got createPayload
		assert.ErrorIs(t, binder.JSON(r, &got), binder.ErrFailedToParseJSON)
	})
}
