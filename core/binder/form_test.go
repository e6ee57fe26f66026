package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxroute/core/binder"
)

type signForm struct {
	Author  string   `form:"author"`
	Message string   `form:"message"`
	Tags    []string `form:"tags"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		body := "author=alice&message=hi+there&tags=a&tags=b"
		r := httptest.NewRequest("POST", "/entries", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got signForm
		require.NoError(t, binder.Form(r, &got))
		assert.Equal(t, signForm{Author: "alice", Message: "hi there", Tags: []string{"a", "b"}}, got)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("author", "bob"))
		require.NoError(t, mw.WriteField("message", "hello"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest("POST", "/entries", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var got signForm
		require.NoError(t, binder.Form(r, &got))
		assert.Equal(t, "bob", got.Author)
		assert.Equal(t, "hello", got.Message)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/entries", strings.NewReader("author=x"))

		var got signForm
		err := binder.Form(r, &got)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/entries", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")

		var got signForm
		err := binder.Form(r, &got)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("malformed content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/entries", strings.NewReader("author=x"))
		r.Header.Set("Content-Type", "application/;;")

		var got signForm
		err := binder.Form(r, &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})
}
