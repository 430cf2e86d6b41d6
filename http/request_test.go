package http

import (
	"testing"

	"github.com/indigo-web/blitz/http/headers"
	"github.com/indigo-web/blitz/http/method"
	"github.com/indigo-web/blitz/http/mime"
	"github.com/indigo-web/blitz/http/status"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	t.Run("accessors", func(t *testing.T) {
		hdrs := headers.New().Set("Content-Type", mime.JSON)
		request := NewRequest(method.POST, "/", hdrs, Text(`{"hello":"world"}`))
		require.Equal(t, mime.JSON, request.Header("content-type"))

		text, ok := request.Text()
		require.True(t, ok)
		require.Equal(t, `{"hello":"world"}`, text)

		_, ok = request.Multipart()
		require.False(t, ok)
		_, ok = request.File()
		require.False(t, ok)
	})

	t.Run("JSON", func(t *testing.T) {
		request := NewRequest(method.POST, "/", nil, Text(`{"hello":"world","n":5}`))
		var model struct {
			Hello string `json:"hello"`
			N     int    `json:"n"`
		}
		require.NoError(t, request.JSON(&model))
		require.Equal(t, "world", model.Hello)
		require.Equal(t, 5, model.N)
	})

	t.Run("JSON of a file", func(t *testing.T) {
		request := NewRequest(method.POST, "/", nil, &File{Extension: "png"})
		require.ErrorIs(t, request.JSON(new(map[string]any)), status.ErrUnsupportedMediaType)
	})

	t.Run("JSON of no body", func(t *testing.T) {
		request := NewRequest(method.GET, "/", nil, nil)
		require.ErrorIs(t, request.JSON(new(map[string]any)), status.ErrNoBody)
	})

	t.Run("body kinds", func(t *testing.T) {
		require.Equal(t, mime.KindText, Text("a").Kind())
		require.Equal(t, mime.KindMultipart, new(Multipart).Kind())
		require.Equal(t, mime.KindFile, new(File).Kind())
	})
}
