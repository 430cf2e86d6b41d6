package http

import (
	"errors"
	"testing"

	"github.com/indigo-web/blitz/http/mime"
	"github.com/indigo-web/blitz/http/status"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		response := NewResponse(status.NotFound)
		require.Equal(t, status.NotFound, response.Code)
		require.Nil(t, response.Headers)
		require.Nil(t, response.Body)
	})

	t.Run("headers", func(t *testing.T) {
		response := Respond().
			SetHeaders(map[string]string{"Hello": "world", "X-Token": "1"}).
			Header("x-token", "2")
		require.Len(t, response.Headers, 2)
		require.Equal(t, "2", response.Headers.Value("X-Token"))
	})

	t.Run("string body", func(t *testing.T) {
		response := Respond().String("Hello, world!")
		require.Equal(t, []byte("Hello, world!"), response.Body)
	})

	t.Run("empty string body is present", func(t *testing.T) {
		response := Respond().String("")
		require.NotNil(t, response.Body)
		require.Empty(t, response.Body)
	})

	t.Run("JSON", func(t *testing.T) {
		response := Respond().JSON(map[string]int{"a": 1})
		require.Equal(t, `{"a":1}`, string(response.Body))
		require.Equal(t, mime.JSON, response.Headers.Value("Content-Type"))
	})

	t.Run("JSON failure", func(t *testing.T) {
		response := Respond().JSON(make(chan int))
		require.Equal(t, status.InternalServerError, response.Code)
		require.NotEmpty(t, response.Body)
	})

	t.Run("error", func(t *testing.T) {
		response := Respond().Error(status.ErrMalformedHeader)
		require.Equal(t, status.BadRequest, response.Code)
		require.Equal(t, status.ErrMalformedHeader.Error(), string(response.Body))

		response = Respond().Error(errors.New("oops"))
		require.Equal(t, status.InternalServerError, response.Code)

		response = Respond().Error(nil)
		require.Equal(t, status.OK, response.Code)
		require.Nil(t, response.Body)
	})
}

func TestHandlerFunc(t *testing.T) {
	var handler Handler = HandlerFunc(func(*Request) *Response {
		return NewResponse(status.Teapot)
	})

	require.Equal(t, status.Teapot, handler.Handle(NewRequest(0, "/", nil, nil)).Code)
}
