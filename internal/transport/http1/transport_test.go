package http1

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/method"
	"github.com/indigo-web/blitz/http/status"
	"github.com/stretchr/testify/require"
)

type conn struct {
	io.Reader
	bytes.Buffer
}

func (c *conn) Read(b []byte) (int, error) {
	return c.Reader.Read(b)
}

func newConn(data string) *conn {
	return &conn{Reader: strings.NewReader(data)}
}

func TestTransport(t *testing.T) {
	t.Run("pipelined", func(t *testing.T) {
		c := newConn("GET /a HTTP/1.1\r\n\r\n" +
			"POST /b HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello" +
			"HEAD /c HTTP/1.1\r\n\r\n")
		tr := New(c, config.Default())

		request, err := tr.Read()
		require.NoError(t, err)
		require.Equal(t, "/a", request.Path)
		require.NoError(t, tr.Write(request, http.NewResponse(status.OK).String("a")))

		request, err = tr.Read()
		require.NoError(t, err)
		require.Equal(t, method.POST, request.Method)
		text, ok := request.Text()
		require.True(t, ok)
		require.Equal(t, "hello", text)
		require.NoError(t, tr.Write(request, http.NewResponse(status.OK).String("b")))

		request, err = tr.Read()
		require.NoError(t, err)
		require.Equal(t, method.HEAD, request.Method)
		require.NoError(t, tr.Write(request, http.NewResponse(status.OK).String("c")))

		_, err = tr.Read()
		require.ErrorIs(t, err, io.EOF)

		out := c.Buffer.String()
		require.Equal(t, 3, strings.Count(out, "HTTP/1.1 200 OK\r\n"))
		require.Contains(t, out, "\r\n\r\na")
		require.Contains(t, out, "\r\n\r\nb")
		require.True(t, strings.HasSuffix(out, "Content-Length: 1\r\n\r\n"))
	})

	t.Run("parse error", func(t *testing.T) {
		tr := New(newConn("BREW /pot HTTP/1.1\r\n\r\n"), config.Default())
		_, err := tr.Read()
		require.ErrorIs(t, err, status.ErrUnknownMethod)
		require.Equal(t, status.NotImplemented, status.CodeOf(err))
	})

	t.Run("nil request", func(t *testing.T) {
		c := newConn("")
		tr := New(c, config.Default())
		require.NoError(t, tr.Write(nil, http.NewResponse(status.BadRequest).String("bad")))
		require.True(t, strings.HasSuffix(c.Buffer.String(), "bad"))
	})
}
