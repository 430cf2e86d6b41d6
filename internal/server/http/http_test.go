package http

import (
	"bufio"
	"io"
	stdhttp "net/http"
	"strings"
	"syscall"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/server/tcp/dummy"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newServer(handler http.HandlerFunc) *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewServer(handler, config.Default(), log)
}

func echoPath(request *http.Request) *http.Response {
	return http.NewResponse(status.OK).String(request.Path)
}

// readResponses parses all the responses written into the connection.
func readResponses(t *testing.T, data string) (responses []*stdhttp.Response, bodies []string) {
	reader := bufio.NewReader(strings.NewReader(data))

	for {
		if _, err := reader.Peek(1); err == io.EOF {
			return responses, bodies
		}

		resp, err := stdhttp.ReadResponse(reader, nil)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		responses = append(responses, resp)
		bodies = append(bodies, string(body))
	}
}

func TestServer(t *testing.T) {
	t.Run("pipelined requests", func(t *testing.T) {
		var (
			raw   strings.Builder
			paths []string
		)
		for range 10 {
			path := "/" + uniuri.New()
			paths = append(paths, path)
			raw.WriteString("GET " + path + " HTTP/1.1\r\nHost: localhost\r\n\r\n")
		}

		conn := dummy.NewConnString(raw.String(), 7)
		newServer(echoPath).Run(conn)

		responses, bodies := readResponses(t, conn.Written())
		require.Len(t, responses, len(paths))
		for i, path := range paths {
			require.Equal(t, 200, responses[i].StatusCode)
			require.Equal(t, path, bodies[i])
		}
	})

	t.Run("remote address", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\n"))
		newServer(func(request *http.Request) *http.Response {
			return http.NewResponse(status.OK).String(request.Remote.String())
		}).Run(conn)

		_, bodies := readResponses(t, conn.Written())
		require.Equal(t, []string{conn.RemoteAddr().String()}, bodies)
	})

	t.Run("nil response", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\n"))
		newServer(func(*http.Request) *http.Response {
			return nil
		}).Run(conn)

		responses, _ := readResponses(t, conn.Written())
		require.Len(t, responses, 1)
		require.Equal(t, 200, responses[0].StatusCode)
	})

	t.Run("connection close", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET /first HTTP/1.1\r\nConnection: Close\r\n\r\nGET /second HTTP/1.1\r\n\r\n"))
		newServer(echoPath).Run(conn)

		responses, bodies := readResponses(t, conn.Written())
		require.Equal(t, []string{"/first"}, bodies)
		require.Equal(t, "close", responses[0].Header.Get("Connection"))
	})

	t.Run("HEAD request", func(t *testing.T) {
		conn := dummy.NewConn([]byte("HEAD /abc HTTP/1.1\r\n\r\nGET /abc HTTP/1.1\r\n\r\n"))
		newServer(echoPath).Run(conn)

		written := conn.Written()
		require.Equal(t, 2, strings.Count(written, "Content-Length: 4\r\n"))
		require.Equal(t, 1, strings.Count(written, "/abc"))
	})

	t.Run("handler panic", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\nGET / HTTP/1.1\r\n\r\n"))
		calls := 0
		newServer(func(*http.Request) *http.Response {
			calls++
			panic("something went wrong")
		}).Run(conn)

		require.Equal(t, 1, calls)
		responses, bodies := readResponses(t, conn.Written())
		require.Len(t, responses, 1)
		require.Equal(t, 500, responses[0].StatusCode)
		require.Equal(t, "close", responses[0].Header.Get("Connection"))
		require.Equal(t, status.ErrInternalServerError.Error(), bodies[0])
	})

	t.Run("request body", func(t *testing.T) {
		conn := dummy.NewConn([]byte("POST / HTTP/1.1\r\nContent-Type: text/plain\r\nContent-Length: 13\r\n\r\nHello, world!"))
		newServer(func(request *http.Request) *http.Response {
			text, _ := request.Text()
			return http.NewResponse(status.OK).String(strings.ToUpper(text))
		}).Run(conn)

		_, bodies := readResponses(t, conn.Written())
		require.Equal(t, []string{"HELLO, WORLD!"}, bodies)
	})
}

func TestServerErrors(t *testing.T) {
	for _, tc := range []struct {
		Name    string
		Request string
		Code    int
	}{
		{"unknown method", "FOO / HTTP/1.1\r\n\r\n", 501},
		{"malformed header", "GET / HTTP/1.1\r\nHost\r\n\r\n", 400},
		{"malformed length", "POST / HTTP/1.1\r\nContent-Length: nope\r\n\r\n", 400},
		{"truncated body", "POST / HTTP/1.1\r\nContent-Length: 100\r\n\r\nhello", 400},
		{"invalid encoding", "POST / HTTP/1.1\r\nContent-Length: 2\r\n\r\n\xff\xfe", 400},
		{"too large body", "POST / HTTP/1.1\r\nContent-Length: 99999999999999\r\n\r\n", 413},
		{"too large headers", "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("a", 70*1024) + "\r\n\r\n", 431},
		{"too many headers", "GET / HTTP/1.1\r\n" + strings.Repeat("1a2: \r\n", 9000) + "\r\n", 431},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			// the valid request after the broken one must never be served
			conn := dummy.NewConn([]byte(tc.Request), []byte("GET /next HTTP/1.1\r\n\r\n"))
			calls := 0
			newServer(func(*http.Request) *http.Response {
				calls++
				return http.Respond()
			}).Run(conn)

			require.Zero(t, calls)
			responses, bodies := readResponses(t, conn.Written())
			require.Len(t, responses, 1)
			require.Equal(t, tc.Code, responses[0].StatusCode)
			require.Equal(t, "close", responses[0].Header.Get("Connection"))
			require.NotEmpty(t, bodies[0])
		})
	}

	t.Run("peer closed", func(t *testing.T) {
		conn := dummy.NewConn()
		newServer(echoPath).Run(conn)
		require.Empty(t, conn.Written())
	})

	t.Run("connection reset", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n")).ReadError(syscall.ECONNRESET)
		newServer(echoPath).Run(conn)
		require.Empty(t, conn.Written())
	})

	t.Run("write failure", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\nGET / HTTP/1.1\r\n\r\n")).WriteError(syscall.EPIPE)
		calls := 0
		newServer(func(*http.Request) *http.Response {
			calls++
			return http.Respond()
		}).Run(conn)

		require.Equal(t, 1, calls)
	})
}
