package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/utils/strcomp"
)

const (
	protocol         = "HTTP/1.1 "
	server           = "Server"
	connection       = "Connection"
	keepAlive        = "keep-alive"
	contentLengthKey = "Content-Length: "
)

// Serializer renders responses into a reusable buffer. It isn't safe for concurrent use.
type Serializer struct {
	buff       []byte
	serverName string
	buffSize   config.NETWriteBufferSize
}

func NewSerializer(cfg *config.Config) *Serializer {
	return &Serializer{
		buff:       make([]byte, 0, cfg.NET.WriteBufferSize.Default),
		serverName: cfg.Server.Name,
		buffSize:   cfg.NET.WriteBufferSize,
	}
}

// Serialize renders the whole response, including the body. The returned slice is valid
// until the next call.
func (s *Serializer) Serialize(response *http.Response) []byte {
	s.buff = s.render(s.buff[:0], response, false)
	return s.buff
}

// Write renders the response and writes it at once. If omitBody is set (as for responses to
// HEAD requests), the Content-Length header is still sent, but the body bytes are not.
func (s *Serializer) Write(w io.Writer, response *http.Response, omitBody bool) error {
	s.buff = s.render(s.buff[:0], response, omitBody)
	_, err := w.Write(s.buff)

	if cap(s.buff) > s.buffSize.Maximal {
		s.buff = make([]byte, 0, s.buffSize.Default)
	}

	return err
}

func (s *Serializer) render(buff []byte, response *http.Response, omitBody bool) []byte {
	buff = renderResponseLine(buff, response.Code)

	for key, value := range response.Headers {
		if strcomp.EqualFold(key, "content-length") {
			// always calculated from the actual body
			continue
		}

		buff = renderHeader(buff, key, value)
	}

	if !response.Headers.Has(server) {
		buff = renderHeader(buff, server, s.serverName)
	}

	if !response.Headers.Has(connection) {
		buff = renderHeader(buff, connection, keepAlive)
	}

	if response.Body != nil {
		buff = append(buff, contentLengthKey...)
		buff = strconv.AppendInt(buff, int64(len(response.Body)), 10)
		buff = crlf(buff)
	}

	buff = crlf(buff)

	if !omitBody {
		buff = append(buff, response.Body...)
	}

	return buff
}

func renderResponseLine(buff []byte, code status.Code) []byte {
	buff = append(buff, protocol...)
	buff = strconv.AppendUint(buff, uint64(code), 10)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(code)...)
	return crlf(buff)
}

func renderHeader(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, ':', ' ')
	buff = append(buff, value...)
	return crlf(buff)
}

func crlf(buff []byte) []byte {
	return append(buff, '\r', '\n')
}
