package http1

import (
	"io"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/method"
)

// Transport is the HTTP/1.1 implementation of transport.Transport over a single stream.
type Transport struct {
	framer     *Framer
	parser     *Parser
	serializer *Serializer
	writer     io.Writer
}

func New(conn io.ReadWriter, cfg *config.Config) *Transport {
	return &Transport{
		framer:     NewFramer(conn, cfg),
		parser:     NewParser(cfg),
		serializer: NewSerializer(cfg),
		writer:     conn,
	}
}

func (t *Transport) Read() (*http.Request, error) {
	head, body, err := t.framer.ReadMessage()
	if err != nil {
		return nil, err
	}

	return t.parser.Parse(head, body)
}

func (t *Transport) Write(request *http.Request, response *http.Response) error {
	return t.serializer.Write(t.writer, response, request != nil && request.Method == method.HEAD)
}
