package http

import (
	"errors"
	"io"
	"net"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/transport"
	"github.com/indigo-web/blitz/internal/transport/http1"
	"github.com/indigo-web/utils/strcomp"
	"github.com/sirupsen/logrus"
)

const (
	connection = "Connection"
	closeConn  = "close"
)

// Server serves connections one request at a time: read, call the handler, write, repeat.
// It holds no per-connection state, so a single instance is shared by all the workers.
type Server struct {
	handler http.Handler
	cfg     *config.Config
	log     logrus.FieldLogger
}

func NewServer(handler http.Handler, cfg *config.Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{
		handler: handler,
		cfg:     config.Fill(cfg),
		log:     log,
	}
}

// Run serves the connection until the peer closes it or an error occurs. The connection
// itself is not closed, this is up to the caller.
func (s *Server) Run(conn net.Conn) {
	remote := conn.RemoteAddr()
	log := s.log.WithField("remote", remote)
	trans := http1.New(conn, s.cfg)

	for s.HandleRequest(trans, remote, log) {
	}
}

// HandleRequest processes a single request and reports whether the connection may be
// used for the next one.
func (s *Server) HandleRequest(trans transport.Transport, remote net.Addr, log logrus.FieldLogger) (keepAlive bool) {
	request, err := trans.Read()
	if err != nil {
		s.onReadError(trans, log, err)
		return false
	}

	request.Remote = remote
	response, ok := s.call(request, log)
	keepAlive = ok && !strcomp.EqualFold(request.Header(connection), closeConn)
	if !keepAlive {
		response.Header(connection, closeConn)
	}

	if err = trans.Write(request, response); err != nil {
		// if error happened during writing the response, it makes no sense to try
		// to write anything again
		log.WithError(err).Debug("failed to write the response")
		return false
	}

	return keepAlive
}

// call invokes the handler. A panic in it results in 500 Internal Server Error and
// ok set to false, as the handler might have left the request half-processed.
func (s *Server) call(request *http.Request, log logrus.FieldLogger) (response *http.Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"method": request.Method.String(),
				"path":   request.Path,
				"panic":  r,
				"stack":  string(debug.Stack()),
			}).Error("handler panicked")
			response, ok = http.NewResponse(status.OK).Error(status.ErrInternalServerError), false
		}
	}()

	response = s.handler.Handle(request)
	if response == nil {
		response = http.Respond()
	}

	return response, true
}

func (s *Server) onReadError(trans transport.Transport, log logrus.FieldLogger, err error) {
	switch {
	case isPeerGone(err):
		return
	case isTransient(err):
		log.WithError(err).Debug("connection dropped")
		return
	}

	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		log.WithError(err).Debug("failed to read the request")
		return
	}

	response := http.NewResponse(status.OK).
		Error(err).
		Header(connection, closeConn)

	if werr := trans.Write(nil, response); werr != nil {
		log.WithFields(logrus.Fields{
			"error":  err,
			"reason": werr,
		}).Error("failed to write the error response")
	}
}

// isPeerGone reports whether the connection ended in a regular way, so there's nobody to
// respond to and nothing to complain about.
func isPeerGone(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

func isTransient(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.EAGAIN) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
