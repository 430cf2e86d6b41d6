package tcp

import (
	"net"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/pool"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

// OnConn serves a single connection. It may return at any moment, the connection is closed
// by the server afterward.
type OnConn func(conn net.Conn)

type Server struct {
	sock     net.Listener
	pool     *pool.Pool
	onConn   OnConn
	conns    *xsync.MapOf[net.Conn, string]
	shutdown atomic.Bool
	log      logrus.FieldLogger
}

func NewServer(sock net.Listener, p *pool.Pool, onConn OnConn, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{
		sock:   sock,
		pool:   p,
		onConn: onConn,
		conns:  xsync.NewMapOf[net.Conn, string](),
		log:    log,
	}
}

// Start accepts connections until the listener is closed, wrapping each one into a pool job.
// After Stop or GracefulStop, status.ErrShutdown is returned. Jobs still running by that
// moment are not waited for.
func (s *Server) Start() error {
	for {
		conn, err := s.sock.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return status.ErrShutdown
			}

			return err
		}

		id := uuid.New().String()
		s.conns.Store(conn, id)

		if s.shutdown.Load() {
			// Stop might have already walked the connections before this one got stored
			s.release(conn)
			return status.ErrShutdown
		}

		s.log.WithFields(logrus.Fields{
			"conn":   id,
			"remote": conn.RemoteAddr(),
		}).Debug("connection accepted")

		if err = s.pool.Submit(func() { s.serve(conn, id) }); err != nil {
			s.release(conn)
			return err
		}
	}
}

// Active returns the number of connections currently being tracked.
func (s *Server) Active() int {
	return s.conns.Size()
}

func (s *Server) stopListener() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}

// Stop shuts listener and ALL the connections down
func (s *Server) Stop() error {
	err := s.stopListener()

	s.conns.Range(func(conn net.Conn, _ string) bool {
		_ = conn.Close()
		return true
	})

	return err
}

// GracefulStop stops a listener, but leaving all the connections free to end their
// lives peacefully
func (s *Server) GracefulStop() error {
	return s.stopListener()
}

func (s *Server) serve(conn net.Conn, id string) {
	defer func() {
		s.release(conn)
		s.log.WithField("conn", id).Debug("connection closed")
	}()

	s.onConn(conn)
}

func (s *Server) release(conn net.Conn) {
	s.conns.Delete(conn)
	_ = conn.Close()
}
