package blitz

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/pool"
	httpserver "github.com/indigo-web/blitz/internal/server/http"
	"github.com/indigo-web/blitz/internal/server/tcp"
	"github.com/indigo-web/blitz/internal/strutil"
	"github.com/sirupsen/logrus"
)

// App is the entry point of the server: it binds the address, owns the worker pool and
// dispatches every accepted connection to it.
type App struct {
	addr  string
	cfg   *config.Config
	log   *logrus.Logger
	hooks hooks

	mu       sync.Mutex
	server   *tcp.Server
	listener net.Listener
	stopped  bool
	graceful atomic.Bool
}

// New returns a new App instance. Addresses starting with a colon, e.g. ":8080", are
// bound to all the interfaces.
func New(addr string) *App {
	return &App{
		addr: strutil.NormalizeAddress(addr),
		cfg:  config.Default(),
		log:  logrus.StandardLogger(),
	}
}

// Tune replaces default config. Zero values are filled with defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Workers sets the number of workers, which is also the number of connections served
// at once. Non-positive values make Serve fail.
func (a *App) Workers(n int) *App {
	a.cfg.Workers = n
	return a
}

// Logger replaces the logrus standard logger. Nil is ignored.
func (a *App) Logger(log *logrus.Logger) *App {
	if log != nil {
		a.log = log
	}

	return a
}

// NotifyOnStart calls the callback at the moment, when the server is bound and about to
// start accepting connections.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed,
// that at the moment as the callback is called, the server isn't able to accept any new
// connections and all the clients are already disconnected.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the web-application and blocks until it's stopped. If nil is passed instead
// of a handler, every request is answered with an empty 200 OK. After Stop or GracefulStop
// status.ErrShutdown or status.ErrGracefulShutdown respectively is returned.
func (a *App) Serve(handler http.Handler) error {
	if handler == nil {
		handler = http.HandlerFunc(func(*http.Request) *http.Response {
			return nil
		})
	}

	p, err := pool.New(a.cfg.Workers, a.log)
	if err != nil {
		return err
	}

	sock, err := net.Listen("tcp", a.addr)
	if err != nil {
		p.Close()
		return err
	}

	httpServer := httpserver.NewServer(handler, a.cfg, a.log)
	server := tcp.NewServer(sock, p, httpServer.Run, a.log)

	a.mu.Lock()
	a.server, a.listener = server, sock
	if a.stopped {
		_ = server.Stop()
	}
	a.mu.Unlock()

	a.log.WithFields(logrus.Fields{
		"addr":    sock.Addr().String(),
		"workers": a.cfg.Workers,
	}).Info("listening")

	callIfNotNil(a.hooks.OnStart)
	err = server.Start()
	// in case of graceful shutdown this waits until all the clients are gone
	p.Close()
	callIfNotNil(a.hooks.OnStop)

	if err == status.ErrShutdown && a.graceful.Load() {
		return status.ErrGracefulShutdown
	}

	return err
}

// Addr returns the address the server is bound to, or nil if it isn't yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.listener == nil {
		return nil
	}

	return a.listener.Addr()
}

// GracefulStop stops accepting new connections, but keeps serving old ones.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will be still working
func (a *App) GracefulStop() {
	a.graceful.Store(true)
	a.stop(func(server *tcp.Server) error {
		return server.GracefulStop()
	})
}

// Stop stops the whole application immediately, closing all the connections.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will still be working
func (a *App) Stop() {
	a.stop(func(server *tcp.Server) error {
		return server.Stop()
	})
}

func (a *App) stop(how func(*tcp.Server) error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	a.stopped = true
	if a.server != nil {
		if err := how(a.server); err != nil {
			a.log.WithError(err).Warn("failed to stop the listener")
		}
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
