// Package dummy provides in-memory connections for driving connection handlers in tests.
package dummy

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"
)

// Conn replays the data it was initialised with, one piece per Read call, and records
// everything written into it. Once the data is exhausted, reads fail with io.EOF unless
// another error is set via ReadError.
type Conn struct {
	mu       sync.Mutex
	data     [][]byte
	pending  []byte
	written  bytes.Buffer
	readErr  error
	writeErr error
	closed   bool
}

func NewConn(data ...[]byte) *Conn {
	return &Conn{
		data:    data,
		readErr: io.EOF,
	}
}

// NewConnString is NewConn splitting a single string into pieces of at most n bytes.
func NewConnString(data string, n int) *Conn {
	var pieces [][]byte
	for len(data) > 0 {
		piece := data[:min(n, len(data))]
		pieces = append(pieces, []byte(piece))
		data = data[len(piece):]
	}

	return NewConn(pieces...)
}

// ReadError sets the error returned after all the data was read.
func (c *Conn) ReadError(err error) *Conn {
	c.readErr = err
	return c
}

// WriteError makes every write fail.
func (c *Conn) WriteError(err error) *Conn {
	c.writeErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	for len(c.pending) == 0 {
		if len(c.data) == 0 {
			return 0, c.readErr
		}

		c.pending, c.data = c.data[0], c.data[1:]
	}

	n = copy(b, c.pending)
	c.pending = c.pending[n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if c.writeErr != nil {
		return 0, c.writeErr
	}

	return c.written.Write(b)
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written.String()
}

func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func (*Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (*Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 16100}
}

func (*Conn) SetDeadline(time.Time) error {
	return nil
}

func (*Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (*Conn) SetWriteDeadline(time.Time) error {
	return nil
}
