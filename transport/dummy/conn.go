package dummy

import (
	"io"
	"net"
	"os"
	"sync"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a scripted net.Conn. Reads return the pieces it was initialised with one by one,
// then either io.EOF or, if the conn is Idle, os.ErrDeadlineExceeded. Everything written
// is recorded.
type Conn struct {
	mu      sync.Mutex
	pieces  [][]byte
	written []byte
	closed  bool
	idle    bool
	nop     bool
}

func NewConn(pieces ...string) *Conn {
	c := new(Conn)
	for _, piece := range pieces {
		c.pieces = append(c.pieces, []byte(piece))
	}

	return c
}

// Idle makes the conn report the exceeded read deadline once the pieces are over.
func (c *Conn) Idle() *Conn {
	c.idle = true
	return c
}

// Nop disables recording of written data.
func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if len(c.pieces) == 0 {
		if c.idle {
			return 0, os.ErrDeadlineExceeded
		}

		return 0, io.EOF
	}

	n = copy(b, c.pieces[0])
	if n < len(c.pieces[0]) {
		c.pieces[0] = c.pieces[0][n:]
	} else {
		c.pieces = c.pieces[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if !c.nop {
		c.written = append(c.written, b...)
	}

	return len(b), nil
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return string(c.written)
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

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
