package transport

import (
	"io"
	"net"
	"time"
)

type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	ReadFrom(io.Reader) (int64, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	conn    net.Conn
	buff    []byte
	timeout time.Duration
}

func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned slice
// is valid only until the next call. Every read is limited by the idle timeout, if set.
func (c *client) Read() ([]byte, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write writes data into the underlying connection. Every write is limited by the idle
// timeout as well, so a peer which stopped reading can't hold the connection forever.
func (c *client) Write(b []byte) (int, error) {
	if err := c.armWrite(); err != nil {
		return 0, err
	}

	return c.conn.Write(b)
}

// sendBlock is how much of a limited reader is copied under a single write deadline.
const sendBlock = 256 << 10

// ReadFrom copies the reader into the connection. If the connection is a *net.TCPConn and
// the reader is a file (possibly limited), the kernel does the copying. Limited readers are
// sent in blocks, each one under a fresh write deadline.
func (c *client) ReadFrom(r io.Reader) (total int64, err error) {
	lr, limited := r.(*io.LimitedReader)
	if !limited {
		if err = c.armWrite(); err != nil {
			return 0, err
		}

		return c.copy(r)
	}

	for lr.N > 0 {
		if err = c.armWrite(); err != nil {
			return total, err
		}

		block := &io.LimitedReader{R: lr.R, N: min(lr.N, sendBlock)}
		n, err := c.copy(block)
		total += n
		lr.N -= n
		if err != nil || block.N > 0 {
			// either the write failed or the source is over earlier than expected
			return total, err
		}
	}

	return total, nil
}

func (c *client) copy(r io.Reader) (int64, error) {
	if rf, ok := c.conn.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}

	return io.Copy(c.conn, r)
}

func (c *client) armWrite() error {
	if c.timeout <= 0 {
		return nil
	}

	return c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
