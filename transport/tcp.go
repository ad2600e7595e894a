package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/static/config"
)

var _ Transport = new(TCP)

// ErrNotBound is returned by Listen if Bind wasn't called or failed.
var ErrNotBound = errors.New("transport: listener is not bound")

type TCP struct {
	cfg  config.NET
	l    net.Listener
	wg   sync.WaitGroup
	live atomic.Int64
	stop atomic.Bool
}

func NewTCP(cfg config.NET) *TCP {
	return &TCP{cfg: cfg}
}

// FromListener wraps an already bound listener.
func FromListener(l net.Listener, cfg config.NET) *TCP {
	return &TCP{cfg: cfg, l: l}
}

func (t *TCP) Bind(addr string) (err error) {
	var lc net.ListenConfig
	if t.cfg.ReusePort {
		lc.Control = reusePort
	}

	t.l, err = lc.Listen(context.Background(), "tcp", addr)
	return err
}

// Listen runs the accept loop until Stop is called. Connections exceeding the configured
// limit are passed to onRefused, which may be nil, and closed right after.
func (t *TCP) Listen(onConn, onRefused func(conn net.Conn)) error {
	if t.l == nil {
		return ErrNotBound
	}

	for {
		conn, err := t.l.Accept()
		if err != nil {
			if t.stop.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				// e.g. EMFILE. Let the system breathe
				time.Sleep(5 * time.Millisecond)
				continue
			}

			return err
		}

		if limit := int64(t.cfg.MaxConnections); limit > 0 && t.live.Load() >= limit {
			if onRefused != nil {
				onRefused(conn)
			}

			_ = conn.Close()
			continue
		}

		t.live.Add(1)
		t.wg.Add(1)
		go func(conn net.Conn) {
			onConn(conn)
			_ = conn.Close()
			t.live.Add(-1)
			t.wg.Done()
		}(conn)
	}
}

// Addr returns the address the listener is bound to, or nil.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Live returns the number of connections being served.
func (t *TCP) Live() int {
	return int(t.live.Load())
}

// Stop closes the listener. Connections already accepted are left running.
func (t *TCP) Stop() {
	if t.stop.Swap(true) || t.l == nil {
		return
	}

	_ = t.l.Close()
}

// Wait blocks until every accepted connection is done.
func (t *TCP) Wait() {
	t.wg.Wait()
}
