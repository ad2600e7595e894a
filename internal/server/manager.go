package server

import (
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/static/config"
	"github.com/indigo-web/static/internal/metrics"
	"github.com/indigo-web/static/internal/protocol/http1"
	"github.com/indigo-web/static/internal/validation"
	"github.com/indigo-web/static/transport"
	"github.com/rs/zerolog"
)

// Conn is a registry entry of a single client connection.
type Conn struct {
	ID     uint64
	Remote net.Addr
	client transport.Client
	state  atomic.Uint32
	once   sync.Once
}

func (c *Conn) State() State {
	return State(c.state.Load())
}

func (c *Conn) setState(state State) {
	c.state.Store(uint32(state))
}

// Manager owns every open connection. Each of them is driven by Serve in its own goroutine,
// so requests of a single connection are always processed strictly one after another.
type Manager struct {
	cfg     config.NET
	root    string
	chain   *validation.Chain
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu     sync.Mutex
	nextID uint64
	conns  map[uint64]*Conn

	// onTransition is called on every state change. Used in tests only.
	onTransition func(conn *Conn, state State)
}

func NewManager(
	cfg config.NET,
	root string,
	chain *validation.Chain,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Manager {
	return &Manager{
		cfg:     cfg,
		root:    root,
		chain:   chain,
		metrics: m,
		log:     log,
		conns:   make(map[uint64]*Conn),
	}
}

// Serve drives the connection until it's closed. Blocks.
func (m *Manager) Serve(netConn net.Conn) {
	client := transport.NewClient(netConn, m.cfg.IdleTimeout.Std(), make([]byte, m.cfg.ReadBufferSize))
	conn := m.register(client)
	defer m.release(conn)

	log := m.log.With().Uint64("conn", conn.ID).Logger()
	suit := http1.New(m.root, m.chain, client, make([]byte, 0, m.cfg.ReadBufferSize), m.metrics, log)
	var buff []byte

	m.transition(conn, Buffering)

	for {
		data, err := client.Read()
		if err != nil {
			logReadError(log, err)
			m.transition(conn, Closing)
			return
		}

		buff = append(buff, data...)

		for {
			frame, err := http1.Detect(buff, m.cfg.MaxRequestSize)
			if err != nil {
				m.transition(conn, Closing)
				suit.Reject(err)
				return
			}

			if frame.State == http1.Partial {
				break
			}

			m.transition(conn, Dispatched)
			keepAlive := suit.Serve(buff[frame.Start:frame.End])
			buff = buff[:copy(buff, buff[frame.End:])]

			if !keepAlive {
				m.transition(conn, Closing)
				return
			}

			m.transition(conn, Buffering)
		}
	}
}

func logReadError(log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF):
		log.Debug().Msg("client closed the connection")
	case errors.Is(err, os.ErrDeadlineExceeded):
		log.Debug().Msg("idle timeout")
	case errors.Is(err, net.ErrClosed):
		log.Debug().Msg("connection closed")
	default:
		log.Warn().Err(err).Msg("reading from the connection")
	}
}

func (m *Manager) register(client transport.Client) *Conn {
	m.mu.Lock()
	m.nextID++
	conn := &Conn{
		ID:     m.nextID,
		Remote: client.Remote(),
		client: client,
	}
	m.conns[conn.ID] = conn
	m.mu.Unlock()

	m.metrics.Opened()
	m.log.Debug().Uint64("conn", conn.ID).Stringer("remote", conn.Remote).Msg("connection accepted")
	m.transition(conn, Accepted)

	return conn
}

// release closes the connection and removes it from the registry. It's safe to be called
// multiple times, only the first call takes effect.
func (m *Manager) release(conn *Conn) {
	conn.once.Do(func() {
		if err := conn.client.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			m.log.Debug().Err(err).Uint64("conn", conn.ID).Msg("closing connection")
		}

		m.mu.Lock()
		delete(m.conns, conn.ID)
		m.mu.Unlock()

		m.metrics.Closed()
		m.transition(conn, Closed)
	})
}

func (m *Manager) transition(conn *Conn, state State) {
	conn.setState(state)
	if m.onTransition != nil {
		m.onTransition(conn, state)
	}
}

// Len returns the number of registered connections.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.conns)
}

// Close closes all the registered connections. Their Serve calls return shortly after.
func (m *Manager) Close() {
	m.mu.Lock()
	conns := make([]*Conn, 0, len(m.conns))
	for _, conn := range m.conns {
		conns = append(conns, conn)
	}
	m.mu.Unlock()

	for _, conn := range conns {
		_ = conn.client.Close()
	}
}
