package static

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/indigo-web/static/config"
	"github.com/indigo-web/static/filesystem"
	"github.com/indigo-web/static/http/mime"
	"github.com/indigo-web/static/internal/metrics"
	"github.com/indigo-web/static/internal/server"
	"github.com/indigo-web/static/internal/validation"
	"github.com/indigo-web/static/transport"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// ErrStopped is returned by Serve if the app was stopped before it started listening.
var ErrStopped = errors.New("static: app is stopped")

// App serves files of a single root folder over HTTP/1.x.
type App struct {
	root  string
	addr  string
	cfg   *config.Config
	fs    filesystem.Filesystem
	log   *zerolog.Logger
	meter metric.MeterProvider
	hooks hooks

	mu      sync.Mutex
	stopped bool
	tcp     *transport.TCP
}

// New returns a new App serving the root folder. Empty root means the working directory.
func New(root string) *App {
	if len(root) == 0 {
		root = "."
	}

	return &App{
		root: root,
		addr: ":8080",
		cfg:  config.Default(),
		fs:   filesystem.Local(),
	}
}

// Start serves the root folder on the port in background. The callback is called exactly once:
// with nil as soon as the server listens, or with the error if it couldn't start.
func Start(port uint16, root string, cb func(error)) *App {
	app := New(root).Listen(port)

	var once sync.Once
	notify := func(err error) {
		if cb != nil {
			once.Do(func() { cb(err) })
		}
	}

	app.NotifyOnStart(func() { notify(nil) })
	go func() {
		if err := app.Serve(); err != nil {
			notify(err)
		}
	}()

	return app
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the logger built out of the config.
func (a *App) Logger(log zerolog.Logger) *App {
	a.log = &log
	return a
}

// Meter sets the meter provider for the server metrics. The global one is used by default.
func (a *App) Meter(provider metric.MeterProvider) *App {
	a.meter = provider
	return a
}

// Filesystem replaces the OS filesystem. Note that fs.FS-based implementations expect
// the root to be ".".
func (a *App) Filesystem(fs filesystem.Filesystem) *App {
	a.fs = fs
	return a
}

// NotifyOnStart calls the callback at the moment the server is able to accept connections.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment the server is down. It's guaranteed that
// no new connections are accepted and all the clients are already disconnected.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen sets the port to listen on. Port 0 picks a random free one, see Addr.
func (a *App) Listen(port uint16) *App {
	a.addr = ":" + strconv.Itoa(int(port))
	return a
}

// Serve binds the socket and serves until Stop is called. Blocks.
func (a *App) Serve() error {
	log, err := a.logger()
	if err != nil {
		return err
	}

	if err = a.cfg.Validate(); err != nil {
		return err
	}

	tcp := transport.NewTCP(a.cfg.NET)
	if err = tcp.Bind(a.addr); err != nil {
		log.Error().Err(err).Str("addr", a.addr).Msg("binding")
		return fmt.Errorf("static: bind %s: %w", a.addr, err)
	}

	return a.run(tcp, log)
}

// ServeListener serves on an already bound listener until Stop is called. Blocks.
func (a *App) ServeListener(l net.Listener) error {
	log, err := a.logger()
	if err != nil {
		return err
	}

	if err = a.cfg.Validate(); err != nil {
		return err
	}

	return a.run(transport.FromListener(l, a.cfg.NET), log)
}

func (a *App) run(tcp *transport.TCP, log zerolog.Logger) error {
	m, err := metrics.New(a.meter)
	if err != nil {
		tcp.Stop()
		return fmt.Errorf("static: metrics: %w", err)
	}

	chain := validation.New(a.fs, mime.NewTable(a.cfg.MIME.Extra))
	manager := server.NewManager(a.cfg.NET, a.root, chain, m, log)

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		tcp.Stop()
		return ErrStopped
	}
	a.tcp = tcp
	a.mu.Unlock()

	log.Info().Stringer("addr", tcp.Addr()).Str("root", a.root).Msg("listening")
	callIfNotNil(a.hooks.OnStart)

	err = tcp.Listen(manager.Serve, func(conn net.Conn) {
		m.Refused()
		log.Debug().Stringer("remote", conn.RemoteAddr()).Msg("connection refused")
	})

	tcp.Stop()
	manager.Close()
	tcp.Wait()
	log.Info().Msg("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Addr returns the address the server listens on, or nil if it doesn't yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tcp == nil {
		return nil
	}

	return a.tcp.Addr()
}

// Stop stops accepting new connections and closes all the existing ones.
//
// NOTE: the call isn't blocking. Serve returns as soon as every connection is closed
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.tcp != nil {
		a.tcp.Stop()
	}
}

func (a *App) logger() (zerolog.Logger, error) {
	if a.log != nil {
		return *a.log, nil
	}

	return NewLogger(a.cfg.Log)
}

// NewLogger builds the logger as described by the config: JSON lines into stderr, or
// a human-readable output if Pretty is set.
func NewLogger(cfg config.Log) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log level: %w", config.ErrBadConfig, err)
	}

	var log zerolog.Logger
	if cfg.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(level).With().Timestamp().Logger(), nil
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
