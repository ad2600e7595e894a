package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	json "github.com/json-iterator/go"
)

var ErrBadConfig = errors.New("bad config")

type (
	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// IdleTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, the connection is closed without any response.
		IdleTimeout Duration
		// MaxConnections limits how many connections may be alive at once. Connections above
		// the limit are closed right after being accepted. 0 disables the limit.
		MaxConnections int
		// MaxRequestSize limits the size of a single request, including its body. Requests
		// exceeding it are rejected with 413 Request Entity Too Large.
		MaxRequestSize int
		// ReusePort sets SO_REUSEPORT on the listening socket, where supported.
		ReusePort bool
	}

	MIME struct {
		// Extra extends the default set of supported file extensions.
		Extra map[string]string
	}

	Log struct {
		// Level is one of zerolog levels: trace, debug, info, warn, error, fatal, panic,
		// disabled.
		Level string
		// Pretty enables human-readable console output instead of JSON lines.
		Pretty bool
	}
)

// Config holds the tunables of the server. The root folder and the port aren't
// a part of it, they're passed explicitly on start.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET  NET
	MIME MIME
	Log  Log
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize: 2 * 1024,
			IdleTimeout:    Duration(2 * time.Second),
			MaxConnections: 20000,
			// 64kb is way more than any GET request must ever take.
			MaxRequestSize: 64 * 1024,
		},
		MIME: MIME{
			Extra: make(map[string]string),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a JSON file and applies it over the defaults, so the file may contain only
// the fields to be overridden.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse applies the JSON document over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values which can't be sensibly interpreted.
func (c *Config) Validate() error {
	switch {
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("%w: NET.ReadBufferSize must be positive", ErrBadConfig)
	case c.NET.IdleTimeout <= 0:
		return fmt.Errorf("%w: NET.IdleTimeout must be positive", ErrBadConfig)
	case c.NET.MaxConnections < 0:
		return fmt.Errorf("%w: NET.MaxConnections must not be negative", ErrBadConfig)
	case c.NET.MaxRequestSize < 0:
		return fmt.Errorf("%w: NET.MaxRequestSize must not be negative", ErrBadConfig)
	}

	return nil
}
