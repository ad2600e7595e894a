package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 2*time.Second, cfg.NET.IdleTimeout.Std())
	require.Equal(t, 20000, cfg.NET.MaxConnections)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestParse(t *testing.T) {
	t.Run("partial override", func(t *testing.T) {
		cfg, err := Parse([]byte(`{
			"NET": {"IdleTimeout": "500ms", "MaxConnections": 3},
			"MIME": {"Extra": {".svg": "image/svg+xml"}},
			"Log": {"Level": "debug", "Pretty": true}
		}`))
		require.NoError(t, err)
		require.Equal(t, 500*time.Millisecond, cfg.NET.IdleTimeout.Std())
		require.Equal(t, 3, cfg.NET.MaxConnections)
		// untouched fields keep their defaults
		require.Equal(t, Default().NET.ReadBufferSize, cfg.NET.ReadBufferSize)
		require.Equal(t, "image/svg+xml", cfg.MIME.Extra[".svg"])
		require.Equal(t, "debug", cfg.Log.Level)
		require.True(t, cfg.Log.Pretty)
	})

	t.Run("numeric duration", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"NET": {"IdleTimeout": 1000000000}}`))
		require.NoError(t, err)
		require.Equal(t, time.Second, cfg.NET.IdleTimeout.Std())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]byte(`{"NET": `))
		require.ErrorIs(t, err, ErrBadConfig)

		_, err = Parse([]byte(`{"NET": {"IdleTimeout": "forever"}}`))
		require.ErrorIs(t, err, ErrBadConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Parse([]byte(`{"NET": {"ReadBufferSize": 0}}`))
		require.ErrorIs(t, err, ErrBadConfig)

		_, err = Parse([]byte(`{"NET": {"IdleTimeout": "-1s"}}`))
		require.ErrorIs(t, err, ErrBadConfig)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "static.json")
	data, err := json.Marshal(map[string]any{
		"NET": map[string]any{"ReadBufferSize": 4096, "IdleTimeout": "3s"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.NET.ReadBufferSize)
	require.Equal(t, 3*time.Second, cfg.NET.IdleTimeout.Std())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDuration(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	require.Equal(t, `"1m30s"`, string(data))
}
