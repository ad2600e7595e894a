package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tcs := []struct {
		Token string
		Want  Protocol
	}{
		{"HTTP/1.1", HTTP11},
		{"HTTP/1.0", HTTP10},
		{"HTTP/2.0", Unknown},
		{"HTTP/0.9", Unknown},
		{"http/1.1", Unknown},
		{"XHTTP/1.1", Unknown},
		{"HTTP1.1", Unknown},
		{"", Unknown},
	}

	for _, tc := range tcs {
		require.Equal(t, tc.Want, Parse(tc.Token), tc.Token)
	}
}

func TestProtocol(t *testing.T) {
	require.Equal(t, "HTTP/1.1", HTTP11.String())
	require.Equal(t, "1.0", HTTP10.Version())
	require.Empty(t, Unknown.String())
	require.Equal(t, KeepAlive, HTTP11.DefaultMode())
	require.Equal(t, Close, HTTP10.DefaultMode())
}

func TestParseMode(t *testing.T) {
	require.Equal(t, Close, ParseMode(" close"))
	require.Equal(t, KeepAlive, ParseMode("Keep-Alive"))
	require.Equal(t, Close, ParseMode("CLOSE\t"))
	require.Equal(t, Unset, ParseMode("upgrade"))
	require.Equal(t, Unset, ParseMode(""))
}
