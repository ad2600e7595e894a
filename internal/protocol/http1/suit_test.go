package http1

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/indigo-web/static/filesystem"
	"github.com/indigo-web/static/http/mime"
	"github.com/indigo-web/static/http/status"
	"github.com/indigo-web/static/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var modTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

const indexBody = "<h1>Hello</h1>"

func newSuit(out *bytes.Buffer) *Suit {
	fsys := fstest.MapFS{
		"index.html": {Data: []byte(indexBody), ModTime: modTime},
		"file.xyz":   {Data: []byte("xyz"), ModTime: modTime},
	}
	chain := validation.New(filesystem.FromFS(fsys), mime.NewTable(nil))

	return New(".", chain, out, make([]byte, 0, 512), nil, zerolog.Nop())
}

type parsedResponse struct {
	Protocol string
	Code     status.Code
	Status   status.Status
	Headers  map[string]string
	Body     string
}

// parseResponse reads a single response out of the data, returning the rest.
func parseResponse(t *testing.T, data string) (parsedResponse, string) {
	head, rest, found := strings.Cut(data, "\r\n\r\n")
	require.True(t, found)

	lines := strings.Split(head, "\r\n")
	protocol, statusLine, _ := strings.Cut(lines[0], " ")
	codeStr, phrase, _ := strings.Cut(statusLine, " ")
	code, err := strconv.Atoi(codeStr)
	require.NoError(t, err)

	resp := parsedResponse{
		Protocol: protocol,
		Code:     status.Code(code),
		Status:   status.Status(phrase),
		Headers:  make(map[string]string),
	}

	for _, line := range lines[1:] {
		key, value, _ := strings.Cut(line, ": ")
		resp.Headers[key] = value
	}

	length, err := strconv.Atoi(resp.Headers["Content-Length"])
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rest), length)
	resp.Body = rest[:length]

	return resp, rest[length:]
}

func TestSuit(t *testing.T) {
	t.Run("index", func(t *testing.T) {
		var out bytes.Buffer
		keepAlive := newSuit(&out).Serve([]byte("GET /index.html HTTP/1.1\r\n\r\n"))
		require.True(t, keepAlive)

		resp, rest := parseResponse(t, out.String())
		require.Empty(t, rest)
		require.Equal(t, "HTTP/1.1", resp.Protocol)
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, "text/html", resp.Headers["Content-Type"])
		require.Equal(t, "keep-alive", resp.Headers["Connection"])
		require.Equal(t, "Fri, 01 Mar 2024 12:00:00 GMT", resp.Headers["Last-Modified"])
		require.Equal(t, indexBody, resp.Body)
	})

	t.Run("status line round trip", func(t *testing.T) {
		var out bytes.Buffer
		newSuit(&out).Serve([]byte("GET /index.html HTTP/1.1\r\n\r\n"))
		resp, _ := parseResponse(t, out.String())
		require.Equal(t, status.Text(resp.Code), resp.Status)
		require.Equal(t, resp.Code, status.FromText(resp.Status))
	})

	t.Run("relative path", func(t *testing.T) {
		var out bytes.Buffer
		keepAlive := newSuit(&out).Serve([]byte("GET /../secret HTTP/1.1\r\n\r\n"))
		require.True(t, keepAlive)

		resp, _ := parseResponse(t, out.String())
		require.Equal(t, status.Forbidden, resp.Code)
		require.Equal(t, "keep-alive", resp.Headers["Connection"])
		require.Contains(t, resp.Body, status.Message(status.ReasonRelativePath))
	})

	t.Run("method", func(t *testing.T) {
		var out bytes.Buffer
		newSuit(&out).Serve([]byte("POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"))
		resp, _ := parseResponse(t, out.String())
		require.Equal(t, status.InternalServerError, resp.Code)
		require.Contains(t, resp.Body, status.Message(status.ReasonMethodNotImplemented))
	})

	t.Run("unknown extension over HTTP/1.0", func(t *testing.T) {
		var out bytes.Buffer
		keepAlive := newSuit(&out).Serve([]byte("GET /file.xyz HTTP/1.0\r\n\r\n"))
		require.False(t, keepAlive)

		resp, _ := parseResponse(t, out.String())
		require.Equal(t, "HTTP/1.0", resp.Protocol)
		require.Equal(t, status.UnsupportedMediaType, resp.Code)
		require.Equal(t, "close", resp.Headers["Connection"])
	})

	t.Run("explicit close", func(t *testing.T) {
		var out bytes.Buffer
		keepAlive := newSuit(&out).Serve([]byte("GET /index.html HTTP/1.1\r\nConnection: close\r\n\r\n"))
		require.False(t, keepAlive)
	})

	t.Run("sequential frames", func(t *testing.T) {
		var out bytes.Buffer
		suit := newSuit(&out)
		require.True(t, suit.Serve([]byte("GET /index.html HTTP/1.1\r\n\r\n")))
		require.True(t, suit.Serve([]byte("GET /missing.html HTTP/1.1\r\n\r\n")))

		first, rest := parseResponse(t, out.String())
		second, rest := parseResponse(t, rest)
		require.Empty(t, rest)
		require.Equal(t, status.OK, first.Code)
		require.Equal(t, status.NotFound, second.Code)
	})

	t.Run("reject", func(t *testing.T) {
		var out bytes.Buffer
		newSuit(&out).Reject(status.ErrBadContentLength)
		resp, _ := parseResponse(t, out.String())
		require.Equal(t, "HTTP/1.1", resp.Protocol)
		require.Equal(t, status.LengthRequired, resp.Code)
		require.Equal(t, "close", resp.Headers["Connection"])
		require.Contains(t, resp.Body, status.Message(status.ReasonBadContentLength))
	})

	t.Run("reject unknown error", func(t *testing.T) {
		var out bytes.Buffer
		newSuit(&out).Reject(io.ErrUnexpectedEOF)
		resp, _ := parseResponse(t, out.String())
		require.Equal(t, status.InternalServerError, resp.Code)
		require.Equal(t, "close", resp.Headers["Connection"])
		require.Contains(t, resp.Body, status.Message(status.ReasonInternal))
	})
}
