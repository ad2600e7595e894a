package http1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/indigo-web/static/http"
	"github.com/indigo-web/static/http/proto"
	"github.com/indigo-web/static/http/status"
	"github.com/stretchr/testify/require"
)

func TestSerializer(t *testing.T) {
	t.Run("error page", func(t *testing.T) {
		var out bytes.Buffer
		response := http.NewResponse()
		response.Protocol = proto.HTTP10
		require.NoError(t, response.SetErrorBody(status.NotFound, status.ReasonNotFound))

		written, err := newSerializer(&out, nil).Write(response, strings.NewReader("ignored"))
		require.NoError(t, err)
		require.Equal(t, int64(out.Len()), written)

		head, body, found := strings.Cut(out.String(), "\r\n\r\n")
		require.True(t, found)
		require.True(t, strings.HasPrefix(head, "HTTP/1.0 404 Not Found\r\nDate: "))
		require.Contains(t, head, "\r\nConnection: close\r\n")
		require.Equal(t, response.Body, body)
	})

	t.Run("stream", func(t *testing.T) {
		var out bytes.Buffer
		response := http.NewResponse()
		response.Protocol = proto.HTTP11
		require.NoError(t, response.SetSuccessHeaders(status.OK, 5, "text/plain", modTime))

		written, err := newSerializer(&out, make([]byte, 0, 64)).Write(response, strings.NewReader("hello, world"))
		require.NoError(t, err)
		require.Equal(t, int64(out.Len()), written)
		require.True(t, strings.HasSuffix(out.String(), "\r\n\r\nhello"))
	})

	t.Run("short stream", func(t *testing.T) {
		var out bytes.Buffer
		response := http.NewResponse()
		response.Protocol = proto.HTTP11
		require.NoError(t, response.SetSuccessHeaders(status.OK, 10, "text/plain", modTime))

		_, err := newSerializer(&out, nil).Write(response, strings.NewReader("hello"))
		require.ErrorIs(t, err, ErrShortStream)
	})

	t.Run("not built", func(t *testing.T) {
		_, err := newSerializer(new(bytes.Buffer), nil).Write(http.NewResponse(), nil)
		require.ErrorIs(t, err, http.ErrUnknownProtocol)
	})
}
