package status

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		require.Equal(t, Status("OK"), Text(OK))
		require.Equal(t, Status("Not Found"), Text(NotFound))
		require.Equal(t, Status("HTTP Version Not Supported"), Text(HTTPVersionNotSupported))
		require.Equal(t, Status("Request Entity Too Large"), Text(RequestEntityTooLarge))
	})

	t.Run("unknown", func(t *testing.T) {
		require.Equal(t, Status("Unknown Status Code"), Text(418))
		require.False(t, Supported(418))
	})

	t.Run("reverse", func(t *testing.T) {
		for _, code := range KnownCodes {
			require.True(t, Supported(code))
			require.Equal(t, code, FromText(Text(code)))
			require.Equal(t, strconv.Itoa(int(code)), code.String())
		}
	})
}

func TestMessage(t *testing.T) {
	require.Equal(t, "Error, the requested file path is relative", Message(ReasonRelativePath))
	require.Equal(t, "Error, the requested file does not exist", Message(ReasonNotFound))
	// no custom text for the version error, so the reason is used as is
	require.Equal(t, "Http Version Error", Message(ReasonVersion))
}

func TestHTTPError(t *testing.T) {
	var httpErr HTTPError
	require.True(t, errors.As(ErrBadContentLength, &httpErr))
	require.Equal(t, LengthRequired, httpErr.Code)
	require.Equal(t, ReasonBadContentLength, httpErr.Reason)
	require.EqualError(t, ErrRequestTooLarge, "Request Too Large")
}
