package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	for _, method := range []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH} {
		require.Equal(t, method, Parse(method.String()))
	}

	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse("BREW"))
	require.Equal(t, Unknown, Parse(""))
}
