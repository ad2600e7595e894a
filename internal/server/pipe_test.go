package server

import (
	"net"
	"testing"
)

func pipe(t *testing.T) (server, peer net.Conn) {
	server, peer = net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = peer.Close()
	})

	return server, peer
}
