package transport

import "net"

// Transport accepts connections and hands them over to the callback, each in its own goroutine.
type Transport interface {
	Bind(addr string) error
	Listen(onConn, onRefused func(conn net.Conn)) error
	Addr() net.Addr
	Stop()
	Wait()
}
