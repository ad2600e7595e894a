//go:build !unix

package transport

import "syscall"

func reusePort(_, _ string, _ syscall.RawConn) error {
	return nil
}
