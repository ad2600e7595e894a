//go:build unix

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func reusePort(_, _ string, conn syscall.RawConn) (err error) {
	ctrlErr := conn.Control(func(fd uintptr) {
		err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if ctrlErr != nil {
		return ctrlErr
	}

	return err
}
