package proto

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Mode is the connection disposition after a response was sent.
type Mode string

const (
	Unset     Mode = ""
	KeepAlive Mode = "keep-alive"
	Close     Mode = "close"
)

// ParseMode interprets a Connection header value. Any token other than keep-alive and
// close results in Unset.
func ParseMode(value string) Mode {
	value = strings.TrimSpace(value)

	switch {
	case strcomp.EqualFold(value, string(KeepAlive)):
		return KeepAlive
	case strcomp.EqualFold(value, string(Close)):
		return Close
	default:
		return Unset
	}
}
