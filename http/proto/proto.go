package proto

import "strings"

type Protocol uint8

const (
	Unknown Protocol = iota
	HTTP10
	HTTP11
)

// Default is the protocol assumed whenever the requested one can't be served.
const Default = HTTP11

// Scheme is the literal that must precede the version in a protocol token.
const Scheme = "HTTP"

func (p Protocol) String() string {
	switch p {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	default:
		return ""
	}
}

// Version returns the bare version number, e.g. 1.1
func (p Protocol) Version() string {
	_, version, _ := strings.Cut(p.String(), "/")
	return version
}

// DefaultMode returns the connection mode implied by the protocol when the request
// doesn't carry an explicit Connection header.
func (p Protocol) DefaultMode() Mode {
	if p == HTTP11 {
		return KeepAlive
	}

	return Close
}

// Parse splits the protocol token into the scheme and the version, and returns the
// corresponding protocol. Unknown is returned if either of them isn't recognized.
func Parse(token string) Protocol {
	scheme, version, found := strings.Cut(token, "/")
	if !found || scheme != Scheme {
		return Unknown
	}

	switch version {
	case "1.0":
		return HTTP10
	case "1.1":
		return HTTP11
	default:
		return Unknown
	}
}
