package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes the server is able to produce. The set mirrors what the status table
// below declares, even though some of them (408) are never actually sent.
const (
	OK                      Code = 200 // RFC 9110, 15.3.1
	BadRequest              Code = 400 // RFC 9110, 15.5.1
	Forbidden               Code = 403 // RFC 9110, 15.5.4
	NotFound                Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed        Code = 405 // RFC 9110, 15.5.6
	RequestTimeout          Code = 408 // RFC 9110, 15.5.9
	LengthRequired          Code = 411 // RFC 9110, 15.5.12
	RequestEntityTooLarge   Code = 413 // RFC 9110, 15.5.14
	UnsupportedMediaType    Code = 415 // RFC 9110, 15.5.16
	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

var table = map[Code]Status{
	OK:                      "OK",
	BadRequest:              "Bad Request",
	Forbidden:               "Forbidden",
	NotFound:                "Not Found",
	MethodNotAllowed:        "Method Not Allowed",
	RequestTimeout:          "Request Timeout",
	LengthRequired:          "Length Required",
	RequestEntityTooLarge:   "Request Entity Too Large",
	UnsupportedMediaType:    "Unsupported Media Type",
	InternalServerError:     "Internal Server Error",
	NotImplemented:          "Not Implemented",
	HTTPVersionNotSupported: "HTTP Version Not Supported",
}

// KnownCodes lists every code presented in the status table.
var KnownCodes = []Code{
	OK, BadRequest, Forbidden, NotFound, MethodNotAllowed, RequestTimeout, LengthRequired,
	RequestEntityTooLarge, UnsupportedMediaType, InternalServerError, NotImplemented,
	HTTPVersionNotSupported,
}

// Text returns a human-readable phrase for the code. Codes outside the table result in
// "Unknown Status Code".
func Text(code Code) Status {
	if text, found := table[code]; found {
		return text
	}

	return "Unknown Status Code"
}

// Supported tells whether the code is a part of the status table.
func Supported(code Code) bool {
	_, found := table[code]
	return found
}

// FromText is the reverse lookup of Text. Returns 0 if no code matches.
func FromText(text Status) Code {
	for code, phrase := range table {
		if phrase == text {
			return code
		}
	}

	return 0
}

func (c Code) String() string {
	return strconv.Itoa(int(c))
}
