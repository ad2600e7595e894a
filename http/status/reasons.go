package status

// Reason is a symbolic explanation attached to an outcome. It is more specific than the
// status phrase (e.g. both "Directory Path" and "Error File Reading" are 404 Not Found),
// but the client sees it only through the custom message rendered in an error page.
type Reason string

const (
	ReasonOK                   Reason = "OK"
	ReasonVersion              Reason = "Http Version Error"
	ReasonMethodNotImplemented Reason = "Method Not Implemented"
	ReasonBadPathURL           Reason = "Bad Path Url"
	ReasonRelativePath         Reason = "Relative Path"
	ReasonUnsupportedMediaType Reason = "Unsupported Media Type"
	ReasonNotFound             Reason = "Not Found"
	ReasonDirectoryPath        Reason = "Directory Path"
	ReasonFileReading          Reason = "Error File Reading"
	ReasonInternal             Reason = "Internal Server Error"
	ReasonBadContentLength     Reason = "Bad Content Length"
	ReasonTooLarge             Reason = "Request Too Large"
	ReasonBadChunk             Reason = "Malformed Chunked Body"
	ReasonVersionNotSupported  Reason = "HTTP Version Not Supported"
)

var messages = map[Reason]string{
	ReasonOK:                   "OK",
	ReasonBadPathURL:           "Error, the requested file path is invalid",
	ReasonRelativePath:         "Error, the requested file path is relative",
	ReasonMethodNotImplemented: "Error, other methods then GET are not implemented",
	ReasonInternal:             "Error on the server or on the socket",
	ReasonNotFound:             "Error, the requested file does not exist",
	ReasonDirectoryPath:        "Error, the requested file path is a directory",
	ReasonVersionNotSupported:  "Error, this HTTP Version is not supported",
	ReasonUnsupportedMediaType: "Error, the requested file is of unsupported media type",
	ReasonFileReading:          "Error, there was a failure while reading the file",
	ReasonBadContentLength:     "Error, the request declares an invalid Content-Length",
	ReasonTooLarge:             "Error, the request exceeds the allowed size",
	ReasonBadChunk:             "Error, the chunked request body is malformed",
}

// Message returns the custom display text for the reason. If there's none, the reason
// itself is returned.
func Message(reason Reason) string {
	if msg, found := messages[reason]; found {
		return msg
	}

	return string(reason)
}
