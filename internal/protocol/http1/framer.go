package http1

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/static/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

type State uint8

const (
	// Partial means more bytes are required before a request can be extracted.
	Partial State = iota + 1
	// Complete means the frame boundaries are known.
	Complete
)

// Frame marks the boundaries of a complete request inside the accumulated data. Bytes
// before Start are empty lines preceding the request, bytes starting at End already
// belong to the next one.
type Frame struct {
	State      State
	Start, End int
}

const (
	crlf        = "\r\n"
	separator   = "\r\n\r\n"
	protoMarker = "HTTP/"
)

// Detect decides whether data holds a complete request. It never consumes anything: the
// caller is the one to cut the frame out of its buffer. Zero maxSize disables the limit.
func Detect(data []byte, maxSize int) (Frame, error) {
	start := skipEmptyLines(data)
	sep := bytes.Index(data[start:], []byte(separator))
	if sep == -1 {
		return partial(data, maxSize)
	}

	lines := splitLines(uf.B2S(data[start : start+sep]))
	if len(lines) == 0 {
		return partial(data, maxSize)
	}

	tokens := strings.Split(lines[0], " ")
	if len(tokens) < 3 || !strings.Contains(tokens[2], protoMarker) {
		return partial(data, maxSize)
	}

	var (
		contentLength string
		hasLength     bool
		chunked       bool
	)

	for _, line := range lines[1:] {
		key, value := splitHeader(line)
		switch {
		case strcomp.EqualFold(key, "content-length"):
			contentLength, hasLength = value, true
		case strcomp.EqualFold(key, "transfer-encoding"):
			chunked = isChunked(value)
		}
	}

	bodyStart := start + sep + len(separator)

	switch {
	case chunked:
		n, done, err := scanChunked(data[bodyStart:])
		if err != nil {
			return Frame{}, status.ErrBadChunk
		}

		if !done {
			return partial(data, maxSize)
		}

		if maxSize > 0 && bodyStart+n-start > maxSize {
			return Frame{}, status.ErrRequestTooLarge
		}

		return Frame{State: Complete, Start: start, End: bodyStart + n}, nil
	case hasLength:
		value := strings.TrimSpace(contentLength)
		if !isDigits(value) {
			return Frame{}, status.ErrBadContentLength
		}

		length, err := strconv.Atoi(value)
		if err != nil {
			return Frame{}, status.ErrBadContentLength
		}

		if maxSize > 0 && bodyStart-start+length > maxSize {
			return Frame{}, status.ErrRequestTooLarge
		}

		if len(data)-bodyStart < length {
			return Frame{State: Partial}, nil
		}

		return Frame{State: Complete, Start: start, End: bodyStart + length}, nil
	default:
		return Frame{State: Complete, Start: start, End: bodyStart}, nil
	}
}

func partial(data []byte, maxSize int) (Frame, error) {
	if maxSize > 0 && len(data) > maxSize {
		return Frame{}, status.ErrRequestTooLarge
	}

	return Frame{State: Partial}, nil
}

func skipEmptyLines(data []byte) (offset int) {
	for offset+1 < len(data) && data[offset] == '\r' && data[offset+1] == '\n' {
		offset += 2
	}

	return offset
}

// splitLines returns non-empty CRLF-separated lines of the head.
func splitLines(head string) []string {
	lines := strings.Split(head, crlf)
	nonEmpty := lines[:0]
	for _, line := range lines {
		if len(line) > 0 {
			nonEmpty = append(nonEmpty, line)
		}
	}

	return nonEmpty
}

// splitHeader cuts the line by the first colon. A single leading space is stripped from the
// key, the value is kept verbatim. Lines without a colon result in an empty value.
func splitHeader(line string) (key, value string) {
	key, value, _ = strings.Cut(line, ":")
	return strings.TrimPrefix(key, " "), value
}

// isDigits reports whether the value is a non-empty run of ASCII digits. Signs aren't
// allowed in Content-Length.
func isDigits(value string) bool {
	if len(value) == 0 {
		return false
	}

	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}

	return true
}

// isChunked reports whether chunked is the final transfer coding.
func isChunked(value string) bool {
	if comma := strings.LastIndexByte(value, ','); comma != -1 {
		value = value[comma+1:]
	}

	return strcomp.EqualFold(strings.TrimSpace(value), "chunked")
}

// scanChunked walks through the chunked body and returns its length as soon as the
// terminating chunk is seen.
func scanChunked(body []byte) (n int, done bool, err error) {
	return walkChunked(body, nil)
}

// walkChunked feeds the body to the chunked parser, calling onChunk for every chunk.
func walkChunked(body []byte, onChunk func([]byte)) (n int, done bool, err error) {
	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
	rest := body

	for len(rest) > 0 {
		chunk, extra, err := parser.Parse(rest, false)
		if onChunk != nil && len(chunk) > 0 {
			onChunk(chunk)
		}

		switch err {
		case nil:
		case io.EOF:
			return len(body) - len(extra), true, nil
		default:
			return 0, false, err
		}

		rest = extra
	}

	return 0, false, nil
}
