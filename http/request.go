package http

import (
	"io"
	"time"

	"github.com/indigo-web/static/http/mime"
	"github.com/indigo-web/static/http/proto"
	"github.com/indigo-web/static/kv"
)

type Headers = *kv.Storage

// Request represents a single parsed request attempt. It's created per complete frame and
// discarded as soon as the response is written.
type Request struct {
	// Method is the raw method token, exactly as received.
	Method string
	// Target is the original request-target.
	Target string
	// Normalized is the Target with path separators converted to the native ones.
	Normalized string
	// Root is the folder the request is served from.
	Root string
	// Path is the Normalized target joined with the Root.
	Path string
	// Extension is a lowercase extension of the Path, including the leading dot.
	Extension string
	// ProtocolToken is the raw protocol tag, e.g. HTTP/1.1
	ProtocolToken string
	// Protocol is resolved from the ProtocolToken during validation.
	Protocol proto.Protocol
	// Headers hold the header fields. In case of repeating keys, the last one wins.
	Headers Headers
	// Body is the payload, which is mostly empty.
	Body []byte
	// Mode is the connection mode, resolved during validation.
	Mode proto.Mode
	// ContentType is resolved from the Extension during validation.
	ContentType mime.MIME
	// Outcome is the verdict of the validation. Defaults to Success.
	Outcome Outcome
	// File is filled as soon as the target was found to be a readable file.
	File FileInfo
	// Stream is the opened file. It's owned by the request and closed via Close.
	Stream io.ReadCloser
}

type FileInfo struct {
	Size    int64
	ModTime time.Time
}

func NewRequest() *Request {
	return &Request{
		Headers: kv.NewPrealloc(8),
		Outcome: Success,
	}
}

// Fail sets the outcome unless another failure was already recorded. Returns whether
// the outcome was set.
func (r *Request) Fail(outcome Outcome) bool {
	if !r.Outcome.Passed() {
		return false
	}

	r.Outcome = outcome
	return true
}

// Close releases the file stream, if any.
func (r *Request) Close() error {
	if r.Stream == nil {
		return nil
	}

	err := r.Stream.Close()
	r.Stream = nil

	return err
}
