package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/indigo-web/static/http/mime"
	"github.com/indigo-web/static/http/proto"
	"github.com/indigo-web/static/http/status"
	"github.com/indigo-web/static/internal/timer"
	"github.com/indigo-web/static/kv"
)

// ErrUnknownProtocol is returned when the status line is requested before the protocol
// version of the response is known.
var ErrUnknownProtocol = errors.New("status line requires a known protocol")

// ErrUnknownStatus is returned for codes outside the status table.
var ErrUnknownStatus = errors.New("status code is not supported")

// why 5? Date, Content-Length, Connection, Content-Type and Last-Modified.
const preallocRespHeaders = 5

// Response is the outgoing message under construction. Successful responses carry no body,
// as the file is streamed right after the headers.
type Response struct {
	Protocol   proto.Protocol
	Mode       proto.Mode
	Code       status.Code
	Headers    Headers
	Body       string
	statusLine string
}

// NewResponse returns a new Response with the status code set to 200 OK and an unknown
// protocol. The latter must be set before any of the builder methods is called.
func NewResponse() *Response {
	return &Response{
		Code:    status.OK,
		Headers: kv.NewPrealloc(preallocRespHeaders),
	}
}

// WriteStatusLine composes the status line for the code, without trailing CRLF.
func (r *Response) WriteStatusLine(code status.Code) error {
	if r.Protocol == proto.Unknown {
		return ErrUnknownProtocol
	}

	if !status.Supported(code) {
		return ErrUnknownStatus
	}

	r.Code = code
	r.statusLine = r.Protocol.String() + " " + code.String() + " " + string(status.Text(code))

	return nil
}

// StatusLine returns the status line composed by the last WriteStatusLine call.
func (r *Response) StatusLine() string {
	return r.statusLine
}

// SetErrorBody renders a minimal HTML page describing the failure and sets the headers
// accordingly.
func (r *Response) SetErrorBody(code status.Code, reason status.Reason) error {
	body := ErrorPage(code, reason)
	if err := r.defineBasicHeaders(code, int64(len(body)), mime.HTML); err != nil {
		return err
	}

	r.Body = body

	return nil
}

// SetSuccessHeaders prepares the headers for a file of the given size, which is going to
// be streamed after them.
func (r *Response) SetSuccessHeaders(
	code status.Code, size int64, contentType mime.MIME, lastModified time.Time,
) error {
	if err := r.defineBasicHeaders(code, size, contentType); err != nil {
		return err
	}

	r.Body = ""
	r.Headers.Set("Last-Modified", FormatTime(lastModified))

	return nil
}

// KeepAlive tells whether the connection must be left open after the response.
func (r *Response) KeepAlive() bool {
	return r.Mode == proto.KeepAlive
}

// ContentLength returns the value of the Content-Length header, or -1 if it's absent or
// malformed.
func (r *Response) ContentLength() int64 {
	value, found := r.Headers.Get("Content-Length")
	if !found {
		return -1
	}

	length, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return -1
	}

	return length
}

func (r *Response) defineBasicHeaders(code status.Code, length int64, contentType mime.MIME) error {
	if err := r.WriteStatusLine(code); err != nil {
		return err
	}

	if r.Mode == proto.Unset {
		r.Mode = r.Protocol.DefaultMode()
	}

	r.Headers.Clear().
		Set("Date", timer.Date()).
		Set("Content-Length", strconv.FormatInt(length, 10)).
		Set("Connection", string(r.Mode)).
		Set("Content-Type", contentType)

	return nil
}

var zoneGMT = time.FixedZone("GMT", 0)

// FormatTime formats the timestamp as required by HTTP: Fri, 31 Dec 1999 23:59:59 GMT
func FormatTime(t time.Time) string {
	return t.In(zoneGMT).Format(time.RFC1123)
}

// ErrorPage renders the body of an error response.
func ErrorPage(code status.Code, reason status.Reason) string {
	return "<html><head><title>" + code.String() + " " + string(status.Text(code)) +
		"</title></head><body><h1>" + status.Message(reason) + "</h1></body></html>"
}
