package http1

import (
	"errors"
	"io"

	"github.com/indigo-web/static/http"
)

// ErrShortStream is returned when the file turned out to be shorter than announced in
// the Content-Length.
var ErrShortStream = errors.New("file stream ended before the announced length")

type serializer struct {
	client io.Writer
	buff   []byte
}

func newSerializer(client io.Writer, buff []byte) *serializer {
	return &serializer{
		client: client,
		buff:   buff[:0],
	}
}

// Write sends the response. Headers and the body are flushed in a single write, the
// stream, if present and the body is empty, is copied afterwards exactly up to the
// announced Content-Length. Returns the total amount of bytes written.
func (s *serializer) Write(response *http.Response, stream io.Reader) (written int64, err error) {
	if len(response.StatusLine()) == 0 {
		return 0, http.ErrUnknownProtocol
	}

	s.buff = append(s.buff, response.StatusLine()...)
	s.crlf()

	for key, value := range response.Headers.Iter() {
		s.appendHeader(key, value)
	}

	s.crlf()
	s.buff = append(s.buff, response.Body...)

	n, err := s.flush()
	written = int64(n)
	if err != nil || stream == nil || len(response.Body) > 0 {
		return written, err
	}

	length := response.ContentLength()
	if length <= 0 {
		return written, nil
	}

	// io.CopyN hands the client a limited reader over the file, which is what
	// net.TCPConn needs to take the sendfile path.
	copied, err := io.CopyN(s.client, stream, length)
	written += copied
	if errors.Is(err, io.EOF) {
		err = ErrShortStream
	}

	return written, err
}

func (s *serializer) appendHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, ':', ' ')
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *serializer) flush() (n int, err error) {
	if len(s.buff) > 0 {
		n, err = s.client.Write(s.buff)
		s.buff = s.buff[:0]
	}

	return n, err
}
