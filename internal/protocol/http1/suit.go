package http1

import (
	"errors"
	"io"

	"github.com/indigo-web/static/http"
	"github.com/indigo-web/static/http/proto"
	"github.com/indigo-web/static/http/status"
	"github.com/indigo-web/static/internal/metrics"
	"github.com/indigo-web/static/internal/validation"
	"github.com/rs/zerolog"
)

// Suit turns complete frames into responses written to a single client.
type Suit struct {
	root       string
	chain      *validation.Chain
	serializer *serializer
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

func New(
	root string,
	chain *validation.Chain,
	client io.Writer,
	buff []byte,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Suit {
	return &Suit{
		root:       root,
		chain:      chain,
		serializer: newSerializer(client, buff),
		metrics:    m,
		log:        log,
	}
}

// Serve processes a single frame and reports whether the connection may stay open.
func (s *Suit) Serve(frame []byte) (keepAlive bool) {
	request := Parse(frame, s.root)
	defer func() {
		if err := request.Close(); err != nil {
			s.log.Warn().Err(err).Str("path", request.Path).Msg("closing file")
		}
	}()

	response := http.NewResponse()
	outcome, err := s.chain.Run(request, response)
	if err != nil {
		s.log.Error().Err(err).Str("target", request.Target).Msg("building response")
		return false
	}

	written, err := s.serializer.Write(response, request.Stream)
	s.metrics.Request(int(outcome.Code), written)

	s.log.Debug().
		Str("method", request.Method).
		Str("target", request.Target).
		Int("status", int(outcome.Code)).
		Str("reason", string(outcome.Reason)).
		Int64("written", written).
		Msg("request")

	if err != nil {
		s.log.Warn().Err(err).Str("path", request.Path).Msg("writing response")
		return false
	}

	return response.KeepAlive()
}

// Reject answers with the error page when no frame could be extracted. The connection must
// be closed afterwards anyway, as its framing is lost.
func (s *Suit) Reject(err error) {
	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = status.ErrInternal.(status.HTTPError)
	}

	response := http.NewResponse()
	response.Protocol, response.Mode = proto.Default, proto.Close
	if err := response.SetErrorBody(httpErr.Code, httpErr.Reason); err != nil {
		s.log.Error().Err(err).Msg("building response")
		return
	}

	written, err := s.serializer.Write(response, nil)
	s.metrics.Request(int(httpErr.Code), written)
	s.log.Debug().
		Int("status", int(httpErr.Code)).
		Str("reason", string(httpErr.Reason)).
		Msg("request rejected")

	if err != nil {
		s.log.Warn().Err(err).Msg("writing response")
	}
}
