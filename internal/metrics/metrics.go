package metrics

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const scope = "github.com/indigo-web/static"

// Metrics holds the server instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	active   metric.Int64UpDownCounter
	refused  metric.Int64Counter
	requests metric.Int64Counter
	sent     metric.Int64Counter
}

// New registers the instruments at the provider. Nil provider falls back to the global one.
func New(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter(scope)

	active, err1 := meter.Int64UpDownCounter("static.connections.active",
		metric.WithDescription("Currently open client connections"),
		metric.WithUnit("{connection}"))
	refused, err2 := meter.Int64Counter("static.connections.refused",
		metric.WithDescription("Connections closed right away due to the limit"),
		metric.WithUnit("{connection}"))
	requests, err3 := meter.Int64Counter("static.requests",
		metric.WithDescription("Processed requests by the response status code"),
		metric.WithUnit("{request}"))
	sent, err4 := meter.Int64Counter("static.response.body.size",
		metric.WithDescription("Bytes written to clients"),
		metric.WithUnit("By"))

	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return nil, err
	}

	return &Metrics{
		active:   active,
		refused:  refused,
		requests: requests,
		sent:     sent,
	}, nil
}

func (m *Metrics) Opened() {
	if m != nil {
		m.active.Add(context.Background(), 1)
	}
}

func (m *Metrics) Closed() {
	if m != nil {
		m.active.Add(context.Background(), -1)
	}
}

func (m *Metrics) Refused() {
	if m != nil {
		m.refused.Add(context.Background(), 1)
	}
}

// Request records a written response with its status code and the amount of bytes sent.
func (m *Metrics) Request(code int, written int64) {
	if m == nil {
		return
	}

	ctx := context.Background()
	m.requests.Add(ctx, 1, metric.WithAttributes(attribute.Int("http.response.status_code", code)))
	if written > 0 {
		m.sent.Add(ctx, written)
	}
}
