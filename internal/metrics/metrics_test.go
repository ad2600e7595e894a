package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	result := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			result[m.Name] = m.Data
		}
	}

	return result
}

func TestMetrics(t *testing.T) {
	t.Run("nil is noop", func(t *testing.T) {
		var m *Metrics
		m.Opened()
		m.Closed()
		m.Refused()
		m.Request(200, 10)
	})

	t.Run("records", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		m, err := New(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
		require.NoError(t, err)

		m.Opened()
		m.Opened()
		m.Closed()
		m.Refused()
		m.Request(200, 100)
		m.Request(404, 50)
		m.Request(404, 50)

		data := collect(t, reader)

		active := data["static.connections.active"].(metricdata.Sum[int64])
		require.Len(t, active.DataPoints, 1)
		require.Equal(t, int64(1), active.DataPoints[0].Value)

		refused := data["static.connections.refused"].(metricdata.Sum[int64])
		require.Equal(t, int64(1), refused.DataPoints[0].Value)

		sent := data["static.response.body.size"].(metricdata.Sum[int64])
		require.Equal(t, int64(200), sent.DataPoints[0].Value)

		requests := data["static.requests"].(metricdata.Sum[int64])
		byCode := make(map[int64]int64)
		for _, dp := range requests.DataPoints {
			code, ok := dp.Attributes.Value(attribute.Key("http.response.status_code"))
			require.True(t, ok)
			byCode[code.AsInt64()] = dp.Value
		}
		require.Equal(t, map[int64]int64{200: 1, 404: 2}, byCode)
	})
}
