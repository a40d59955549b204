package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GRPCServerHandlingSeconds is a histogram for gRPC server request latencies
	GRPCServerHandlingSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_server_handling_seconds",
			Help:    "Histogram of response latency (seconds) of gRPC that had been application-level handled by the server.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "code"},
	)

	// ChunkRows is a histogram of the row counts of incoming chunks.
	ChunkRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inference_chunk_rows",
			Help:    "Histogram of row counts of chunks submitted for inference.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		},
	)

	// PaddedRows counts the filler rows added to bring chunks up to the
	// model's fixed batch size.
	PaddedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inference_padded_rows_total",
			Help: "Total number of zero rows padded onto chunks to reach the model batch size.",
		},
	)

	// InferenceLatencySeconds is a histogram for engine-only latency
	InferenceLatencySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inference_latency_seconds",
			Help:    "Histogram of inference latency (seconds) excluding gRPC overhead.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// HealthStatus is a gauge indicating the health status of the worker
	HealthStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "health_status",
			Help: "Health status of the worker (1 = healthy, 0 = unhealthy).",
		},
	)
)

// RecordGRPCLatency records the latency of a gRPC method call
func RecordGRPCLatency(method, code string, seconds float64) {
	GRPCServerHandlingSeconds.WithLabelValues(method, code).Observe(seconds)
}

// RecordChunk records the size of an incoming chunk and how many rows of
// padding were needed to fill it out.
func RecordChunk(rows, padded int) {
	ChunkRows.Observe(float64(rows))
	PaddedRows.Add(float64(padded))
}

// RecordInferenceLatency records the latency of an engine call
func RecordInferenceLatency(seconds float64) {
	InferenceLatencySeconds.Observe(seconds)
}

// SetHealthy sets the health status to healthy
func SetHealthy() {
	HealthStatus.Set(1)
}

// SetUnhealthy sets the health status to unhealthy
func SetUnhealthy() {
	HealthStatus.Set(0)
}
