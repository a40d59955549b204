// Package handler implements the worker side of the distributed-predict
// primitive: it receives one chunk per call, pads it up to the model's
// fixed batch size, hands it to the engine and returns the full padded
// outputs. Trimming the padding back off is the estimator's job.
package handler

import (
	"context"
	"log"
	"time"

	"github.com/parallaxml/infergrid/internal/engine"
	"github.com/parallaxml/infergrid/internal/metrics"
	"github.com/parallaxml/infergrid/internal/middleware"
	"github.com/parallaxml/infergrid/internal/tensor"
	pb "github.com/parallaxml/infergrid/proto/inferpb"
)

// Handler implements the InferenceRunnerServer interface. It uses the
// Engine interface for flexibility and testability.
type Handler struct {
	pb.UnimplementedInferenceRunnerServer
	engine    engine.Engine
	batchSize int
}

// New creates a new Handler over the given engine. batchSize is the fixed
// batch size the model was loaded with; incoming chunks are padded up to
// it.
func New(eng engine.Engine, batchSize int) *Handler {
	return &Handler{
		engine:    eng,
		batchSize: batchSize,
	}
}

// Predict handles one chunk.
func (h *Handler) Predict(ctx context.Context, req *pb.PredictRequest) (*pb.PredictResponse, error) {
	start := time.Now()

	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}

	if req == nil || len(req.Inputs) == 0 {
		return nil, invalidArgumentError("chunk cannot be nil or empty")
	}
	if h.engine == nil {
		return nil, failedPreconditionError("inference engine not initialized")
	}
	if h.batchSize <= 0 {
		return nil, failedPreconditionError("model batch size not configured")
	}

	inputs, rows, err := h.decodeChunk(req)
	if err != nil {
		return nil, err
	}

	metrics.RecordChunk(rows, h.batchSize-rows)

	// Pad every input up to the model's fixed batch size. The engine
	// always sees full batches.
	padded := make([]tensor.Tensor, 0, len(inputs))
	for _, in := range inputs {
		padded = append(padded, in.PadRows(h.batchSize))
	}

	inferStart := time.Now()
	outputs, err := h.engine.Infer(padded)
	inferDuration := time.Since(inferStart)
	metrics.RecordInferenceLatency(inferDuration.Seconds())

	if err != nil {
		log.Printf("[%s] Inference error: %v", requestID, err)
		return nil, grpcError(err)
	}

	resp := &pb.PredictResponse{Outputs: make([]*pb.Tensor, 0, len(outputs))}
	for _, out := range outputs {
		resp.Outputs = append(resp.Outputs, &pb.Tensor{Shape: out.Shape, Data: out.Data})
	}

	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0
	log.Printf("[%s] Predict: rows=%d, padded_to=%d, inference_ms=%.2f, total_ms=%.2f",
		requestID, rows, h.batchSize, float64(inferDuration.Microseconds())/1000.0, latencyMs)

	return resp, nil
}

// decodeChunk validates the wire tensors and returns them with the chunk's
// shared row count.
func (h *Handler) decodeChunk(req *pb.PredictRequest) ([]tensor.Tensor, int, error) {
	inputs := make([]tensor.Tensor, 0, len(req.Inputs))
	rows := 0
	for i, wire := range req.Inputs {
		if wire == nil {
			return nil, 0, invalidArgumentError("input %d is nil", i)
		}
		t, err := tensor.New(wire.Shape, wire.Data)
		if err != nil {
			return nil, 0, invalidArgumentError("input %d: %v", i, err)
		}
		if i == 0 {
			rows = t.Rows()
			if rows == 0 {
				return nil, 0, invalidArgumentError("chunk has no rows")
			}
			if rows > h.batchSize {
				return nil, 0, invalidArgumentError(
					"chunk has %d rows, which exceeds the model batch size %d; some inputs would be ignored",
					rows, h.batchSize)
			}
		} else if t.Rows() != rows {
			return nil, 0, invalidArgumentError(
				"input %d has %d rows, expected %d", i, t.Rows(), rows)
		}
		inputs = append(inputs, t)
	}
	return inputs, rows, nil
}
