package cluster

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/goleak"
	"google.golang.org/grpc"

	"github.com/parallaxml/infergrid/internal/tensor"
	pb "github.com/parallaxml/infergrid/proto/inferpb"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeWorker implements pb.InferenceRunnerClient in-process: it echoes the
// first input back as the only output and records the calls it served.
type fakeWorker struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (f *fakeWorker) Predict(ctx context.Context, in *pb.PredictRequest, opts ...grpc.CallOption) (*pb.PredictResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("worker down")
	}
	return &pb.PredictResponse{
		Outputs: []*pb.Tensor{{Shape: in.Inputs[0].Shape, Data: in.Inputs[0].Data}},
	}, nil
}

func chunkOf(value float32) []tensor.Tensor {
	x := tensor.Zeros(2, 2)
	for i := range x.Data {
		x.Data[i] = value
	}
	return []tensor.Tensor{x}
}

func TestPredictPreservesChunkOrder(t *testing.T) {
	w0 := &fakeWorker{}
	w1 := &fakeWorker{}
	c, err := NewWithClients([]pb.InferenceRunnerClient{w0, w1})
	if err != nil {
		t.Fatalf("NewWithClients failed: %v", err)
	}

	chunks := make([][]tensor.Tensor, 5)
	for i := range chunks {
		chunks[i] = chunkOf(float32(i))
	}

	results, err := c.Predict(context.Background(), chunks)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Expected 5 results, got %d", len(results))
	}
	for i, res := range results {
		if len(res) != 1 {
			t.Fatalf("Chunk %d returned %d outputs", i, len(res))
		}
		if res[0].Data[0] != float32(i) {
			t.Errorf("Result %d carries data from chunk %v", i, res[0].Data[0])
		}
	}

	// Round-robin placement: chunk i goes to worker i%2.
	if w0.calls != 3 || w1.calls != 2 {
		t.Errorf("Expected 3/2 call split, got %d/%d", w0.calls, w1.calls)
	}
}

func TestPredictPropagatesWorkerError(t *testing.T) {
	c, err := NewWithClients([]pb.InferenceRunnerClient{&fakeWorker{fail: true}})
	if err != nil {
		t.Fatalf("NewWithClients failed: %v", err)
	}

	_, err = c.Predict(context.Background(), [][]tensor.Tensor{chunkOf(1)})
	if err == nil {
		t.Fatal("Expected worker error to propagate")
	}
}

func TestPredictRejectsEmptyInput(t *testing.T) {
	c, _ := NewWithClients([]pb.InferenceRunnerClient{&fakeWorker{}})
	if _, err := c.Predict(context.Background(), nil); err == nil {
		t.Fatal("Expected error for empty chunk list")
	}
}

func TestNewWithClientsRequiresWorkers(t *testing.T) {
	if _, err := NewWithClients(nil); err == nil {
		t.Fatal("Expected error for empty fleet")
	}
}

func TestRegistryKeyShape(t *testing.T) {
	if got := heartbeatKey("node-1:50051"); got != "infergrid:worker:node-1:50051:alive" {
		t.Errorf("Unexpected heartbeat key: %s", got)
	}
}
