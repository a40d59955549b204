// Package cluster is the client side of the distributed-predict
// primitive: it fans chunks out over the worker fleet and collects the
// outputs back in chunk order. There is no scheduling cleverness here;
// chunk i simply goes to worker i modulo the fleet size.
package cluster

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/parallaxml/infergrid/internal/middleware"
	"github.com/parallaxml/infergrid/internal/tensor"
	pb "github.com/parallaxml/infergrid/proto/inferpb"
)

// Options controls how worker connections are dialed.
type Options struct {
	// Tracing adds the OpenTelemetry client interceptor to every
	// connection.
	Tracing bool
	// MaxMessageBytes bounds request and response sizes. Zero keeps the
	// gRPC default, which is too small for image-sized chunks.
	MaxMessageBytes int
}

// Cluster holds one connection per inference worker.
type Cluster struct {
	addrs   []string
	conns   []*grpc.ClientConn
	clients []pb.InferenceRunnerClient
}

// Dial connects to every worker address. All connections must succeed;
// a partial fleet would silently skew chunk placement.
func Dial(ctx context.Context, addrs []string, opts Options) (*Cluster, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("at least one worker address is required")
	}

	interceptors := []grpc.UnaryClientInterceptor{
		middleware.UnaryClientRequestIDInterceptor(),
	}
	if opts.Tracing {
		interceptors = append(interceptors, otelgrpc.UnaryClientInterceptor())
	}
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(interceptors...),
	}
	if opts.MaxMessageBytes > 0 {
		dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(opts.MaxMessageBytes),
			grpc.MaxCallSendMsgSize(opts.MaxMessageBytes),
		))
	}

	c := &Cluster{addrs: addrs}
	for _, addr := range addrs {
		conn, err := grpc.DialContext(ctx, addr, dialOpts...)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to dial worker %s: %w", addr, err)
		}
		c.conns = append(c.conns, conn)
		c.clients = append(c.clients, pb.NewInferenceRunnerClient(conn))
	}
	return c, nil
}

// NewWithClients builds a Cluster over pre-built clients. Used by tests
// and by in-process setups.
func NewWithClients(clients []pb.InferenceRunnerClient) (*Cluster, error) {
	if len(clients) == 0 {
		return nil, fmt.Errorf("at least one worker client is required")
	}
	return &Cluster{clients: clients}, nil
}

// Size returns the number of workers.
func (c *Cluster) Size() int {
	return len(c.clients)
}

// Predict runs every chunk on the fleet concurrently and returns the
// outputs in chunk order. Each chunk is one tensor per model input; each
// result is one tensor per model output, still padded to the model batch
// size.
func (c *Cluster) Predict(ctx context.Context, chunks [][]tensor.Tensor) ([][]tensor.Tensor, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to predict")
	}

	results := make([][]tensor.Tensor, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		client := c.clients[i%len(c.clients)]
		g.Go(func() error {
			req := &pb.PredictRequest{Inputs: make([]*pb.Tensor, 0, len(chunk))}
			for _, in := range chunk {
				req.Inputs = append(req.Inputs, &pb.Tensor{Shape: in.Shape, Data: in.Data})
			}
			resp, err := client.Predict(gctx, req)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			outputs := make([]tensor.Tensor, 0, len(resp.Outputs))
			for oi, wire := range resp.Outputs {
				out, err := tensor.New(wire.Shape, wire.Data)
				if err != nil {
					return fmt.Errorf("chunk %d output %d: %w", i, oi, err)
				}
				outputs = append(outputs, out)
			}
			results[i] = outputs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close tears down all worker connections.
func (c *Cluster) Close() error {
	var firstErr error
	for _, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
