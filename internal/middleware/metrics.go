package middleware

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/parallaxml/infergrid/internal/metrics"
)

// UnaryMetricsInterceptor observes per-call latency on the worker's gRPC
// surface. The method label is the bare method name ("Predict"), not the
// full proto path, so dashboards line up with the chunk metrics the handler
// records.
func UnaryMetricsInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		metrics.RecordGRPCLatency(methodName(info.FullMethod), statusCode(err), time.Since(start).Seconds())
		return resp, err
	}
}

// methodName strips the service path from a full gRPC method name.
func methodName(fullMethod string) string {
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[i+1:]
	}
	return fullMethod
}

func statusCode(err error) string {
	if err == nil {
		return "OK"
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return "Unknown"
}
