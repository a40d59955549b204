// cmd/worker/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/parallaxml/infergrid/internal/cluster"
	"github.com/parallaxml/infergrid/internal/config"
	"github.com/parallaxml/infergrid/internal/engine"
	"github.com/parallaxml/infergrid/internal/handler"
	"github.com/parallaxml/infergrid/internal/ir"
	"github.com/parallaxml/infergrid/internal/metrics"
	"github.com/parallaxml/infergrid/internal/middleware"
	pb "github.com/parallaxml/infergrid/proto/inferpb"
)

const serviceName = "infergrid-worker"

const (
	heartbeatInterval = 5 * time.Second
	heartbeatTTL      = 15 * time.Second
)

func main() {
	port := flag.Int("port", 0, "gRPC server port (default: 50051)")
	modelPath := flag.String("model", "", "Path to the model IR xml file (default: model.xml)")
	batchSize := flag.Int("batch", 0, "Model batch size (default: read from the IR xml)")
	redisAddr := flag.String("redis", "", "Redis address for worker registration (default: localhost:6379)")
	metricsPort := flag.Int("metrics", 0, "Prometheus metrics port (default: 9100)")
	configFile := flag.String("config", "", "Path to config file (optional)")
	useMock := flag.Bool("mock", false, "Use mock inference engine (for testing)")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags win over file and environment.
	if *port > 0 {
		cfg.Port = *port
	}
	if *modelPath != "" {
		cfg.Model = *modelPath
	}
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}
	if *redisAddr != "" {
		cfg.Redis = *redisAddr
	}
	if *metricsPort > 0 {
		cfg.MetricsPort = *metricsPort
	}
	if *useMock {
		cfg.UseMockEngine = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting %s...", serviceName)
	log.Printf("Configuration: port=%d, model=%s, batch=%d, redis=%s, metrics=%d, otel=%v",
		cfg.Port, cfg.Model, cfg.BatchSize, cfg.Redis, cfg.MetricsPort, cfg.OTELEnabled)

	// Initialize OpenTelemetry tracer
	var tracerShutdown func(context.Context) error
	if cfg.OTELEnabled {
		tracerShutdown, err = initTracer(cfg.OTELEndpoint)
		if err != nil {
			log.Printf("Warning: Failed to initialize tracer: %v", err)
		} else {
			log.Printf("OpenTelemetry tracing enabled (endpoint: %s)", cfg.OTELEndpoint)
		}
	}

	// The model's fixed batch size: explicit config, or the default the
	// IR description was frozen with.
	modelBatch := cfg.BatchSize
	if modelBatch == 0 {
		modelBatch, err = ir.DefaultBatchSize(cfg.Model)
		if err != nil {
			log.Fatalf("Failed to read batch size from model description: %v", err)
		}
		log.Printf("Using default batch size %d from %s", modelBatch, cfg.Model)
	}

	// Load inference engine
	var eng engine.Engine
	if cfg.UseMockEngine {
		log.Printf("Using mock inference engine")
		eng = engine.NewMock()
	} else {
		weightPath, err := ir.WeightPath(cfg.Model)
		if err != nil {
			log.Fatalf("Failed to derive weight path: %v", err)
		}
		if _, err := os.Stat(weightPath); err != nil {
			log.Fatalf("Model weights not found at %s: %v", weightPath, err)
		}
		log.Printf("Loading model from %s (weights: %s)...", cfg.Model, weightPath)
		eng, err = engine.New(cfg.Model, engine.Config{
			LibraryPath: cfg.OrtLibrary,
			InputNames:  cfg.InputNames,
			OutputNames: cfg.OutputNames,
			OutputDims:  cfg.OutputDims,
		})
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
		log.Printf("Model loaded successfully")
	}
	defer eng.Close()

	// Register in the worker fleet (optional)
	registerCtx, cancelRegister := context.WithCancel(context.Background())
	defer cancelRegister()
	var registry *cluster.Registry
	if cfg.Redis != "" {
		log.Printf("Connecting to Redis at %s...", cfg.Redis)
		registry, err = cluster.NewRegistry(cfg.Redis)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v (continuing unregistered)", err)
		} else {
			defer registry.Close()
			workerAddr := advertiseAddr(cfg.Port)
			if err := registry.Register(registerCtx, workerAddr, heartbeatTTL); err != nil {
				log.Printf("Warning: Failed to register worker: %v", err)
			} else {
				registry.StartHeartbeat(registerCtx, workerAddr, heartbeatInterval, heartbeatTTL)
				defer registry.Deregister(context.Background(), workerAddr)
				log.Printf("Registered worker as %s", workerAddr)
			}
		}
	}

	// Create gRPC health server
	healthServer := health.NewServer()

	// Start HTTP server for metrics and health checks
	httpServer := startHTTPServer(cfg.MetricsPort, healthServer)

	// Build interceptor chain
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.UnaryRequestIDInterceptor(),
		middleware.UnaryMetricsInterceptor(),
	}
	if cfg.OTELEnabled {
		interceptors = append(interceptors, otelgrpc.UnaryServerInterceptor())
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors...),
	)

	// Register the inference runner service
	h := handler.New(eng, modelBatch)
	pb.RegisterInferenceRunnerServer(grpcServer, h)

	// Register health service
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Enable server reflection for debugging
	reflection.Register(grpcServer)

	addr := fmt.Sprintf(":%d", cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", addr, err)
	}

	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING) // Overall health
	metrics.SetHealthy()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down gracefully...", sig)

		healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		metrics.SetUnhealthy()

		// Drop out of the fleet first so the driver stops routing chunks
		// here.
		cancelRegister()
		if registry != nil {
			registry.Deregister(context.Background(), advertiseAddr(cfg.Port))
		}

		// Give time for load balancers to detect unhealthy status
		time.Sleep(5 * time.Second)

		grpcServer.GracefulStop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(ctx)

		if tracerShutdown != nil {
			tracerShutdown(ctx)
		}
	}()

	log.Printf("gRPC server listening on %s", addr)
	log.Printf("%s is ready to accept chunks", serviceName)

	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}

	log.Printf("Worker shutdown complete")
}

func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadWithConfigFile(configFile)
	}
	return config.Load()
}

// advertiseAddr is the address other processes reach this worker at.
func advertiseAddr(port int) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", strings.ToLower(host), port)
}

func startHTTPServer(port int, healthServer *health.Server) *http.Server {
	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp, err := healthServer.Check(r.Context(), &healthpb.HealthCheckRequest{})
		if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Service Unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Readiness check (same as healthz for now)
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		resp, err := healthServer.Check(r.Context(), &healthpb.HealthCheckRequest{})
		if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Not Ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Ready"))
	})

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s (metrics, health)", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	return server
}

func initTracer(endpoint string) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	var err error

	if endpoint != "" {
		// For now, use stdout exporter as OTLP requires more setup
		// In production, use: otlptrace.New(ctx, otlptracegrpc.NewClient(...))
		log.Printf("Note: Using stdout trace exporter (OTLP endpoint: %s)", endpoint)
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	} else {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
