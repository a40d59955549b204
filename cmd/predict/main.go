// cmd/predict/main.go
//
// Driver for one-off distributed predictions: reads a raw float32 tensor,
// fans it out over the worker fleet and writes the prediction back as raw
// float32.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parallaxml/infergrid/internal/cluster"
	"github.com/parallaxml/infergrid/internal/estimator"
	"github.com/parallaxml/infergrid/internal/tensor"
)

func main() {
	modelPath := flag.String("model", "", "Path to the model IR xml file (required)")
	batchSize := flag.Int("batch", 0, "Model batch size (default: read from the IR xml)")
	workers := flag.String("workers", "", "Comma-separated worker addresses (default: discover via Redis)")
	redisAddr := flag.String("redis", "", "Redis address for worker discovery (default: localhost:6379)")
	inputPath := flag.String("input", "", "Raw little-endian float32 input file (required)")
	shapeArg := flag.String("shape", "", "Comma-separated input shape, e.g. 22,3,224,224 (required)")
	outputPath := flag.String("output", "", "Where to write the raw float32 prediction (default: stdout summary only)")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall prediction timeout")
	flag.Parse()

	if *modelPath == "" || *inputPath == "" || *shapeArg == "" {
		flag.Usage()
		os.Exit(2)
	}

	shape, err := parseShape(*shapeArg)
	if err != nil {
		log.Fatalf("Invalid -shape: %v", err)
	}

	x, err := readTensor(*inputPath, shape)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	addrs, err := workerAddrs(ctx, *workers, *redisAddr)
	if err != nil {
		log.Fatalf("Failed to resolve worker fleet: %v", err)
	}
	log.Printf("Using %d worker(s): %s", len(addrs), strings.Join(addrs, ", "))

	fleet, err := cluster.Dial(ctx, addrs, cluster.Options{
		MaxMessageBytes: 256 << 20,
	})
	if err != nil {
		log.Fatalf("Failed to dial workers: %v", err)
	}
	defer fleet.Close()

	est, err := estimator.FromOpenVINO(fleet, estimator.Options{
		ModelPath: *modelPath,
		BatchSize: *batchSize,
	})
	if err != nil {
		log.Fatalf("Failed to build estimator: %v", err)
	}
	log.Printf("Model %s, batch size %d", est.ModelPath(), est.BatchSize())

	start := time.Now()
	y, err := est.PredictTensor(ctx, x)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}
	log.Printf("Predicted %d rows in %s, output shape %v", y.Rows(), time.Since(start), y.Shape)

	if *outputPath != "" {
		if err := writeTensor(*outputPath, y); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		log.Printf("Wrote %s", *outputPath)
	}
}

func parseShape(arg string) ([]int64, error) {
	parts := strings.Split(arg, ",")
	shape := make([]int64, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dim %q is not an integer", p)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

func workerAddrs(ctx context.Context, workers, redisAddr string) ([]string, error) {
	if workers != "" {
		var addrs []string
		for _, a := range strings.Split(workers, ",") {
			if a = strings.TrimSpace(a); a != "" {
				addrs = append(addrs, a)
			}
		}
		return addrs, nil
	}
	registry, err := cluster.NewRegistry(redisAddr)
	if err != nil {
		return nil, err
	}
	defer registry.Close()
	addrs, err := registry.Discover(ctx)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no live workers registered")
	}
	return addrs, nil
}

func readTensor(path string, shape []int64) (tensor.Tensor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tensor.Tensor{}, err
	}
	if len(raw)%4 != 0 {
		return tensor.Tensor{}, fmt.Errorf("%s is not a float32 file: %d bytes", path, len(raw))
	}
	data := make([]float32, len(raw)/4)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return tensor.New(shape, data)
}

func writeTensor(path string, t tensor.Tensor) error {
	raw := make([]byte, len(t.Data)*4)
	for i, v := range t.Data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	return os.WriteFile(path, raw, 0o644)
}
