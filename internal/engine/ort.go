// Package engine binds the worker to the native inference runtime. The
// real implementation drives ONNX Runtime through its Go bindings; model
// execution never happens in Go.
package engine

import (
	"fmt"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/parallaxml/infergrid/internal/tensor"
)

// Config controls how the ONNX Runtime session is created.
type Config struct {
	// LibraryPath points at the onnxruntime shared library. Empty means
	// the binding's platform default.
	LibraryPath string
	// InputNames and OutputNames must match the model's graph. Defaults
	// are "input" and "output".
	InputNames  []string
	OutputNames []string
	// OutputDims holds the trailing dimensions of each model output
	// (everything after the batch dimension), used to preallocate output
	// tensors.
	OutputDims [][]int64
	// IntraOpThreads caps the runtime's intra-op thread pool. Zero means
	// one thread per core.
	IntraOpThreads int
}

func (c *Config) applyDefaults() {
	if len(c.InputNames) == 0 {
		c.InputNames = []string{"input"}
	}
	if len(c.OutputNames) == 0 {
		c.OutputNames = []string{"output"}
	}
	if c.IntraOpThreads == 0 {
		c.IntraOpThreads = runtime.NumCPU()
	}
}

// ORT wraps an ONNX Runtime session for thread-safe batch inference.
type ORT struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	outputDims [][]int64
}

// New loads the model at modelPath into a new ONNX Runtime session.
func New(modelPath string, cfg Config) (*ORT, error) {
	cfg.applyDefaults()
	if len(cfg.OutputDims) == 0 {
		return nil, fmt.Errorf("output dims are required to preallocate output tensors")
	}
	if len(cfg.OutputDims) != len(cfg.OutputNames) {
		return nil, fmt.Errorf("got %d output dims for %d outputs", len(cfg.OutputDims), len(cfg.OutputNames))
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()
	if err := opts.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
		return nil, fmt.Errorf("failed to set intra-op threads: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		cfg.InputNames,
		cfg.OutputNames,
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference session: %w", err)
	}

	return &ORT{
		session:    session,
		outputDims: cfg.OutputDims,
	}, nil
}

// Infer runs one padded chunk through the session. Every input must carry
// the same leading batch dimension; outputs come back with that batch
// dimension and the configured trailing dims.
func (e *ORT) Infer(inputs []tensor.Tensor) ([]tensor.Tensor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil, fmt.Errorf("inference session is nil")
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("empty input batch")
	}

	batch := int64(inputs[0].Rows())
	if batch == 0 {
		return nil, fmt.Errorf("empty input batch")
	}

	inputTensors := make([]ort.ArbitraryTensor, 0, len(inputs))
	destroy := func(ts []ort.ArbitraryTensor) {
		for _, t := range ts {
			t.Destroy()
		}
	}
	for i, in := range inputs {
		if int64(in.Rows()) != batch {
			destroy(inputTensors)
			return nil, fmt.Errorf("input %d has batch %d, expected %d", i, in.Rows(), batch)
		}
		t, err := ort.NewTensor(ort.NewShape(in.Shape...), in.Data)
		if err != nil {
			destroy(inputTensors)
			return nil, fmt.Errorf("failed to create input tensor %d: %w", i, err)
		}
		inputTensors = append(inputTensors, t)
	}
	defer destroy(inputTensors)

	outputTensors := make([]*ort.Tensor[float32], 0, len(e.outputDims))
	results := make([]tensor.Tensor, 0, len(e.outputDims))
	arbitraryOutputs := make([]ort.ArbitraryTensor, 0, len(e.outputDims))
	for i, dims := range e.outputDims {
		shape := append([]int64{batch}, dims...)
		n := int64(1)
		for _, d := range shape {
			n *= d
		}
		data := make([]float32, n)
		t, err := ort.NewTensor(ort.NewShape(shape...), data)
		if err != nil {
			destroy(arbitraryOutputs)
			return nil, fmt.Errorf("failed to create output tensor %d: %w", i, err)
		}
		outputTensors = append(outputTensors, t)
		arbitraryOutputs = append(arbitraryOutputs, t)
		results = append(results, tensor.Tensor{Shape: shape, Data: data})
	}
	defer destroy(arbitraryOutputs)

	if err := e.session.Run(inputTensors, arbitraryOutputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	for i, t := range outputTensors {
		results[i].Data = append([]float32(nil), t.GetData()...)
	}
	return results, nil
}

// Close releases the session and the runtime environment.
func (e *ORT) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		err := e.session.Destroy()
		e.session = nil
		if err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	}
	return ort.DestroyEnvironment()
}

// Ensure ORT implements Engine at compile time
var _ Engine = (*ORT)(nil)
