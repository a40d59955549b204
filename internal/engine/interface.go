package engine

import "github.com/parallaxml/infergrid/internal/tensor"

// Engine is the native inference-engine binding. Infer takes one tensor
// per model input, all sharing the same leading batch dimension, and
// returns one tensor per model output with that same batch dimension.
// This abstraction allows for easy mocking in tests and swapping
// implementations.
type Engine interface {
	Infer(inputs []tensor.Tensor) ([]tensor.Tensor, error)

	// Close releases any resources held by the engine.
	Close() error
}
