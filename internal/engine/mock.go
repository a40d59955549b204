package engine

import (
	"fmt"

	"github.com/parallaxml/infergrid/internal/tensor"
)

// Mock is a mock implementation of Engine for testing. It returns
// deterministic dummy rows without requiring the onnxruntime shared
// library.
type Mock struct {
	// OutputDims holds the trailing dims of each fabricated output.
	OutputDims [][]int64
	// RowValue fills every element of every output row.
	RowValue float32
	// Echo, when set, makes the first output copy the first input's rows
	// instead of filling with RowValue. The input rows are truncated or
	// zero-extended to the first output's row size.
	Echo bool
	// ShouldError if true, Infer will return an error
	ShouldError bool
	// ErrorMessage is the error message to return when ShouldError is true
	ErrorMessage string
	// CallCount tracks the number of times Infer was called
	CallCount int
	// Batches records the leading dimension of each call's first input.
	Batches []int
}

// NewMock creates a Mock with a single [*, 4] output filled with 0.5.
func NewMock() *Mock {
	return &Mock{
		OutputDims: [][]int64{{4}},
		RowValue:   0.5,
	}
}

// Infer fabricates one output per configured output shape, with the same
// batch dimension as the inputs.
func (m *Mock) Infer(inputs []tensor.Tensor) ([]tensor.Tensor, error) {
	m.CallCount++

	if m.ShouldError {
		if m.ErrorMessage != "" {
			return nil, fmt.Errorf("%s", m.ErrorMessage)
		}
		return nil, fmt.Errorf("mock inference error")
	}
	if len(inputs) == 0 || inputs[0].Rows() == 0 {
		return nil, fmt.Errorf("empty input batch")
	}

	batch := inputs[0].Rows()
	for i, in := range inputs {
		if in.Rows() != batch {
			return nil, fmt.Errorf("input %d has batch %d, expected %d", i, in.Rows(), batch)
		}
	}
	m.Batches = append(m.Batches, batch)

	outputs := make([]tensor.Tensor, 0, len(m.OutputDims))
	for oi, dims := range m.OutputDims {
		shape := append([]int64{int64(batch)}, dims...)
		out := tensor.Zeros(shape...)
		for r := 0; r < batch; r++ {
			row := out.Row(r)
			if m.Echo && oi == 0 {
				copy(row, inputs[0].Row(r))
			} else {
				for i := range row {
					row[i] = m.RowValue
				}
			}
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Close is a no-op for the mock implementation
func (m *Mock) Close() error {
	return nil
}

// SetError configures the mock to return an error on the next Infer call
func (m *Mock) SetError(msg string) {
	m.ShouldError = true
	m.ErrorMessage = msg
}

// Ensure Mock implements Engine at compile time
var _ Engine = (*Mock)(nil)
