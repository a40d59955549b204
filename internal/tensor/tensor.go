// Package tensor implements the dense float32 n-d array the estimator and
// workers exchange, with the row-wise reshaping helpers the batching core
// needs: split, concat, head and pad along the leading (batch) dimension.
package tensor

import "fmt"

// Tensor is a dense float32 array in row-major order. Shape[0] is the
// batch dimension.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// New validates shape against the data length and returns a Tensor.
func New(shape []int64, data []float32) (Tensor, error) {
	if len(shape) == 0 {
		return Tensor{}, fmt.Errorf("tensor shape cannot be empty")
	}
	n := int64(1)
	for i, d := range shape {
		if d < 0 {
			return Tensor{}, fmt.Errorf("tensor dim %d is negative: %d", i, d)
		}
		n *= d
	}
	if n != int64(len(data)) {
		return Tensor{}, fmt.Errorf("tensor data length %d does not match shape %v (want %d)", len(data), shape, n)
	}
	return Tensor{Shape: shape, Data: data}, nil
}

// Zeros returns a zero-filled tensor of the given shape.
func Zeros(shape ...int64) Tensor {
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return Tensor{Shape: shape, Data: make([]float32, n)}
}

// Rows returns the leading (batch) dimension.
func (t Tensor) Rows() int {
	if len(t.Shape) == 0 {
		return 0
	}
	return int(t.Shape[0])
}

// RowSize returns the number of elements in one row, i.e. the product of
// the trailing dimensions.
func (t Tensor) RowSize() int {
	n := int64(1)
	for _, d := range t.Shape[1:] {
		n *= d
	}
	return int(n)
}

// Numel returns the total number of elements.
func (t Tensor) Numel() int {
	return t.Rows() * t.RowSize()
}

// Row returns the i-th row as a flat slice. The slice aliases the tensor's
// backing array.
func (t Tensor) Row(i int) []float32 {
	rs := t.RowSize()
	return t.Data[i*rs : (i+1)*rs]
}

// Head returns the first rows rows of t. The result shares t's backing
// array.
func (t Tensor) Head(rows int) Tensor {
	shape := append([]int64{int64(rows)}, t.Shape[1:]...)
	return Tensor{Shape: shape, Data: t.Data[:rows*t.RowSize()]}
}

// PadRows returns t zero-padded along the leading dimension up to rows.
// If t already has rows rows it is returned unchanged.
func (t Tensor) PadRows(rows int) Tensor {
	if t.Rows() >= rows {
		return t
	}
	shape := append([]int64{int64(rows)}, t.Shape[1:]...)
	data := make([]float32, rows*t.RowSize())
	copy(data, t.Data)
	return Tensor{Shape: shape, Data: data}
}

// SplitN splits t along the leading dimension into n near-equal parts: the
// first rows%n parts carry one extra row. Parts share t's backing array.
func (t Tensor) SplitN(n int) ([]Tensor, error) {
	if n <= 0 {
		return nil, fmt.Errorf("split count must be positive, got %d", n)
	}
	rows := t.Rows()
	if n > rows {
		return nil, fmt.Errorf("cannot split %d rows into %d parts", rows, n)
	}
	base := rows / n
	extra := rows % n
	rs := t.RowSize()
	parts := make([]Tensor, 0, n)
	off := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		shape := append([]int64{int64(size)}, t.Shape[1:]...)
		parts = append(parts, Tensor{
			Shape: shape,
			Data:  t.Data[off*rs : (off+size)*rs],
		})
		off += size
	}
	return parts, nil
}

// Concat stacks the given tensors along the leading dimension. All tensors
// must share trailing dimensions.
func Concat(parts []Tensor) (Tensor, error) {
	if len(parts) == 0 {
		return Tensor{}, fmt.Errorf("cannot concat zero tensors")
	}
	rows := 0
	rs := parts[0].RowSize()
	for i, p := range parts {
		if p.RowSize() != rs {
			return Tensor{}, fmt.Errorf("tensor %d has row size %d, expected %d", i, p.RowSize(), rs)
		}
		rows += p.Rows()
	}
	shape := append([]int64{int64(rows)}, parts[0].Shape[1:]...)
	data := make([]float32, 0, rows*rs)
	for _, p := range parts {
		data = append(data, p.Data...)
	}
	return Tensor{Shape: shape, Data: data}, nil
}

// Equal reports whether two tensors have identical shape and data.
func (t Tensor) Equal(o Tensor) bool {
	if len(t.Shape) != len(o.Shape) || len(t.Data) != len(o.Data) {
		return false
	}
	for i, d := range t.Shape {
		if o.Shape[i] != d {
			return false
		}
	}
	for i, v := range t.Data {
		if o.Data[i] != v {
			return false
		}
	}
	return true
}
