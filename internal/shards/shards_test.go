package shards

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parallaxml/infergrid/internal/tensor"
)

func TestNewAndRows(t *testing.T) {
	s := New(tensor.Zeros(4, 3), tensor.Zeros(2, 3))

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 4, s.Parts[0].Rows())
	assert.Equal(t, 2, s.Parts[1].Rows())
	assert.Equal(t, 0, Shard{}.Rows())
}

func TestTransform(t *testing.T) {
	s := New(tensor.Zeros(4, 3), tensor.Zeros(2, 3))

	doubled, err := s.Transform(func(p Shard) (Shard, error) {
		x := p.X[0]
		data := make([]float32, len(x.Data))
		for i, v := range x.Data {
			data[i] = 2 * v
		}
		nx, err := tensor.New(x.Shape, data)
		if err != nil {
			return Shard{}, err
		}
		return Shard{X: []tensor.Tensor{nx}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, s.Len(), doubled.Len())
	assert.Equal(t, 4, doubled.Parts[0].Rows())
}

func TestTransformPropagatesError(t *testing.T) {
	s := New(tensor.Zeros(1, 1))

	_, err := s.Transform(func(Shard) (Shard, error) {
		return Shard{}, fmt.Errorf("boom")
	})
	assert.ErrorContains(t, err, "boom")
}
