package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parallaxml/infergrid/internal/shards"
	"github.com/parallaxml/infergrid/internal/tensor"
)

func vectors(n, width int, base float32) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		row := make([]float32, width)
		for j := range row {
			row[j] = base + float32(i*width+j)
		}
		out[i] = row
	}
	return out
}

func TestSetColumnValidation(t *testing.T) {
	tab := New([]int{2, 3})
	require.Equal(t, 5, tab.Rows())

	assert.Error(t, tab.SetColumn("feature", vectors(4, 2, 0)))

	ragged := vectors(5, 2, 0)
	ragged[3] = []float32{1}
	assert.Error(t, tab.SetColumn("feature", ragged))

	require.NoError(t, tab.SetColumn("feature", vectors(5, 2, 0)))
	assert.Equal(t, []string{"feature"}, tab.Columns())
}

func TestToShardsPartitioning(t *testing.T) {
	tab := New([]int{2, 3})
	require.NoError(t, tab.SetColumn("feature", vectors(5, 2, 0)))

	s, err := tab.ToShards([]string{"feature"})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	assert.Equal(t, []int64{2, 2}, s.Parts[0].X[0].Shape)
	assert.Equal(t, []int64{3, 2}, s.Parts[1].X[0].Shape)
	// Partition 1 starts at global row 2.
	assert.Equal(t, []float32{4, 5}, s.Parts[1].X[0].Row(0))
}

func TestToShardsUnknownColumn(t *testing.T) {
	tab := New([]int{1})
	require.NoError(t, tab.SetColumn("feature", vectors(1, 2, 0)))

	_, err := tab.ToShards([]string{"nope"})
	assert.Error(t, err)

	_, err = tab.ToShards(nil)
	assert.Error(t, err)
}

func TestWithPrediction(t *testing.T) {
	tab := New([]int{2, 1})
	require.NoError(t, tab.SetColumn("feature", vectors(3, 2, 0)))

	p0, err := tensor.New([]int64{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	p1, err := tensor.New([]int64{1, 3}, []float32{7, 8, 9})
	require.NoError(t, err)
	predicted := &shards.Shards{Parts: []shards.Shard{
		{Prediction: []tensor.Tensor{p0}},
		{Prediction: []tensor.Tensor{p1}},
	}}

	out, err := tab.WithPrediction(predicted)
	require.NoError(t, err)

	col, err := out.Column(PredictionColumn)
	require.NoError(t, err)
	require.Len(t, col, 3)
	assert.Equal(t, []float32{4, 5, 6}, col[1])
	assert.Equal(t, []float32{7, 8, 9}, col[2])
	assert.Equal(t, tab.PartitionSizes(), out.PartitionSizes())

	// The original feature column survives.
	feat, err := out.Column("feature")
	require.NoError(t, err)
	assert.Len(t, feat, 3)
}

func TestWithPredictionRowMismatch(t *testing.T) {
	tab := New([]int{2})
	require.NoError(t, tab.SetColumn("feature", vectors(2, 2, 0)))

	p, err := tensor.New([]int64{1, 3}, []float32{1, 2, 3})
	require.NoError(t, err)
	predicted := &shards.Shards{Parts: []shards.Shard{{Prediction: []tensor.Tensor{p}}}}

	_, err = tab.WithPrediction(predicted)
	assert.ErrorContains(t, err, "prediction has 1 rows")
}
