// Package table models the tabular distributed dataset input: named
// float32 vector columns with explicit partition boundaries. Each
// partition maps onto one shard for prediction, and predictions come back
// as an ordinary column.
package table

import (
	"fmt"

	"github.com/parallaxml/infergrid/internal/shards"
	"github.com/parallaxml/infergrid/internal/tensor"
)

// PredictionColumn is the name of the column WithPrediction attaches.
const PredictionColumn = "prediction"

// Table is a partitioned table of float32 vector columns. Every column
// holds one vector per row; partition i spans sizes[i] consecutive rows.
type Table struct {
	columns map[string][][]float32
	order   []string
	sizes   []int
}

// New creates an empty table with the given partition sizes.
func New(partitionSizes []int) *Table {
	return &Table{
		columns: make(map[string][][]float32),
		sizes:   append([]int(nil), partitionSizes...),
	}
}

// Rows returns the total row count.
func (t *Table) Rows() int {
	n := 0
	for _, s := range t.sizes {
		n += s
	}
	return n
}

// Partitions returns the number of partitions.
func (t *Table) Partitions() int {
	return len(t.sizes)
}

// PartitionSizes returns a copy of the per-partition row counts.
func (t *Table) PartitionSizes() []int {
	return append([]int(nil), t.sizes...)
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// SetColumn installs a column. The value count must match the table's row
// count and every vector must have the same width.
func (t *Table) SetColumn(name string, values [][]float32) error {
	if len(values) != t.Rows() {
		return fmt.Errorf("column %s has %d values for %d rows", name, len(values), t.Rows())
	}
	for i, v := range values {
		if len(v) != len(values[0]) {
			return fmt.Errorf("column %s row %d has width %d, expected %d", name, i, len(v), len(values[0]))
		}
	}
	if _, exists := t.columns[name]; !exists {
		t.order = append(t.order, name)
	}
	t.columns[name] = values
	return nil
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([][]float32, error) {
	v, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("table has no column %s", name)
	}
	return v, nil
}

// ToShards converts the named feature columns into a sharded dataset, one
// shard per partition, one feature tensor per column. Tensors are shaped
// [rows, width].
func (t *Table) ToShards(featureCols []string) (*shards.Shards, error) {
	if len(featureCols) == 0 {
		return nil, fmt.Errorf("at least one feature column is required")
	}
	cols := make([][][]float32, 0, len(featureCols))
	for _, name := range featureCols {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}

	out := &shards.Shards{Parts: make([]shards.Shard, 0, len(t.sizes))}
	off := 0
	for _, size := range t.sizes {
		shard := shards.Shard{X: make([]tensor.Tensor, 0, len(cols))}
		for ci, col := range cols {
			width := 0
			if len(col) > 0 {
				width = len(col[0])
			}
			data := make([]float32, 0, size*width)
			for r := off; r < off+size; r++ {
				data = append(data, col[r]...)
			}
			x, err := tensor.New([]int64{int64(size), int64(width)}, data)
			if err != nil {
				return nil, fmt.Errorf("feature column %s: %w", featureCols[ci], err)
			}
			shard.X = append(shard.X, x)
		}
		out.Parts = append(out.Parts, shard)
		off += size
	}
	return out, nil
}

// WithPrediction returns a copy of the table with a prediction column
// assembled from the per-shard first outputs. The shard partitioning must
// match the table's.
func (t *Table) WithPrediction(predicted *shards.Shards) (*Table, error) {
	if predicted.Len() != len(t.sizes) {
		return nil, fmt.Errorf("got predictions for %d partitions, table has %d", predicted.Len(), len(t.sizes))
	}
	values := make([][]float32, 0, t.Rows())
	for i, p := range predicted.Parts {
		if len(p.Prediction) == 0 {
			return nil, fmt.Errorf("shard %d carries no prediction", i)
		}
		pred := p.Prediction[0]
		if pred.Rows() != t.sizes[i] {
			return nil, fmt.Errorf("shard %d prediction has %d rows, partition has %d", i, pred.Rows(), t.sizes[i])
		}
		for r := 0; r < pred.Rows(); r++ {
			values = append(values, append([]float32(nil), pred.Row(r)...))
		}
	}

	out := New(t.sizes)
	for _, name := range t.order {
		if err := out.SetColumn(name, t.columns[name]); err != nil {
			return nil, err
		}
	}
	if err := out.SetColumn(PredictionColumn, values); err != nil {
		return nil, err
	}
	return out, nil
}
