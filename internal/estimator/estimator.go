// Package estimator is the inference-only adapter over a pre-loaded
// OpenVINO-format model and a fleet of inference workers. Its one real job
// is batch reshaping: split inputs into chunks no larger than the model's
// fixed batch size, run the chunks on the fleet, trim the padding the
// workers added, and put the results back in the input's shape.
package estimator

import (
	"context"
	"fmt"

	"github.com/parallaxml/infergrid/internal/ir"
	"github.com/parallaxml/infergrid/internal/shards"
	"github.com/parallaxml/infergrid/internal/table"
	"github.com/parallaxml/infergrid/internal/tensor"
)

// ChunkRunner is the distributed-predict primitive the estimator delegates
// to. cluster.Cluster implements it; tests use local fakes.
type ChunkRunner interface {
	Predict(ctx context.Context, chunks [][]tensor.Tensor) ([][]tensor.Tensor, error)
}

// Options configures FromOpenVINO.
type Options struct {
	// ModelPath is the file path to the OpenVINO IR xml file.
	ModelPath string
	// BatchSize is the model batch size. Zero means "read the default
	// from the model description".
	BatchSize int
}

// Estimator runs batched prediction for a fixed-batch model. It supports
// nothing but prediction; every training-flavored operation declines with
// ErrUnsupported.
type Estimator struct {
	runner     ChunkRunner
	modelPath  string
	weightPath string
	batchSize  int
}

// FromOpenVINO builds an estimator for the IR model at opts.ModelPath,
// running chunks on the given runner.
func FromOpenVINO(runner ChunkRunner, opts Options) (*Estimator, error) {
	if runner == nil {
		return nil, fmt.Errorf("a chunk runner is required")
	}
	e := &Estimator{runner: runner}
	if err := e.Load(opts.ModelPath, opts.BatchSize); err != nil {
		return nil, err
	}
	return e, nil
}

// Load points the estimator at a (new) IR model. A batch size of zero
// reads the default from the model description xml.
func (e *Estimator) Load(modelPath string, batchSize int) error {
	if batchSize == 0 {
		var err error
		batchSize, err = ir.DefaultBatchSize(modelPath)
		if err != nil {
			return err
		}
	}
	if batchSize < 0 {
		return fmt.Errorf("batch size cannot be negative, got %d", batchSize)
	}
	weightPath, err := ir.WeightPath(modelPath)
	if err != nil {
		return err
	}
	e.modelPath = modelPath
	e.weightPath = weightPath
	e.batchSize = batchSize
	return nil
}

// BatchSize returns the model's fixed batch size.
func (e *Estimator) BatchSize() int {
	return e.batchSize
}

// ModelPath returns the IR xml path the estimator was loaded from.
func (e *Estimator) ModelPath() string {
	return e.modelPath
}

// WeightPath returns the derived .bin path.
func (e *Estimator) WeightPath() string {
	return e.weightPath
}

// Predict dispatches on the input container type: a single tensor, a list
// of tensors (multi-input models), a sharded dataset or a table. The
// result has the same container type as the input. For the table case use
// PredictTable, which also takes the feature column names.
func (e *Estimator) Predict(ctx context.Context, data interface{}) (interface{}, error) {
	switch d := data.(type) {
	case tensor.Tensor:
		outs, err := e.predictDense(ctx, []tensor.Tensor{d})
		if err != nil {
			return nil, err
		}
		return outs[0], nil
	case []tensor.Tensor:
		outs, err := e.predictDense(ctx, d)
		if err != nil {
			return nil, err
		}
		if len(outs) == 1 {
			return outs[0], nil
		}
		return outs, nil
	case *shards.Shards:
		return e.PredictShards(ctx, d)
	case *table.Table:
		return nil, fmt.Errorf("tables need feature column names; call PredictTable instead")
	default:
		return nil, fmt.Errorf("only tensors, tensor lists, sharded datasets and tables are supported as input data, got %T", data)
	}
}

// PredictTensor predicts a single dense tensor and returns the first model
// output with the input's row count.
func (e *Estimator) PredictTensor(ctx context.Context, x tensor.Tensor) (tensor.Tensor, error) {
	outs, err := e.predictDense(ctx, []tensor.Tensor{x})
	if err != nil {
		return tensor.Tensor{}, err
	}
	return outs[0], nil
}

// PredictMulti predicts a multi-input list of tensors that share the
// leading dimension, returning one tensor per model output.
func (e *Estimator) PredictMulti(ctx context.Context, xs []tensor.Tensor) ([]tensor.Tensor, error) {
	return e.predictDense(ctx, xs)
}

// predictDense implements the array path: split every input into
// ceil(rows/batch) near-equal chunks, run them, trim each chunk's outputs
// back to the chunk's row count and concatenate.
func (e *Estimator) predictDense(ctx context.Context, xs []tensor.Tensor) ([]tensor.Tensor, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("no input tensors given")
	}
	rows := xs[0].Rows()
	if rows == 0 {
		return nil, fmt.Errorf("input has no rows")
	}
	for _, x := range xs {
		if x.Rows() != rows {
			return nil, fmt.Errorf(
				"the tensors in the input list must all have the same size in the first dimension, got %d and %d",
				rows, x.Rows())
		}
	}

	splitNum := (rows + e.batchSize - 1) / e.batchSize

	// chunks[i] carries the i-th part of every input.
	chunks := make([][]tensor.Tensor, splitNum)
	chunkRows := make([]int, splitNum)
	for _, x := range xs {
		parts, err := x.SplitN(splitNum)
		if err != nil {
			return nil, err
		}
		for i, p := range parts {
			chunks[i] = append(chunks[i], p)
			chunkRows[i] = p.Rows()
		}
	}

	results, err := e.runner.Predict(ctx, chunks)
	if err != nil {
		return nil, err
	}
	return e.reassemble(results, chunkRows)
}

// reassemble trims each chunk's outputs to the chunk's true row count and
// concatenates them per output index.
func (e *Estimator) reassemble(results [][]tensor.Tensor, chunkRows []int) ([]tensor.Tensor, error) {
	if len(results) != len(chunkRows) {
		return nil, fmt.Errorf("got %d chunk results for %d chunks", len(results), len(chunkRows))
	}
	numOutputs := len(results[0])
	if numOutputs == 0 {
		return nil, fmt.Errorf("worker returned no outputs")
	}
	outputs := make([]tensor.Tensor, 0, numOutputs)
	for oi := 0; oi < numOutputs; oi++ {
		parts := make([]tensor.Tensor, 0, len(results))
		for ci, res := range results {
			if len(res) != numOutputs {
				return nil, fmt.Errorf("chunk %d returned %d outputs, expected %d", ci, len(res), numOutputs)
			}
			out := res[oi]
			if out.Rows() < chunkRows[ci] {
				return nil, fmt.Errorf("chunk %d output has %d rows, expected at least %d", ci, out.Rows(), chunkRows[ci])
			}
			parts = append(parts, out.Head(chunkRows[ci]))
		}
		cat, err := tensor.Concat(parts)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, cat)
	}
	return outputs, nil
}

// PredictShards predicts a sharded dataset. Every shard must already fit
// the model batch size; the result keeps the input partitioning, with each
// shard's Prediction trimmed to its row count.
func (e *Estimator) PredictShards(ctx context.Context, s *shards.Shards) (*shards.Shards, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("sharded input is empty")
	}

	chunks := make([][]tensor.Tensor, 0, s.Len())
	chunkRows := make([]int, 0, s.Len())
	for i, p := range s.Parts {
		if len(p.X) == 0 {
			return nil, fmt.Errorf("shard %d carries no feature tensors", i)
		}
		rows := p.Rows()
		if rows == 0 {
			return nil, fmt.Errorf("shard %d has no rows", i)
		}
		if rows > e.batchSize {
			return nil, fmt.Errorf(
				"shard %d has %d rows, which exceeds the model batch size %d; some inputs would be ignored",
				i, rows, e.batchSize)
		}
		for xi, x := range p.X {
			if x.Rows() != rows {
				return nil, fmt.Errorf("shard %d input %d has %d rows, expected %d", i, xi, x.Rows(), rows)
			}
		}
		chunks = append(chunks, p.X)
		chunkRows = append(chunkRows, rows)
	}

	results, err := e.runner.Predict(ctx, chunks)
	if err != nil {
		return nil, err
	}

	out := &shards.Shards{Parts: make([]shards.Shard, 0, s.Len())}
	for i, p := range s.Parts {
		res := results[i]
		trimmed := make([]tensor.Tensor, 0, len(res))
		for oi, o := range res {
			if o.Rows() < chunkRows[i] {
				return nil, fmt.Errorf("shard %d output %d has %d rows, expected at least %d", i, oi, o.Rows(), chunkRows[i])
			}
			trimmed = append(trimmed, o.Head(chunkRows[i]))
		}
		out.Parts = append(out.Parts, shards.Shard{X: p.X, Prediction: trimmed})
	}
	return out, nil
}

// PredictTable predicts a tabular dataset: the named feature columns are
// turned into one shard per partition, predicted, and the result comes
// back as the same table with a prediction column appended. Partitions
// must fit the model batch size.
func (e *Estimator) PredictTable(ctx context.Context, t *table.Table, featureCols []string) (*table.Table, error) {
	if t == nil || t.Rows() == 0 {
		return nil, fmt.Errorf("tabular input is empty")
	}
	s, err := t.ToShards(featureCols)
	if err != nil {
		return nil, err
	}
	predicted, err := e.PredictShards(ctx, s)
	if err != nil {
		return nil, err
	}
	return t.WithPrediction(predicted)
}
