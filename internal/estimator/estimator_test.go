package estimator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parallaxml/infergrid/internal/engine"
	"github.com/parallaxml/infergrid/internal/shards"
	"github.com/parallaxml/infergrid/internal/table"
	"github.com/parallaxml/infergrid/internal/tensor"
)

const testModel = "testdata/resnet_stub.xml" // frozen with batch size 4

// localRunner stands in for the worker fleet: it pads every chunk to the
// model batch size and runs it on a mock engine, exactly like a worker
// would.
type localRunner struct {
	engine    engine.Engine
	batchSize int
	chunkRows [][]int
}

func (r *localRunner) Predict(ctx context.Context, chunks [][]tensor.Tensor) ([][]tensor.Tensor, error) {
	var rows []int
	results := make([][]tensor.Tensor, 0, len(chunks))
	for i, chunk := range chunks {
		if len(chunk) == 0 {
			return nil, fmt.Errorf("chunk %d is empty", i)
		}
		if chunk[0].Rows() > r.batchSize {
			return nil, fmt.Errorf("chunk %d exceeds batch size", i)
		}
		rows = append(rows, chunk[0].Rows())
		padded := make([]tensor.Tensor, 0, len(chunk))
		for _, in := range chunk {
			padded = append(padded, in.PadRows(r.batchSize))
		}
		outs, err := r.engine.Infer(padded)
		if err != nil {
			return nil, err
		}
		results = append(results, outs)
	}
	r.chunkRows = append(r.chunkRows, rows)
	return results, nil
}

func echoEstimator(t *testing.T, width int64) (*Estimator, *localRunner) {
	t.Helper()
	runner := &localRunner{
		engine:    &engine.Mock{OutputDims: [][]int64{{width}}, Echo: true},
		batchSize: 4,
	}
	est, err := FromOpenVINO(runner, Options{ModelPath: testModel})
	require.NoError(t, err)
	require.Equal(t, 4, est.BatchSize())
	return est, runner
}

func rowTensor(t *testing.T, rows, width int) tensor.Tensor {
	t.Helper()
	data := make([]float32, rows*width)
	for i := range data {
		data[i] = float32(i)
	}
	x, err := tensor.New([]int64{int64(rows), int64(width)}, data)
	require.NoError(t, err)
	return x
}

func TestFromOpenVINOReadsBatchSizeFromIR(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	assert.Equal(t, testModel, est.ModelPath())
	assert.Equal(t, "testdata/resnet_stub.bin", est.WeightPath())
	assert.Equal(t, 4, est.BatchSize())
}

func TestFromOpenVINOExplicitBatchSize(t *testing.T) {
	runner := &localRunner{engine: engine.NewMock(), batchSize: 7}
	est, err := FromOpenVINO(runner, Options{ModelPath: testModel, BatchSize: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, est.BatchSize())
}

func TestFromOpenVINOBadModel(t *testing.T) {
	runner := &localRunner{engine: engine.NewMock(), batchSize: 4}
	_, err := FromOpenVINO(runner, Options{ModelPath: "testdata/missing.xml"})
	assert.Error(t, err)

	_, err = FromOpenVINO(nil, Options{ModelPath: testModel})
	assert.Error(t, err)
}

func TestPredictTensorRoundTrip(t *testing.T) {
	est, runner := echoEstimator(t, 3)

	// 22 rows against batch 4: six chunks, the last two one row short.
	x := rowTensor(t, 22, 3)
	y, err := est.PredictTensor(context.Background(), x)
	require.NoError(t, err)

	assert.True(t, y.Equal(x), "echoed prediction should reproduce the input after trimming")
	require.Len(t, runner.chunkRows, 1)
	assert.Equal(t, []int{4, 4, 4, 4, 3, 3}, runner.chunkRows[0])
}

func TestPredictTensorRowCounts(t *testing.T) {
	// Sweep input sizes around and across the batch boundary: every chunk
	// must fit the batch, chunk rows must add up to the input, and the
	// output keeps the input's row count.
	for _, rows := range []int{1, 3, 4, 5, 7, 8, 22, 101} {
		est, runner := echoEstimator(t, 3)

		x := rowTensor(t, rows, 3)
		y, err := est.PredictTensor(context.Background(), x)
		require.NoError(t, err, "rows=%d", rows)
		assert.Equal(t, rows, y.Rows(), "rows=%d", rows)
		assert.True(t, y.Equal(x), "rows=%d", rows)

		require.Len(t, runner.chunkRows, 1, "rows=%d", rows)
		total := 0
		for _, size := range runner.chunkRows[0] {
			assert.Positive(t, size, "rows=%d", rows)
			assert.LessOrEqual(t, size, est.BatchSize(), "rows=%d", rows)
			total += size
		}
		assert.Equal(t, rows, total, "rows=%d", rows)
	}
}

func TestPredictTensorSingleShortChunk(t *testing.T) {
	est, runner := echoEstimator(t, 2)

	x := rowTensor(t, 3, 2)
	y, err := est.PredictTensor(context.Background(), x)
	require.NoError(t, err)

	assert.Equal(t, 3, y.Rows())
	assert.True(t, y.Equal(x))
	assert.Equal(t, [][]int{{3}}, runner.chunkRows)
}

func TestPredictMultiInput(t *testing.T) {
	runner := &localRunner{
		engine:    &engine.Mock{OutputDims: [][]int64{{3}}, Echo: true},
		batchSize: 4,
	}
	est, err := FromOpenVINO(runner, Options{ModelPath: testModel})
	require.NoError(t, err)

	a := rowTensor(t, 5, 3)
	b := rowTensor(t, 5, 2)
	outs, err := est.PredictMulti(context.Background(), []tensor.Tensor{a, b})
	require.NoError(t, err)

	require.Len(t, outs, 1)
	assert.True(t, outs[0].Equal(a), "first output echoes the first input")
	assert.Equal(t, [][]int{{3, 2}}, runner.chunkRows)
}

func TestPredictMultiInputRowMismatch(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	a := rowTensor(t, 5, 3)
	b := rowTensor(t, 6, 3)
	_, err := est.PredictMulti(context.Background(), []tensor.Tensor{a, b})
	assert.ErrorContains(t, err, "same size in the first dimension")
}

func TestPredictShardsKeepsPartitioning(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	s := shards.New(rowTensor(t, 4, 3), rowTensor(t, 2, 3))
	out, err := est.PredictShards(context.Background(), s)
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	require.Len(t, out.Parts[0].Prediction, 1)
	assert.Equal(t, 4, out.Parts[0].Prediction[0].Rows())
	assert.Equal(t, 2, out.Parts[1].Prediction[0].Rows())
	assert.True(t, out.Parts[0].Prediction[0].Equal(s.Parts[0].X[0]))
	assert.True(t, out.Parts[1].Prediction[0].Equal(s.Parts[1].X[0]))
}

func TestPredictShardsRejectsOversizedShard(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	s := shards.New(rowTensor(t, 5, 3))
	_, err := est.PredictShards(context.Background(), s)
	assert.ErrorContains(t, err, "exceeds the model batch size")
}

func TestPredictShardsEmpty(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	_, err := est.PredictShards(context.Background(), &shards.Shards{})
	assert.Error(t, err)
}

func makeTable(t *testing.T, partitionSizes []int, width int) *table.Table {
	t.Helper()
	tab := table.New(partitionSizes)
	rows := 0
	for _, s := range partitionSizes {
		rows += s
	}
	values := make([][]float32, rows)
	for i := range values {
		row := make([]float32, width)
		for j := range row {
			row[j] = float32(i*width + j)
		}
		values[i] = row
	}
	require.NoError(t, tab.SetColumn("feature", values))
	return tab
}

func TestPredictTable(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	// 18 rows in partitions of at most 4 fit the model batch size.
	tab := makeTable(t, []int{4, 4, 4, 3, 3}, 3)
	out, err := est.PredictTable(context.Background(), tab, []string{"feature"})
	require.NoError(t, err)

	col, err := out.Column(table.PredictionColumn)
	require.NoError(t, err)
	require.Len(t, col, 18)

	feat, err := tab.Column("feature")
	require.NoError(t, err)
	assert.Equal(t, feat, col, "echoed predictions reproduce the feature rows")
	assert.Equal(t, tab.PartitionSizes(), out.PartitionSizes())
}

func TestPredictTableRejectsOversizedPartitions(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	// 18 rows over 3 partitions means 6-row shards against batch size 4.
	tab := makeTable(t, []int{6, 6, 6}, 3)
	_, err := est.PredictTable(context.Background(), tab, []string{"feature"})
	assert.ErrorContains(t, err, "exceeds the model batch size")
}

func TestPredictDispatch(t *testing.T) {
	est, _ := echoEstimator(t, 3)
	ctx := context.Background()

	x := rowTensor(t, 2, 3)
	res, err := est.Predict(ctx, x)
	require.NoError(t, err)
	_, ok := res.(tensor.Tensor)
	assert.True(t, ok)

	res, err = est.Predict(ctx, []tensor.Tensor{x})
	require.NoError(t, err)
	_, ok = res.(tensor.Tensor)
	assert.True(t, ok)

	res, err = est.Predict(ctx, shards.New(x))
	require.NoError(t, err)
	_, ok = res.(*shards.Shards)
	assert.True(t, ok)

	_, err = est.Predict(ctx, makeTable(t, []int{2}, 3))
	assert.ErrorContains(t, err, "PredictTable")

	_, err = est.Predict(ctx, 42)
	assert.ErrorContains(t, err, "supported as input data")
}

func TestLoadSwitchesModel(t *testing.T) {
	est, _ := echoEstimator(t, 3)

	require.NoError(t, est.Load(testModel, 9))
	assert.Equal(t, 9, est.BatchSize())

	assert.Error(t, est.Load("testdata/missing.xml", 0))
	assert.Error(t, est.Load(testModel, -1))
}

func TestRunnerErrorPropagates(t *testing.T) {
	mock := engine.NewMock()
	mock.SetError("device lost")
	runner := &localRunner{engine: mock, batchSize: 4}
	est, err := FromOpenVINO(runner, Options{ModelPath: testModel})
	require.NoError(t, err)

	_, err = est.PredictTensor(context.Background(), rowTensor(t, 2, 3))
	assert.ErrorContains(t, err, "device lost")
}

func TestUnsupportedOperations(t *testing.T) {
	est, _ := echoEstimator(t, 3)
	ctx := context.Background()

	checks := []error{
		est.Fit(ctx, nil, 1),
		est.Evaluate(ctx, nil),
		est.Save("/tmp/model"),
		est.SetTensorBoard("/tmp/logs", "app"),
		est.ClearGradientClipping(),
		est.SetConstantGradientClipping(-1, 1),
		est.SetL2NormGradientClipping(1.0),
		est.LoadCheckpoint("/tmp/ckpt", 1),
	}
	for i, err := range checks {
		assert.ErrorIs(t, err, ErrUnsupported, "check %d", i)
	}

	_, err := est.GetModel()
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = est.TrainSummary("loss")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = est.ValidationSummary("loss")
	assert.ErrorIs(t, err, ErrUnsupported)

	// The sentinel stays distinguishable from ordinary failures.
	assert.False(t, errors.Is(fmt.Errorf("boom"), ErrUnsupported))
}
