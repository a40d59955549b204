package estimator

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupported is returned by every training-flavored operation. The
// estimator runs inference and nothing else.
var ErrUnsupported = errors.New("operation is not supported by the OpenVINO estimator")

func unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnsupported)
}

// Fit is not supported.
func (e *Estimator) Fit(ctx context.Context, data interface{}, epochs int) error {
	return unsupported("fit")
}

// Evaluate is not supported.
func (e *Estimator) Evaluate(ctx context.Context, data interface{}) error {
	return unsupported("evaluate")
}

// GetModel is not supported.
func (e *Estimator) GetModel() (interface{}, error) {
	return nil, unsupported("get model")
}

// Save is not supported.
func (e *Estimator) Save(path string) error {
	return unsupported("save")
}

// SetTensorBoard is not supported.
func (e *Estimator) SetTensorBoard(logDir, appName string) error {
	return unsupported("set tensorboard")
}

// ClearGradientClipping is not supported.
func (e *Estimator) ClearGradientClipping() error {
	return unsupported("clear gradient clipping")
}

// SetConstantGradientClipping is not supported.
func (e *Estimator) SetConstantGradientClipping(min, max float64) error {
	return unsupported("set constant gradient clipping")
}

// SetL2NormGradientClipping is not supported.
func (e *Estimator) SetL2NormGradientClipping(clipNorm float64) error {
	return unsupported("set l2 norm gradient clipping")
}

// TrainSummary is not supported.
func (e *Estimator) TrainSummary(tag string) (interface{}, error) {
	return nil, unsupported("train summary")
}

// ValidationSummary is not supported.
func (e *Estimator) ValidationSummary(tag string) (interface{}, error) {
	return nil, unsupported("validation summary")
}

// LoadCheckpoint is not supported.
func (e *Estimator) LoadCheckpoint(path string, version int) error {
	return unsupported("load checkpoint")
}
