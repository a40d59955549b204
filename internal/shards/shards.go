// Package shards models the distributed sharded dataset the estimator
// accepts: an ordered list of partitions, each carrying the feature
// tensors for its rows. Predictions are written back shard by shard so the
// result keeps the input's partitioning.
package shards

import "github.com/parallaxml/infergrid/internal/tensor"

// Shard is one partition of a sharded dataset. X holds one tensor per
// model input; Prediction is filled in by the estimator, one tensor per
// model output, trimmed to the shard's row count.
type Shard struct {
	X          []tensor.Tensor
	Prediction []tensor.Tensor
}

// Rows returns the shard's row count, taken from the first feature tensor.
func (s Shard) Rows() int {
	if len(s.X) == 0 {
		return 0
	}
	return s.X[0].Rows()
}

// Shards is an ordered collection of partitions.
type Shards struct {
	Parts []Shard
}

// New builds a sharded dataset from single-input feature tensors, one
// tensor per shard.
func New(features ...tensor.Tensor) *Shards {
	s := &Shards{Parts: make([]Shard, 0, len(features))}
	for _, f := range features {
		s.Parts = append(s.Parts, Shard{X: []tensor.Tensor{f}})
	}
	return s
}

// Len returns the number of partitions.
func (s *Shards) Len() int {
	return len(s.Parts)
}

// Transform applies fn to every shard and returns a new dataset with the
// same partitioning.
func (s *Shards) Transform(fn func(Shard) (Shard, error)) (*Shards, error) {
	out := &Shards{Parts: make([]Shard, 0, len(s.Parts))}
	for _, p := range s.Parts {
		np, err := fn(p)
		if err != nil {
			return nil, err
		}
		out.Parts = append(out.Parts, np)
	}
	return out, nil
}
