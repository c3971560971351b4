// Package loss implements the loss functions verified by this repository.
//
// Each loss is a small immutable struct configured at construction and
// invoked through Evaluate. Evaluate returns a per-sample loss tensor of
// shape [batch]: elementwise losses are reduced by mean over every axis
// except the batch axis (axis 0), after scalar and per-sample weighting.
//
// Invalid configurations (unknown label format, bad layout string) are
// rejected by the constructors; Evaluate only reports input-shape errors.
package loss

import (
	"fmt"
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Loss is the contract shared by all configured loss functions.
//
// pred and label are the primary inputs; extras carry kind-specific
// optional tensors (per-sample weights, similarity labels, length arrays).
// The result has one entry per sample along axis 0 of pred.
type Loss interface {
	Evaluate(pred, label *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error)
}

// epsilon guards logarithms against zero arguments.
const epsilon = 1e-8

// applyWeighting multiplies the elementwise loss by the scalar weight and,
// when sampleWeight is non-nil, by the per-element or per-sample weights.
// The input tensor is mutated.
func applyWeighting(elem *tensor.Tensor, weight float64, sampleWeight *tensor.Tensor) error {
	data := elem.Data()
	if weight != 1 {
		for i := range data {
			data[i] *= weight
		}
	}
	if sampleWeight == nil {
		return nil
	}

	sw := sampleWeight.Data()
	switch {
	case len(sw) == len(data):
		for i := range data {
			data[i] *= sw[i]
		}
	case len(sw) == elem.Shape()[0]:
		// Per-sample weights broadcast over each sample's block.
		block := len(data) / len(sw)
		for i := range data {
			data[i] *= sw[i/block]
		}
	default:
		return fmt.Errorf("sample weight with %d elements cannot broadcast over loss shape %v",
			len(sw), elem.Shape())
	}
	return nil
}

// reduceMeanExceptBatch reduces an elementwise loss of shape [batch, ...]
// to a per-sample loss of shape [batch] by averaging each sample's block.
func reduceMeanExceptBatch(elem *tensor.Tensor) *tensor.Tensor {
	batch := elem.Shape()[0]
	block := elem.NumElements() / batch
	out := tensor.Zeros(tensor.Shape{batch})
	data := elem.Data()
	for i := 0; i < batch; i++ {
		sum := 0.0
		for j := 0; j < block; j++ {
			sum += data[i*block+j]
		}
		out.Set(sum/float64(block), i)
	}
	return out
}

// checkSameShape verifies pred and label agree.
func checkSameShape(name string, pred, label *tensor.Tensor) error {
	if !pred.Shape().Equal(label.Shape()) {
		return fmt.Errorf("%s: prediction shape %v does not match label shape %v",
			name, pred.Shape(), label.Shape())
	}
	return nil
}

// optionalExtra returns extras[i] when present, else nil.
func optionalExtra(extras []*tensor.Tensor, i int) *tensor.Tensor {
	if i < len(extras) {
		return extras[i]
	}
	return nil
}

// logSoftmax computes log(softmax(row)) with the log-sum-exp trick.
func logSoftmax(row []float64) []float64 {
	out := make([]float64, len(row))
	maxV := row[0]
	for _, v := range row[1:] {
		if v > maxV {
			maxV = v
		}
	}
	sumExp := 0.0
	for _, v := range row {
		sumExp += math.Exp(v - maxV)
	}
	logSumExp := maxV + math.Log(sumExp)
	for i, v := range row {
		out[i] = v - logSumExp
	}
	return out
}

// defaultWeight resolves the zero value to the conventional default of 1.
func defaultWeight(w float64) float64 {
	if w == 0 {
		return 1
	}
	return w
}
