package loss

import (
	"fmt"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// SoftmaxCrossEntropyLoss computes the per-sample negative log-likelihood
// under a softmax over the last axis of the prediction.
//
// With SparseLabel (the default) the label holds one class index per
// sample; otherwise it holds a full distribution matching the prediction
// shape. With FromLogits the prediction is taken to already be
// log-probabilities and the softmax is skipped.
type SoftmaxCrossEntropyLoss struct {
	sparseLabel bool
	fromLogits  bool
	weight      float64
}

// SoftmaxCrossEntropyOptions configures SoftmaxCrossEntropyLoss.
type SoftmaxCrossEntropyOptions struct {
	// DenseLabel selects distribution labels instead of class indices.
	DenseLabel bool
	// FromLogits skips the internal log-softmax.
	FromLogits bool
	Weight     float64
}

// NewSoftmaxCrossEntropyLoss creates the loss with the given options.
func NewSoftmaxCrossEntropyLoss(opts SoftmaxCrossEntropyOptions) *SoftmaxCrossEntropyLoss {
	return &SoftmaxCrossEntropyLoss{
		sparseLabel: !opts.DenseLabel,
		fromLogits:  opts.FromLogits,
		weight:      defaultWeight(opts.Weight),
	}
}

// Evaluate computes the per-sample cross-entropy. pred has shape
// [batch, classes]; label is [batch] class indices (sparse) or
// [batch, classes] (dense). extras[0], when present, is a per-sample
// weight tensor.
func (l *SoftmaxCrossEntropyLoss) Evaluate(pred, label *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	shape := pred.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("SoftmaxCrossEntropyLoss: prediction must be 2-D [batch, classes], got %v", shape)
	}
	batch, classes := shape[0], shape[1]

	if l.sparseLabel {
		if label.NumElements() != batch {
			return nil, fmt.Errorf("SoftmaxCrossEntropyLoss: want %d label indices, got %d", batch, label.NumElements())
		}
	} else if err := checkSameShape("SoftmaxCrossEntropyLoss", pred, label); err != nil {
		return nil, err
	}

	out := tensor.Zeros(tensor.Shape{batch})
	predData := pred.Data()
	labelData := label.Data()
	for i := 0; i < batch; i++ {
		row := predData[i*classes : (i+1)*classes]
		logProbs := row
		if !l.fromLogits {
			logProbs = logSoftmax(row)
		}
		if l.sparseLabel {
			idx := int(labelData[i])
			if idx < 0 || idx >= classes {
				return nil, fmt.Errorf("SoftmaxCrossEntropyLoss: label index %d out of range [0, %d)", idx, classes)
			}
			out.Set(-logProbs[idx], i)
		} else {
			sum := 0.0
			for c := 0; c < classes; c++ {
				sum -= labelData[i*classes+c] * logProbs[c]
			}
			out.Set(sum, i)
		}
	}
	if err := applyWeighting(out, l.weight, optionalExtra(extras, 0)); err != nil {
		return nil, err
	}
	return out, nil
}
