package loss

import (
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// L1Loss computes the mean absolute error per sample.
//
//	loss = weight * |pred - label|
//
// Example:
//
//	l1 := loss.NewL1Loss(loss.Options{})
//	perSample, err := l1.Evaluate(pred, label)
type L1Loss struct {
	weight float64
}

// Options configures losses that only carry the scalar weight coefficient.
// A zero Weight defaults to 1.
type Options struct {
	Weight float64
}

// NewL1Loss creates an L1 loss with the given options.
func NewL1Loss(opts Options) *L1Loss {
	return &L1Loss{weight: defaultWeight(opts.Weight)}
}

// Evaluate computes per-sample L1 loss. extras[0], when present, is an
// elementwise or per-sample weight tensor.
func (l *L1Loss) Evaluate(pred, label *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("L1Loss", pred, label); err != nil {
		return nil, err
	}
	elem := tensor.Zeros(pred.Shape())
	p, y, out := pred.Data(), label.Data(), elem.Data()
	for i := range p {
		out[i] = math.Abs(p[i] - y[i])
	}
	if err := applyWeighting(elem, l.weight, optionalExtra(extras, 0)); err != nil {
		return nil, err
	}
	return reduceMeanExceptBatch(elem), nil
}

// L2Loss computes the half squared error per sample.
//
//	loss = weight * (pred - label)^2 / 2
type L2Loss struct {
	weight float64
}

// NewL2Loss creates an L2 loss with the given options.
func NewL2Loss(opts Options) *L2Loss {
	return &L2Loss{weight: defaultWeight(opts.Weight)}
}

// Evaluate computes per-sample L2 loss. extras[0], when present, is an
// elementwise or per-sample weight tensor.
func (l *L2Loss) Evaluate(pred, label *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("L2Loss", pred, label); err != nil {
		return nil, err
	}
	elem := tensor.Zeros(pred.Shape())
	p, y, out := pred.Data(), label.Data(), elem.Data()
	for i := range p {
		d := p[i] - y[i]
		out[i] = d * d / 2
	}
	if err := applyWeighting(elem, l.weight, optionalExtra(extras, 0)); err != nil {
		return nil, err
	}
	return reduceMeanExceptBatch(elem), nil
}
