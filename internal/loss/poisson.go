package loss

import (
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// PoissonNLLLoss computes the Poisson negative log-likelihood per sample.
//
// With FromLogits the prediction is the log of the rate and the
// per-element loss is exp(pred) - target*pred; otherwise the prediction is
// the rate itself and the loss is pred - target*log(pred+eps).
//
// With ComputeFull a Stirling correction approximating log(target!) is
// added: target*log(target) - target + log(2*pi*target)/2. It is applied
// only where target > 1, which keeps log(target) well defined and avoids
// the approximation's artifacts for small counts.
type PoissonNLLLoss struct {
	fromLogits  bool
	computeFull bool
	weight      float64
}

// PoissonNLLOptions configures PoissonNLLLoss.
type PoissonNLLOptions struct {
	FromLogits  bool
	ComputeFull bool
	Weight      float64
}

// NewPoissonNLLLoss creates the loss with the given options.
func NewPoissonNLLLoss(opts PoissonNLLOptions) *PoissonNLLLoss {
	return &PoissonNLLLoss{
		fromLogits:  opts.FromLogits,
		computeFull: opts.ComputeFull,
		weight:      defaultWeight(opts.Weight),
	}
}

// Evaluate computes the per-sample loss: the per-element terms averaged
// over every axis except the batch axis. extras[0], when present, is an
// elementwise or per-sample weight tensor.
func (l *PoissonNLLLoss) Evaluate(pred, target *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("PoissonNLLLoss", pred, target); err != nil {
		return nil, err
	}
	elem := tensor.Zeros(pred.Shape())
	p, t, out := pred.Data(), target.Data(), elem.Data()
	for i := range p {
		if l.fromLogits {
			out[i] = math.Exp(p[i]) - t[i]*p[i]
		} else {
			out[i] = p[i] - t[i]*math.Log(p[i]+epsilon)
		}
		if l.computeFull && t[i] > 1 {
			out[i] += t[i]*math.Log(t[i]) - t[i] + 0.5*math.Log(2*math.Pi*t[i])
		}
	}
	if err := applyWeighting(elem, l.weight, optionalExtra(extras, 0)); err != nil {
		return nil, err
	}
	return reduceMeanExceptBatch(elem), nil
}
