package loss

import (
	"fmt"
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// SigmoidBCELoss computes binary cross-entropy per sample.
//
// With FromSigmoid the prediction is treated as probabilities already in
// (0, 1); otherwise it is treated as raw scores and a numerically stable
// log-sigmoid formulation is used, which never exponentiates a positive
// argument.
type SigmoidBCELoss struct {
	fromSigmoid bool
	weight      float64
}

// SigmoidBCEOptions configures SigmoidBCELoss.
type SigmoidBCEOptions struct {
	FromSigmoid bool
	Weight      float64
}

// NewSigmoidBCELoss creates the loss with the given options.
func NewSigmoidBCELoss(opts SigmoidBCEOptions) *SigmoidBCELoss {
	return &SigmoidBCELoss{fromSigmoid: opts.FromSigmoid, weight: defaultWeight(opts.Weight)}
}

// Evaluate computes per-sample binary cross-entropy. extras[0], when
// present, is an elementwise or per-sample weight tensor.
func (l *SigmoidBCELoss) Evaluate(pred, label *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("SigmoidBCELoss", pred, label); err != nil {
		return nil, err
	}
	elem := tensor.Zeros(pred.Shape())
	p, y, out := pred.Data(), label.Data(), elem.Data()
	for i := range p {
		if l.fromSigmoid {
			out[i] = -(y[i]*math.Log(p[i]+epsilon) + (1-y[i])*math.Log(1-p[i]+epsilon))
		} else {
			out[i] = bceWithLogits(p[i], y[i])
		}
	}
	if err := applyWeighting(elem, l.weight, optionalExtra(extras, 0)); err != nil {
		return nil, err
	}
	return reduceMeanExceptBatch(elem), nil
}

// Label encodings accepted by LogisticLoss.
const (
	LabelFormatBinary = "binary" // labels in {0, 1}
	LabelFormatSigned = "signed" // labels in {-1, 1}
)

// LogisticLoss computes the logistic loss on raw scores. It is equivalent
// to SigmoidBCELoss on raw scores for both label encodings.
type LogisticLoss struct {
	signed bool
	weight float64
}

// NewLogisticLoss creates the loss for the given label format. An empty
// format defaults to "binary"; anything else but "binary"/"signed" is a
// configuration error.
func NewLogisticLoss(labelFormat string, opts Options) (*LogisticLoss, error) {
	switch labelFormat {
	case "", LabelFormatBinary:
		return &LogisticLoss{signed: false, weight: defaultWeight(opts.Weight)}, nil
	case LabelFormatSigned:
		return &LogisticLoss{signed: true, weight: defaultWeight(opts.Weight)}, nil
	default:
		return nil, fmt.Errorf("LogisticLoss: unknown label format %q (want %q or %q)",
			labelFormat, LabelFormatBinary, LabelFormatSigned)
	}
}

// Evaluate computes the per-sample logistic loss. extras[0], when present,
// is an elementwise or per-sample weight tensor.
func (l *LogisticLoss) Evaluate(pred, label *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("LogisticLoss", pred, label); err != nil {
		return nil, err
	}
	elem := tensor.Zeros(pred.Shape())
	p, y, out := pred.Data(), label.Data(), elem.Data()
	for i := range p {
		target := y[i]
		if l.signed {
			target = (target + 1) / 2
		}
		out[i] = bceWithLogits(p[i], target)
	}
	if err := applyWeighting(elem, l.weight, optionalExtra(extras, 0)); err != nil {
		return nil, err
	}
	return reduceMeanExceptBatch(elem), nil
}

// bceWithLogits is max(x,0) - x*y + log(1+exp(-|x|)), the stable form of
// -y*log(sigmoid(x)) - (1-y)*log(1-sigmoid(x)).
func bceWithLogits(x, y float64) float64 {
	return math.Max(x, 0) - x*y + math.Log1p(math.Exp(-math.Abs(x)))
}
