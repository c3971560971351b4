package loss

import (
	"fmt"
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// CosineEmbeddingLoss measures whether two batches of vectors point in the
// same direction. For each row pair with similarity label 1 the loss is
// 1 - cos(x1, x2); for label -1 it is max(0, cos(x1, x2) - margin).
type CosineEmbeddingLoss struct {
	margin float64
	weight float64
}

// CosineEmbeddingOptions configures CosineEmbeddingLoss. Margin must lie
// in [-1, 1]; the default is 0.
type CosineEmbeddingOptions struct {
	Margin float64
	Weight float64
}

// NewCosineEmbeddingLoss creates the loss with the given options.
func NewCosineEmbeddingLoss(opts CosineEmbeddingOptions) (*CosineEmbeddingLoss, error) {
	if opts.Margin < -1 || opts.Margin > 1 {
		return nil, fmt.Errorf("CosineEmbeddingLoss: margin %v outside [-1, 1]", opts.Margin)
	}
	return &CosineEmbeddingLoss{margin: opts.Margin, weight: defaultWeight(opts.Weight)}, nil
}

// Evaluate computes the per-row loss for x1, x2 of shape [batch, dim].
// extras[0] is the required similarity label tensor of batch entries in
// {-1, 1}; extras[1], when present, is a per-sample weight tensor.
func (l *CosineEmbeddingLoss) Evaluate(x1, x2 *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("CosineEmbeddingLoss", x1, x2); err != nil {
		return nil, err
	}
	shape := x1.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("CosineEmbeddingLoss: inputs must be 2-D [batch, dim], got %v", shape)
	}
	batch, dim := shape[0], shape[1]

	label := optionalExtra(extras, 0)
	if label == nil {
		return nil, fmt.Errorf("CosineEmbeddingLoss: similarity label tensor is required")
	}
	if label.NumElements() != batch {
		return nil, fmt.Errorf("CosineEmbeddingLoss: want %d labels, got %d", batch, label.NumElements())
	}

	out := tensor.Zeros(tensor.Shape{batch})
	a, b, y := x1.Data(), x2.Data(), label.Data()
	for i := 0; i < batch; i++ {
		dot, na, nb := 0.0, 0.0, 0.0
		for f := 0; f < dim; f++ {
			dot += a[i*dim+f] * b[i*dim+f]
			na += a[i*dim+f] * a[i*dim+f]
			nb += b[i*dim+f] * b[i*dim+f]
		}
		cos := dot / (math.Sqrt(na)*math.Sqrt(nb) + epsilon)
		if y[i] == 1 {
			out.Set(1-cos, i)
		} else {
			out.Set(math.Max(0, cos-l.margin), i)
		}
	}
	if err := applyWeighting(out, l.weight, optionalExtra(extras, 1)); err != nil {
		return nil, err
	}
	return out, nil
}
