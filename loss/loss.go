// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package loss

import "github.com/criterion-ml/criterion/internal/loss"

// Loss is the contract shared by all configured loss functions.
type Loss = loss.Loss

// Options configures the simple regression losses.
type Options = loss.Options

// L1Loss computes the mean absolute error per sample.
type L1Loss = loss.L1Loss

// NewL1Loss creates an L1 loss.
func NewL1Loss(opts Options) *L1Loss {
	return loss.NewL1Loss(opts)
}

// L2Loss computes the halved mean squared error per sample.
type L2Loss = loss.L2Loss

// NewL2Loss creates an L2 loss.
func NewL2Loss(opts Options) *L2Loss {
	return loss.NewL2Loss(opts)
}

// SoftmaxCrossEntropyLoss scores class predictions against labels.
type SoftmaxCrossEntropyLoss = loss.SoftmaxCrossEntropyLoss

// SoftmaxCrossEntropyOptions configures SoftmaxCrossEntropyLoss.
type SoftmaxCrossEntropyOptions = loss.SoftmaxCrossEntropyOptions

// NewSoftmaxCrossEntropyLoss creates a softmax cross-entropy loss.
func NewSoftmaxCrossEntropyLoss(opts SoftmaxCrossEntropyOptions) *SoftmaxCrossEntropyLoss {
	return loss.NewSoftmaxCrossEntropyLoss(opts)
}

// SigmoidBCELoss computes binary cross-entropy on scores or probabilities.
type SigmoidBCELoss = loss.SigmoidBCELoss

// SigmoidBCEOptions configures SigmoidBCELoss.
type SigmoidBCEOptions = loss.SigmoidBCEOptions

// NewSigmoidBCELoss creates a sigmoid binary cross-entropy loss.
func NewSigmoidBCELoss(opts SigmoidBCEOptions) *SigmoidBCELoss {
	return loss.NewSigmoidBCELoss(opts)
}

// Label encodings accepted by NewLogisticLoss.
const (
	LabelFormatBinary = loss.LabelFormatBinary
	LabelFormatSigned = loss.LabelFormatSigned
)

// LogisticLoss computes the logistic loss on raw scores.
type LogisticLoss = loss.LogisticLoss

// NewLogisticLoss creates a logistic loss for the given label encoding.
func NewLogisticLoss(labelFormat string, opts Options) (*LogisticLoss, error) {
	return loss.NewLogisticLoss(labelFormat, opts)
}

// PoissonNLLLoss computes the Poisson negative log-likelihood.
type PoissonNLLLoss = loss.PoissonNLLLoss

// PoissonNLLOptions configures PoissonNLLLoss.
type PoissonNLLOptions = loss.PoissonNLLOptions

// NewPoissonNLLLoss creates a Poisson negative log-likelihood loss.
func NewPoissonNLLLoss(opts PoissonNLLOptions) *PoissonNLLLoss {
	return loss.NewPoissonNLLLoss(opts)
}

// CosineEmbeddingLoss scores paired vectors by cosine similarity.
type CosineEmbeddingLoss = loss.CosineEmbeddingLoss

// CosineEmbeddingOptions configures CosineEmbeddingLoss.
type CosineEmbeddingOptions = loss.CosineEmbeddingOptions

// NewCosineEmbeddingLoss creates a cosine embedding loss.
func NewCosineEmbeddingLoss(opts CosineEmbeddingOptions) (*CosineEmbeddingLoss, error) {
	return loss.NewCosineEmbeddingLoss(opts)
}

// Layout strings accepted by CTCLoss.
const (
	LayoutNTC = loss.LayoutNTC
	LayoutTNC = loss.LayoutTNC

	LabelLayoutNT = loss.LabelLayoutNT
	LabelLayoutTN = loss.LabelLayoutTN
)

// CTCLoss scores label sequences against activation sequences.
type CTCLoss = loss.CTCLoss

// CTCOptions configures CTCLoss.
type CTCOptions = loss.CTCOptions

// NewCTCLoss creates a CTC loss, validating both layout strings.
func NewCTCLoss(opts CTCOptions) (*CTCLoss, error) {
	return loss.NewCTCLoss(opts)
}

// SDMLLoss is the smoothed deep metric learning loss.
type SDMLLoss = loss.SDMLLoss

// NewSDMLLoss creates an SDML loss; a zero smoothing parameter defaults
// to 0.3.
func NewSDMLLoss(smoothing float64) (*SDMLLoss, error) {
	return loss.NewSDMLLoss(smoothing)
}
