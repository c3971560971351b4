package loss

import (
	"fmt"
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Layout strings accepted by CTCLoss.
const (
	LayoutNTC = "NTC" // batch, time, class
	LayoutTNC = "TNC" // time, batch, class

	LabelLayoutNT = "NT" // batch, label position
	LabelLayoutTN = "TN" // label position, batch
)

// labelPad marks unused trailing entries in a padded label row.
const labelPad = -1

// CTCLoss scores a label sequence against a softmax-normalized activation
// sequence, summing over all alignments that collapse to the labels with
// blank-symbol insertion. The blank symbol is the last class.
//
// Activations are 3-D in the configured layout; labels are 2-D, padded
// with -1, in the configured label layout. Optional length tensors
// override the padding.
type CTCLoss struct {
	timeMajor      bool
	labelTimeMajor bool
	weight         float64
}

// CTCOptions configures CTCLoss. Empty layouts default to NTC and NT.
type CTCOptions struct {
	Layout      string
	LabelLayout string
	Weight      float64
}

// NewCTCLoss creates the loss, validating both layout strings.
func NewCTCLoss(opts CTCOptions) (*CTCLoss, error) {
	l := &CTCLoss{weight: defaultWeight(opts.Weight)}
	switch opts.Layout {
	case "", LayoutNTC:
	case LayoutTNC:
		l.timeMajor = true
	default:
		return nil, fmt.Errorf("CTCLoss: unknown layout %q (want %q or %q)", opts.Layout, LayoutNTC, LayoutTNC)
	}
	switch opts.LabelLayout {
	case "", LabelLayoutNT:
	case LabelLayoutTN:
		l.labelTimeMajor = true
	default:
		return nil, fmt.Errorf("CTCLoss: unknown label layout %q (want %q or %q)",
			opts.LabelLayout, LabelLayoutNT, LabelLayoutTN)
	}
	return l, nil
}

// Evaluate computes the per-sequence negative log-likelihood.
//
// extras[0], when present, limits each sequence to its first entries of
// the time axis; extras[1] gives explicit label lengths, overriding the
// -1 padding.
func (l *CTCLoss) Evaluate(data, labels *tensor.Tensor, extras ...*tensor.Tensor) (*tensor.Tensor, error) {
	shape := data.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("CTCLoss: activations must be 3-D, got %v", shape)
	}
	batch, steps := shape[0], shape[1]
	if l.timeMajor {
		batch, steps = shape[1], shape[0]
	}
	classes := shape[2]
	if classes < 2 {
		return nil, fmt.Errorf("CTCLoss: need at least 2 classes (one plus blank), got %d", classes)
	}

	labelShape := labels.Shape()
	if len(labelShape) != 2 {
		return nil, fmt.Errorf("CTCLoss: labels must be 2-D, got %v", labelShape)
	}
	labelBatch, maxLabel := labelShape[0], labelShape[1]
	if l.labelTimeMajor {
		labelBatch, maxLabel = labelShape[1], labelShape[0]
	}
	if labelBatch != batch {
		return nil, fmt.Errorf("CTCLoss: activation batch %d does not match label batch %d", batch, labelBatch)
	}

	dataLengths := optionalExtra(extras, 0)
	labelLengths := optionalExtra(extras, 1)
	if dataLengths != nil && dataLengths.NumElements() != batch {
		return nil, fmt.Errorf("CTCLoss: want %d data lengths, got %d", batch, dataLengths.NumElements())
	}
	if labelLengths != nil && labelLengths.NumElements() != batch {
		return nil, fmt.Errorf("CTCLoss: want %d label lengths, got %d", batch, labelLengths.NumElements())
	}

	out := tensor.Zeros(tensor.Shape{batch})
	for n := 0; n < batch; n++ {
		seqSteps := steps
		if dataLengths != nil {
			seqSteps = int(dataLengths.Data()[n])
			if seqSteps < 1 || seqSteps > steps {
				return nil, fmt.Errorf("CTCLoss: data length %d out of range [1, %d]", seqSteps, steps)
			}
		}
		label, err := l.sequenceLabel(labels, labelLengths, n, maxLabel, classes)
		if err != nil {
			return nil, err
		}
		logProbs := l.sequenceLogProbs(data, n, seqSteps, classes)
		nll, err := forwardNLL(logProbs, seqSteps, classes, label)
		if err != nil {
			return nil, err
		}
		out.Set(l.weight*nll, n)
	}
	return out, nil
}

// sequenceLabel extracts sequence n's labels, honoring explicit lengths or
// -1 padding.
func (l *CTCLoss) sequenceLabel(labels, labelLengths *tensor.Tensor, n, maxLabel, classes int) ([]int, error) {
	length := maxLabel
	if labelLengths != nil {
		length = int(labelLengths.Data()[n])
		if length < 1 || length > maxLabel {
			return nil, fmt.Errorf("CTCLoss: label length %d out of range [1, %d]", length, maxLabel)
		}
	}
	label := make([]int, 0, length)
	for i := 0; i < length; i++ {
		var v float64
		if l.labelTimeMajor {
			v = labels.At(i, n)
		} else {
			v = labels.At(n, i)
		}
		cls := int(v)
		if labelLengths == nil && cls == labelPad {
			break
		}
		if cls < 0 || cls >= classes {
			return nil, fmt.Errorf("CTCLoss: label class %d out of range [0, %d)", cls, classes)
		}
		label = append(label, cls)
	}
	if len(label) == 0 {
		return nil, fmt.Errorf("CTCLoss: empty label sequence %d", n)
	}
	return label, nil
}

// sequenceLogProbs gathers sequence n as steps×classes log-probabilities.
func (l *CTCLoss) sequenceLogProbs(data *tensor.Tensor, n, steps, classes int) []float64 {
	out := make([]float64, steps*classes)
	row := make([]float64, classes)
	for t := 0; t < steps; t++ {
		for c := 0; c < classes; c++ {
			if l.timeMajor {
				row[c] = data.At(t, n, c)
			} else {
				row[c] = data.At(n, t, c)
			}
		}
		copy(out[t*classes:(t+1)*classes], logSoftmax(row))
	}
	return out
}

// forwardNLL runs the forward (alpha) recurrence in log space over the
// extended label sequence with blanks interleaved.
func forwardNLL(logProbs []float64, steps, classes int, label []int) (float64, error) {
	if 2*len(label)+1 > 2*steps+1 {
		return 0, fmt.Errorf("CTCLoss: label length %d cannot fit in %d steps", len(label), steps)
	}
	blank := classes - 1
	ext := make([]int, 2*len(label)+1)
	for i := range ext {
		ext[i] = blank
	}
	for i, cls := range label {
		ext[2*i+1] = cls
	}
	n := len(ext)

	negInf := math.Inf(-1)
	alpha := make([]float64, n)
	next := make([]float64, n)
	for i := range alpha {
		alpha[i] = negInf
	}
	alpha[0] = logProbs[blank]
	alpha[1] = logProbs[ext[1]]

	for t := 1; t < steps; t++ {
		frame := logProbs[t*classes : (t+1)*classes]
		for s := 0; s < n; s++ {
			acc := alpha[s]
			if s >= 1 {
				acc = logAdd(acc, alpha[s-1])
			}
			// A skip over the preceding blank is allowed unless the symbol
			// repeats or is itself blank.
			if s >= 2 && ext[s] != blank && ext[s] != ext[s-2] {
				acc = logAdd(acc, alpha[s-2])
			}
			next[s] = acc + frame[ext[s]]
		}
		alpha, next = next, alpha
	}
	return -logAdd(alpha[n-1], alpha[n-2]), nil
}

func logAdd(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}
