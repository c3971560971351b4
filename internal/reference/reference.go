// Package reference provides independently derived, auditable formulas for
// the loss functions in internal/loss. Each function is a direct slice-level
// transcription of the closed-form definition and is used as ground truth by
// the verification scenarios. None of this code is shared with the
// implementations under test.
package reference

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Eps is added before logarithms to avoid singularities at zero.
const Eps = 1e-8

// L1 computes weight*|pred-label| elementwise, multiplied by sampleWeight
// if non-nil.
func L1(pred, label []float64, weight float64, sampleWeight []float64) []float64 {
	out := make([]float64, len(pred))
	for i := range pred {
		out[i] = weight * math.Abs(pred[i]-label[i])
	}
	applySampleWeight(out, sampleWeight)
	return out
}

// L2 computes weight*(pred-label)^2/2 elementwise, multiplied by
// sampleWeight if non-nil.
func L2(pred, label []float64, weight float64, sampleWeight []float64) []float64 {
	out := make([]float64, len(pred))
	for i := range pred {
		d := pred[i] - label[i]
		out[i] = weight * d * d / 2
	}
	applySampleWeight(out, sampleWeight)
	return out
}

// SoftmaxCrossEntropy computes the per-row negative log-likelihood of the
// labeled class under a softmax over each row of logits.
// logits is row-major with the given number of rows and cols.
func SoftmaxCrossEntropy(logits []float64, rows, cols int, labels []int, sampleWeight []float64) []float64 {
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		row := logits[r*cols : (r+1)*cols]
		out[r] = -logSoftmaxAt(row, labels[r])
	}
	applySampleWeight(out, sampleWeight)
	return out
}

// SoftmaxCrossEntropyDense computes the per-row cross-entropy when labels
// hold a full distribution over the classes instead of an index:
// -sum(label * logsoftmax(logits)) per row. Both matrices are row-major
// with the given number of rows and cols.
func SoftmaxCrossEntropyDense(logits, labels []float64, rows, cols int, sampleWeight []float64) []float64 {
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		row := logits[r*cols : (r+1)*cols]
		sum := 0.0
		for c := 0; c < cols; c++ {
			sum -= labels[r*cols+c] * logSoftmaxAt(row, c)
		}
		out[r] = sum
	}
	applySampleWeight(out, sampleWeight)
	return out
}

// CrossEntropyFromLogProbs computes the per-row negative log-likelihood when
// the input rows already hold log-probabilities.
func CrossEntropyFromLogProbs(logProbs []float64, rows, cols int, labels []int) []float64 {
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = -logProbs[r*cols+labels[r]]
	}
	return out
}

// SigmoidBCE computes binary cross-entropy per element. With fromSigmoid the
// input is treated as probabilities; otherwise a numerically stable
// log-sigmoid formulation over raw scores is used.
func SigmoidBCE(pred, label []float64, fromSigmoid bool) []float64 {
	out := make([]float64, len(pred))
	for i := range pred {
		if fromSigmoid {
			p, y := pred[i], label[i]
			out[i] = -(y*math.Log(p+Eps) + (1-y)*math.Log(1-p+Eps))
		} else {
			out[i] = stableBCEWithLogits(pred[i], label[i])
		}
	}
	return out
}

// Logistic computes the logistic loss on raw scores. signed selects the
// {-1,1} label encoding; otherwise labels are {0,1}. Both encodings reduce
// to SigmoidBCE on raw scores.
func Logistic(pred, label []float64, signed bool) []float64 {
	out := make([]float64, len(pred))
	for i := range pred {
		y := label[i]
		if signed {
			y = (y + 1) / 2
		}
		out[i] = stableBCEWithLogits(pred[i], y)
	}
	return out
}

// PoissonNLL computes the per-row mean Poisson negative log-likelihood.
// With fromLogits the per-element term is exp(pred)-target*pred, otherwise
// pred-target*log(pred+eps). computeFull adds the Stirling correction
// target*log(target)-target+log(2*pi*target)/2 wherever target > 1.
func PoissonNLL(pred, target []float64, rows, cols int, fromLogits, computeFull bool) []float64 {
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		sum := 0.0
		for c := 0; c < cols; c++ {
			p, t := pred[r*cols+c], target[r*cols+c]
			if fromLogits {
				sum += math.Exp(p) - t*p
			} else {
				sum += p - t*math.Log(p+Eps)
			}
			if computeFull && t > 1 {
				sum += t*math.Log(t) - t + 0.5*math.Log(2*math.Pi*t)
			}
		}
		out[r] = sum / float64(cols)
	}
	return out
}

// CosineEmbedding computes, per row of the two input matrices,
// 1-cos(x1,x2) where label is 1 and max(0, cos(x1,x2)) otherwise.
func CosineEmbedding(x1, x2 []float64, rows, cols int, label []float64) []float64 {
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		a := x1[r*cols : (r+1)*cols]
		b := x2[r*cols : (r+1)*cols]
		cos := floats.Dot(a, b) / (math.Sqrt(floats.Dot(a, a)) * math.Sqrt(floats.Dot(b, b)))
		if label[r] == 1 {
			out[r] = 1 - cos
		} else {
			out[r] = math.Max(0, cos)
		}
	}
	return out
}

func applySampleWeight(loss, sampleWeight []float64) {
	if sampleWeight == nil {
		return
	}
	for i := range loss {
		loss[i] *= sampleWeight[i]
	}
}

func logSoftmaxAt(row []float64, idx int) float64 {
	maxV := floats.Max(row)
	sumExp := 0.0
	for _, v := range row {
		sumExp += math.Exp(v - maxV)
	}
	return row[idx] - maxV - math.Log(sumExp)
}

func stableBCEWithLogits(x, y float64) float64 {
	return math.Max(x, 0) - x*y + math.Log1p(math.Exp(-math.Abs(x)))
}
