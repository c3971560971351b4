package loss

import (
	"fmt"
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// SDMLLoss is the smoothed deep metric learning loss over two batches of
// embeddings whose rows are positive pairs.
//
// For batches x1, x2 of shape [batch, dim] it forms the matrix of pairwise
// squared euclidean distances, takes a row softmax of the negated
// distances, and scores it against identity labels smoothed by the
// smoothing parameter: the diagonal carries 1-s and each off-diagonal
// entry s/(batch-1). The per-sample loss is the row KL divergence.
type SDMLLoss struct {
	smoothing float64
}

// NewSDMLLoss creates the loss. A zero smoothing parameter defaults to
// 0.3; values outside [0, 1) are rejected.
func NewSDMLLoss(smoothing float64) (*SDMLLoss, error) {
	if smoothing == 0 {
		smoothing = 0.3
	}
	if smoothing < 0 || smoothing >= 1 {
		return nil, fmt.Errorf("SDMLLoss: smoothing parameter %v outside [0, 1)", smoothing)
	}
	return &SDMLLoss{smoothing: smoothing}, nil
}

// Evaluate computes the per-sample loss for the paired batches x1, x2 of
// equal shape [batch, dim]. The batch must hold at least two pairs, since
// every other row of x2 acts as a negative sample.
func (l *SDMLLoss) Evaluate(x1, x2 *tensor.Tensor, _ ...*tensor.Tensor) (*tensor.Tensor, error) {
	batch, _, err := l.checkInputs(x1, x2)
	if err != nil {
		return nil, err
	}
	labels := l.smoothedLabels(batch)
	logProbs := rowLogSoftmax(negatedDistances(x1, x2), batch)

	out := tensor.Zeros(tensor.Shape{batch})
	for i := 0; i < batch; i++ {
		sum := 0.0
		for j := 0; j < batch; j++ {
			y := labels[i*batch+j]
			sum += y * (math.Log(y) - logProbs[i*batch+j])
		}
		out.Set(sum, i)
	}
	return out, nil
}

// Gradients returns the gradient of the summed loss with respect to both
// embedding batches. Used by the convergence scenario's training loop.
func (l *SDMLLoss) Gradients(x1, x2 *tensor.Tensor) (*tensor.Tensor, *tensor.Tensor, error) {
	batch, dim, err := l.checkInputs(x1, x2)
	if err != nil {
		return nil, nil, err
	}
	labels := l.smoothedLabels(batch)
	logProbs := rowLogSoftmax(negatedDistances(x1, x2), batch)

	// d(loss)/d(distance[i][j]) = labels[i][j] - softmax(-dist)[i][j];
	// the distance then contributes 2*(x1[i]-x2[j]) to x1 and the negation
	// to x2.
	gx1 := tensor.Zeros(x1.Shape())
	gx2 := tensor.Zeros(x2.Shape())
	a, b := x1.Data(), x2.Data()
	g1, g2 := gx1.Data(), gx2.Data()
	for i := 0; i < batch; i++ {
		for j := 0; j < batch; j++ {
			dd := labels[i*batch+j] - math.Exp(logProbs[i*batch+j])
			for f := 0; f < dim; f++ {
				diff := 2 * (a[i*dim+f] - b[j*dim+f]) * dd
				g1[i*dim+f] += diff
				g2[j*dim+f] -= diff
			}
		}
	}
	return gx1, gx2, nil
}

func (l *SDMLLoss) checkInputs(x1, x2 *tensor.Tensor) (batch, dim int, err error) {
	if err := checkSameShape("SDMLLoss", x1, x2); err != nil {
		return 0, 0, err
	}
	shape := x1.Shape()
	if len(shape) != 2 {
		return 0, 0, fmt.Errorf("SDMLLoss: embeddings must be 2-D [batch, dim], got %v", shape)
	}
	if shape[0] < 2 {
		return 0, 0, fmt.Errorf("SDMLLoss: need at least 2 pairs for negative sampling, got %d", shape[0])
	}
	return shape[0], shape[1], nil
}

func (l *SDMLLoss) smoothedLabels(batch int) []float64 {
	labels := make([]float64, batch*batch)
	off := l.smoothing / float64(batch-1)
	for i := 0; i < batch; i++ {
		for j := 0; j < batch; j++ {
			if i == j {
				labels[i*batch+j] = 1 - l.smoothing
			} else {
				labels[i*batch+j] = off
			}
		}
	}
	return labels
}

// negatedDistances returns -||x1[i]-x2[j]||^2 as a flat batch×batch matrix.
func negatedDistances(x1, x2 *tensor.Tensor) []float64 {
	shape := x1.Shape()
	batch, dim := shape[0], shape[1]
	a, b := x1.Data(), x2.Data()
	out := make([]float64, batch*batch)
	for i := 0; i < batch; i++ {
		for j := 0; j < batch; j++ {
			sum := 0.0
			for f := 0; f < dim; f++ {
				d := a[i*dim+f] - b[j*dim+f]
				sum += d * d
			}
			out[i*batch+j] = -sum
		}
	}
	return out
}

func rowLogSoftmax(m []float64, rows int) []float64 {
	cols := len(m) / rows
	out := make([]float64, len(m))
	for r := 0; r < rows; r++ {
		copy(out[r*cols:(r+1)*cols], logSoftmax(m[r*cols:(r+1)*cols]))
	}
	return out
}
