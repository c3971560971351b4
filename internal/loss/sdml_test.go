package loss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/loss"
	"github.com/criterion-ml/criterion/internal/nn"
	"github.com/criterion-ml/criterion/internal/optim"
	"github.com/criterion-ml/criterion/internal/tensor"
	"github.com/criterion-ml/criterion/internal/verify"
)

func TestSDMLLoss_Smoothing(t *testing.T) {
	_, err := loss.NewSDMLLoss(1.2)
	assert.Error(t, err)

	l, err := loss.NewSDMLLoss(0)
	require.NoError(t, err)

	// Identical batches put all mass near the diagonal; the loss must be
	// small but positive (the smoothed labels are never one-hot).
	x := tensor.NewRNG(3).Uniform(-1, 1, tensor.Shape{4, 6})
	out, err := l.Evaluate(x, x)
	require.NoError(t, err)
	for i, v := range out.Data() {
		assert.Greater(t, v, 0.0, "sample %d", i)
	}
}

func TestSDMLLoss_TooFewPairs(t *testing.T) {
	l, err := loss.NewSDMLLoss(0)
	require.NoError(t, err)

	x := tensor.Ones(tensor.Shape{1, 4})
	_, err = l.Evaluate(x, x)
	assert.Error(t, err)
}

// Gradients of the summed loss must agree with central finite differences
// of Evaluate.
func TestSDMLLoss_GradientCheck(t *testing.T) {
	const (
		batch = 4
		dim   = 3
		h     = 1e-5
	)
	l, err := loss.NewSDMLLoss(0)
	require.NoError(t, err)

	rng := tensor.NewRNG(12)
	x1 := rng.Uniform(-1, 1, tensor.Shape{batch, dim})
	x2 := rng.Uniform(-1, 1, tensor.Shape{batch, dim})

	gx1, gx2, err := l.Gradients(x1, x2)
	require.NoError(t, err)

	sum := func() float64 {
		out, err := l.Evaluate(x1, x2)
		require.NoError(t, err)
		return out.Sum()
	}
	numeric := func(x *tensor.Tensor) []float64 {
		data := x.Data()
		grad := make([]float64, len(data))
		for i := range data {
			orig := data[i]
			data[i] = orig + h
			up := sum()
			data[i] = orig - h
			down := sum()
			data[i] = orig
			grad[i] = (up - down) / (2 * h)
		}
		return grad
	}

	tol := verify.Tolerance{Rtol: 1e-4, Atol: 1e-6}
	res := verify.AlmostEqual(gx1.Data(), numeric(x1), tol)
	assert.True(t, res.Pass, "x1 gradient: %s", res)
	res = verify.AlmostEqual(gx2.Data(), numeric(x2), tol)
	assert.True(t, res.Pass, "x2 gradient: %s", res)
}

// Trains a one-layer encoder so correlated pairs move together under the
// loss. The threshold is statistical, but holds with wide margin for this
// seed (and every other seed tried).
func TestSDMLLoss_TrainingConverges(t *testing.T) {
	const (
		n      = 5
		dim    = 10
		epochs = 50
	)
	sdml, err := loss.NewSDMLLoss(0)
	require.NoError(t, err)

	rng := tensor.NewRNG(1)
	data := rng.Uniform(-1, 1, tensor.Shape{n, dim})
	noise := rng.Uniform(-0.1, 0.1, tensor.Shape{n, dim})
	pos, err := tensor.Add(data, noise)
	require.NoError(t, err)

	model := nn.NewDense(dim, dim, true, rng)
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.1})

	for epoch := 0; epoch < epochs; epoch++ {
		z1, err := model.Forward(data)
		require.NoError(t, err)
		z2, err := model.Forward(pos)
		require.NoError(t, err)

		g1, g2, err := sdml.Gradients(z1, z2)
		require.NoError(t, err)

		opt.ZeroGrad()
		_, err = model.Backward(g2)
		require.NoError(t, err)
		// Forward again so the cached activations match g1's branch.
		_, err = model.Forward(data)
		require.NoError(t, err)
		_, err = model.Backward(g1)
		require.NoError(t, err)
		opt.Step()
	}

	z1, err := model.Forward(data)
	require.NoError(t, err)
	z2, err := model.Forward(pos)
	require.NoError(t, err)
	final, err := sdml.Evaluate(z1, z2)
	require.NoError(t, err)
	assert.Less(t, final.Mean(), 0.05)
}
