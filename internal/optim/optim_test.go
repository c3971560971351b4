package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/nn"
	"github.com/criterion-ml/criterion/internal/tensor"
)

var (
	_ Optimizer = (*SGD)(nil)
	_ Optimizer = (*Adam)(nil)
)

// quadratic fills the gradient of f(w) = sum((w - target)^2)/2.
func quadratic(p *nn.Parameter, target []float64) {
	value := p.Value().Data()
	grad := p.Grad().Data()
	for i := range value {
		grad[i] = value[i] - target[i]
	}
}

func TestSGD_SingleStep(t *testing.T) {
	p := nn.NewParameter("w", tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2}))
	copy(p.Grad().Data(), []float64{0.5, -1})

	NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1}).Step()
	assert.InDeltaSlice(t, []float64{0.95, 2.1}, p.Value().Data(), 1e-12)
}

func TestSGD_MomentumAccumulates(t *testing.T) {
	p := nn.NewParameter("w", tensor.MustFromSlice([]float64{0}, tensor.Shape{1}))
	opt := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 1, Momentum: 0.5})

	// Constant unit gradient: velocity goes 1, 1.5, 1.75.
	for _, want := range []float64{-1, -2.5, -4.25} {
		copy(p.Grad().Data(), []float64{1})
		opt.Step()
		assert.InDelta(t, want, p.Value().Item(), 1e-12)
	}
}

func TestSGD_ConvergesOnQuadratic(t *testing.T) {
	target := []float64{3, -1, 0.5}
	p := nn.NewParameter("w", tensor.Zeros(tensor.Shape{3}))
	opt := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1, Momentum: 0.9})

	for i := 0; i < 200; i++ {
		opt.ZeroGrad()
		quadratic(p, target)
		opt.Step()
	}
	assert.InDeltaSlice(t, target, p.Value().Data(), 1e-3)
}

func TestAdam_FirstStepIsLR(t *testing.T) {
	// With bias correction the very first update has magnitude lr
	// regardless of gradient scale.
	p := nn.NewParameter("w", tensor.Zeros(tensor.Shape{2}))
	copy(p.Grad().Data(), []float64{100, -0.001})

	NewAdam([]*nn.Parameter{p}, AdamConfig{LR: 0.5}).Step()
	got := p.Value().Data()
	assert.InDelta(t, -0.5, got[0], 1e-4)
	assert.InDelta(t, 0.5, got[1], 1e-4)
}

func TestAdam_ConvergesOnQuadratic(t *testing.T) {
	target := []float64{3, -1, 0.5}
	p := nn.NewParameter("w", tensor.Zeros(tensor.Shape{3}))
	opt := NewAdam([]*nn.Parameter{p}, AdamConfig{LR: 0.1})

	for i := 0; i < 500; i++ {
		opt.ZeroGrad()
		quadratic(p, target)
		opt.Step()
	}
	assert.InDeltaSlice(t, target, p.Value().Data(), 1e-3)
}

func TestAdam_Defaults(t *testing.T) {
	a := NewAdam(nil, AdamConfig{})
	assert.Equal(t, 0.001, a.lr)
	assert.Equal(t, 0.9, a.beta1)
	assert.Equal(t, 0.999, a.beta2)
	assert.Equal(t, 1e-8, a.eps)
}

func TestZeroGrad(t *testing.T) {
	p := nn.NewParameter("w", tensor.Zeros(tensor.Shape{2}))
	copy(p.Grad().Data(), []float64{1, 2})

	NewSGD([]*nn.Parameter{p}, SGDConfig{}).ZeroGrad()
	require.Equal(t, []float64{0, 0}, p.Grad().Data())
}
