package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/tensor"
)

func TestDense_ForwardLinear(t *testing.T) {
	d := NewDense(2, 2, false, tensor.NewRNG(1))
	copy(d.weight.Value().Data(), []float64{1, 2, 3, 4})
	copy(d.bias.Value().Data(), []float64{0.5, -0.5})

	in := tensor.MustFromSlice([]float64{1, 1, 2, 0}, tensor.Shape{2, 2})
	out, err := d.Forward(in)
	require.NoError(t, err)

	// Row i of the output is in[i] @ W.T + b.
	want := []float64{1*1 + 1*2 + 0.5, 1*3 + 1*4 - 0.5, 2*1 + 0*2 + 0.5, 2*3 + 0*4 - 0.5}
	assert.InDeltaSlice(t, want, out.Data(), 1e-12)
}

func TestDense_ForwardShapeError(t *testing.T) {
	d := NewDense(3, 2, false, tensor.NewRNG(1))
	_, err := d.Forward(tensor.Zeros(tensor.Shape{4, 5}))
	assert.Error(t, err)
}

func TestDense_BackwardBeforeForward(t *testing.T) {
	d := NewDense(3, 2, false, tensor.NewRNG(1))
	_, err := d.Backward(tensor.Zeros(tensor.Shape{1, 2}))
	assert.Error(t, err)
}

func TestDense_XavierRange(t *testing.T) {
	d := NewDense(10, 10, true, tensor.NewRNG(9))
	limit := 0.5477226 // sqrt(6/20)
	for _, w := range d.weight.Value().Data() {
		assert.LessOrEqual(t, w, limit)
		assert.GreaterOrEqual(t, w, -limit)
	}
	for _, b := range d.bias.Value().Data() {
		assert.Zero(t, b)
	}
}

// Parameter and input gradients must match central finite differences of a
// scalar head sum(tanh(x @ W.T + b)).
func TestDense_GradientCheck(t *testing.T) {
	const (
		batch = 3
		in    = 4
		out   = 2
		h     = 1e-6
	)
	rng := tensor.NewRNG(5)
	d := NewDense(in, out, true, rng)
	input := rng.Uniform(-1, 1, tensor.Shape{batch, in})

	forwardSum := func() float64 {
		y, err := d.Forward(input)
		require.NoError(t, err)
		return y.Sum()
	}

	forwardSum()
	d.weight.ZeroGrad()
	d.bias.ZeroGrad()
	gradIn, err := d.Backward(tensor.Ones(tensor.Shape{batch, out}))
	require.NoError(t, err)

	check := func(name string, data, analytic []float64) {
		for i := range data {
			orig := data[i]
			data[i] = orig + h
			up := forwardSum()
			data[i] = orig - h
			down := forwardSum()
			data[i] = orig
			numeric := (up - down) / (2 * h)
			assert.InDelta(t, numeric, analytic[i], 1e-6, "%s[%d]", name, i)
		}
	}
	check("weight", d.weight.Value().Data(), d.weight.Grad().Data())
	check("bias", d.bias.Value().Data(), d.bias.Grad().Data())
	check("input", input.Data(), gradIn.Data())
}

// Backward accumulates into parameter gradients across calls.
func TestDense_GradAccumulation(t *testing.T) {
	rng := tensor.NewRNG(2)
	d := NewDense(3, 3, false, rng)
	input := rng.Uniform(-1, 1, tensor.Shape{2, 3})
	g := tensor.Ones(tensor.Shape{2, 3})

	_, err := d.Forward(input)
	require.NoError(t, err)
	_, err = d.Backward(g)
	require.NoError(t, err)
	once := append([]float64(nil), d.weight.Grad().Data()...)

	_, err = d.Backward(g)
	require.NoError(t, err)
	for i, v := range d.weight.Grad().Data() {
		assert.InDelta(t, 2*once[i], v, 1e-12)
	}
}
