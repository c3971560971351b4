package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Dense implements a fully connected layer with an optional tanh
// activation.
//
// Performs the transformation: y = tanh(x @ W.T + b)
// where:
//   - x is the input tensor with shape [batch, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//
// The layer keeps its last forward inputs so Backward can accumulate
// parameter gradients; it is explicitly not safe for concurrent use.
type Dense struct {
	inFeatures  int
	outFeatures int
	tanh        bool
	weight      *Parameter
	bias        *Parameter

	lastInput  *tensor.Tensor
	lastOutput *tensor.Tensor
}

// NewDense creates a Dense layer with Xavier-initialized weights and zero
// biases, drawing from the given generator.
func NewDense(inFeatures, outFeatures int, tanh bool, rng *tensor.RNG) *Dense {
	// Xavier/Glorot uniform: limit = sqrt(6 / (fan_in + fan_out)).
	limit := math.Sqrt(6.0 / float64(inFeatures+outFeatures))
	weight := rng.Uniform(-limit, limit, tensor.Shape{outFeatures, inFeatures})

	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		tanh:        tanh,
		weight:      NewParameter("dense.weight", weight),
		bias:        NewParameter("dense.bias", tensor.Zeros(tensor.Shape{outFeatures})),
	}
}

// Parameters returns the layer's trainable parameters.
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Forward computes the layer output for input of shape [batch, in_features].
func (d *Dense) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != d.inFeatures {
		return nil, fmt.Errorf("Dense.Forward: want input [batch, %d], got %v", d.inFeatures, shape)
	}
	batch := shape[0]

	out := tensor.Zeros(tensor.Shape{batch, d.outFeatures})
	x := mat.NewDense(batch, d.inFeatures, input.Data())
	w := mat.NewDense(d.outFeatures, d.inFeatures, d.weight.Value().Data())
	y := mat.NewDense(batch, d.outFeatures, out.Data())
	y.Mul(x, w.T())

	bias := d.bias.Value().Data()
	data := out.Data()
	for i := 0; i < batch; i++ {
		for j := 0; j < d.outFeatures; j++ {
			data[i*d.outFeatures+j] += bias[j]
			if d.tanh {
				data[i*d.outFeatures+j] = math.Tanh(data[i*d.outFeatures+j])
			}
		}
	}

	d.lastInput = input
	d.lastOutput = out
	return out, nil
}

// Backward accumulates parameter gradients for the last Forward call and
// returns the gradient with respect to the layer input. gradOutput has the
// output's shape [batch, out_features].
func (d *Dense) Backward(gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	if d.lastInput == nil {
		return nil, fmt.Errorf("Dense.Backward: Backward called before Forward")
	}
	if !gradOutput.Shape().Equal(d.lastOutput.Shape()) {
		return nil, fmt.Errorf("Dense.Backward: want gradient shape %v, got %v",
			d.lastOutput.Shape(), gradOutput.Shape())
	}
	batch := gradOutput.Shape()[0]

	// Through the activation: d tanh(z) / dz = 1 - tanh(z)^2.
	gradPre := gradOutput.Clone()
	if d.tanh {
		gp := gradPre.Data()
		out := d.lastOutput.Data()
		for i := range gp {
			gp[i] *= 1 - out[i]*out[i]
		}
	}

	gz := mat.NewDense(batch, d.outFeatures, gradPre.Data())
	x := mat.NewDense(batch, d.inFeatures, d.lastInput.Data())
	w := mat.NewDense(d.outFeatures, d.inFeatures, d.weight.Value().Data())

	gradW := mat.NewDense(d.outFeatures, d.inFeatures, make([]float64, d.outFeatures*d.inFeatures))
	gradW.Mul(gz.T(), x)
	accumulate(d.weight.Grad().Data(), gradW.RawMatrix().Data)

	biasGrad := d.bias.Grad().Data()
	gp := gradPre.Data()
	for i := 0; i < batch; i++ {
		for j := 0; j < d.outFeatures; j++ {
			biasGrad[j] += gp[i*d.outFeatures+j]
		}
	}

	gradInput := tensor.Zeros(tensor.Shape{batch, d.inFeatures})
	gx := mat.NewDense(batch, d.inFeatures, gradInput.Data())
	gx.Mul(gz, w)
	return gradInput, nil
}

func accumulate(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}
