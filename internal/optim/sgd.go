package optim

import (
	"github.com/criterion-ml/criterion/internal/nn"
	"github.com/criterion-ml/criterion/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule:
//
//	v = momentum * v + gradient
//	param = param - lr * v
type SGD struct {
	params   []*nn.Parameter
	lr       float64
	momentum float64
	velocity map[*nn.Parameter]*tensor.Tensor
}

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum coefficient (default: 0, plain SGD)
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(map[*nn.Parameter]*tensor.Tensor),
	}
}

// Step applies one SGD update to every parameter.
func (s *SGD) Step() {
	for _, p := range s.params {
		grad := p.Grad().Data()
		value := p.Value().Data()
		if s.momentum == 0 {
			for i := range value {
				value[i] -= s.lr * grad[i]
			}
			continue
		}
		v, ok := s.velocity[p]
		if !ok {
			v = tensor.Zeros(p.Value().Shape())
			s.velocity[p] = v
		}
		vd := v.Data()
		for i := range value {
			vd[i] = s.momentum*vd[i] + grad[i]
			value[i] -= s.lr * vd[i]
		}
	}
}

// ZeroGrad clears accumulated gradients.
func (s *SGD) ZeroGrad() {
	zeroGrads(s.params)
}
