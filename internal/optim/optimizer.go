// Package optim provides gradient-descent optimizers over nn parameters.
package optim

import (
	"github.com/criterion-ml/criterion/internal/nn"
)

// Optimizer applies accumulated parameter gradients.
type Optimizer interface {
	// Step updates every parameter from its accumulated gradient.
	Step()
	// ZeroGrad clears accumulated gradients on every parameter.
	ZeroGrad()
}

func zeroGrads(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
