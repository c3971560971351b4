// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the small neural building blocks used by the
// metric-learning convergence scenario: trainable parameters and a dense
// layer with manual forward and backward passes.
package nn

import (
	"github.com/criterion-ml/criterion/internal/nn"
	"github.com/criterion-ml/criterion/internal/tensor"
)

// Parameter represents a trainable parameter of a layer.
type Parameter = nn.Parameter

// NewParameter creates a parameter around an initialized value tensor.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, value)
}

// Dense is a fully connected layer with an optional tanh activation.
type Dense = nn.Dense

// NewDense creates a Dense layer with Xavier-initialized weights drawn
// from the given generator.
func NewDense(inFeatures, outFeatures int, tanh bool, rng *tensor.RNG) *Dense {
	return nn.NewDense(inFeatures, outFeatures, tanh, rng)
}
