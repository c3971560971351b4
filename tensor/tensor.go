// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/criterion-ml/criterion/internal/tensor"

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 tensor.
type Tensor = tensor.Tensor

// RNG is a seeded source of random tensors.
type RNG = tensor.RNG

// NewRNG creates a generator with the given seed.
func NewRNG(seed uint64) *RNG {
	return tensor.NewRNG(seed)
}

// FromSlice creates a tensor by copying data into the given shape.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is FromSlice panicking on error, for literals in tests and
// scenarios.
func MustFromSlice(data []float64, shape Shape) *Tensor {
	return tensor.MustFromSlice(data, shape)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a one-filled tensor.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with the given value.
func Full(value float64, shape Shape) *Tensor {
	return tensor.Full(value, shape)
}

// Add returns the elementwise sum of two tensors of equal shape.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// Sub returns the elementwise difference of two tensors of equal shape.
func Sub(a, b *Tensor) (*Tensor, error) {
	return tensor.Sub(a, b)
}

// Mul returns the elementwise product of two tensors of equal shape.
func Mul(a, b *Tensor) (*Tensor, error) {
	return tensor.Mul(a, b)
}
