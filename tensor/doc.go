// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors used throughout
// Criterion.
//
// # Overview
//
// Tensors are row-major, contiguous and mutable. This package provides:
//   - Shape with element counting and validation
//   - Construction from Go slices, zeros, ones, and constants
//   - Elementwise arithmetic and scalar reductions
//   - Seeded random generation for reproducible scenarios
//
// # Basic Usage
//
//	import "github.com/criterion-ml/criterion/tensor"
//
//	pred := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4})
//	rng := tensor.NewRNG(42)
//	noise := rng.Uniform(-0.1, 0.1, tensor.Shape{4})
//	noisy, err := tensor.Add(pred, noise)
package tensor
