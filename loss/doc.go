// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides the loss functions verified by Criterion.
//
// # Overview
//
// Every loss is an immutable value configured at construction and invoked
// through Evaluate, which returns a per-sample loss tensor of shape
// [batch]:
//   - L1, L2 regression losses with scalar and per-sample weighting
//   - Softmax cross-entropy over sparse or dense labels
//   - Sigmoid binary cross-entropy and the logistic loss
//   - Poisson negative log-likelihood with optional Stirling correction
//   - Cosine embedding loss over paired vectors
//   - CTC sequence loss in NTC/TNC layouts
//   - SDML smoothed deep metric learning loss with analytic gradients
//
// # Basic Usage
//
//	import (
//	    "github.com/criterion-ml/criterion/loss"
//	    "github.com/criterion-ml/criterion/tensor"
//	)
//
//	l2 := loss.NewL2Loss(loss.Options{Weight: 0.5})
//	perSample, err := l2.Evaluate(pred, label)
package loss
