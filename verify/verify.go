// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package verify

import (
	"github.com/criterion-ml/criterion/internal/tensor"
	"github.com/criterion-ml/criterion/internal/verify"
)

// Tolerance bounds the allowed deviation of an approximate comparison.
type Tolerance = verify.Tolerance

// Preset tolerances.
var (
	// Default matches the common verification tolerance.
	Default = verify.Default
	// Tight is for comparisons expected to agree almost exactly.
	Tight = verify.Tight
	// Fine sits between Default and Tight.
	Fine = verify.Fine
)

// Result records the outcome of an approximate comparison.
type Result = verify.Result

// AlmostEqual compares two slices elementwise under the tolerance.
func AlmostEqual(actual, expected []float64, tol Tolerance) Result {
	return verify.AlmostEqual(actual, expected, tol)
}

// AlmostEqualScalar compares two scalars under the tolerance.
func AlmostEqualScalar(actual, expected float64, tol Tolerance) Result {
	return verify.AlmostEqualScalar(actual, expected, tol)
}

// CompareTensors compares two tensors of equal shape under the tolerance.
func CompareTensors(actual, expected *tensor.Tensor, tol Tolerance) (Result, error) {
	return verify.CompareTensors(actual, expected, tol)
}

// Scenario is one verification case.
type Scenario = verify.Scenario

// ScenarioResult is the outcome of a single scenario.
type ScenarioResult = verify.ScenarioResult

// Runner executes scenarios sequentially, continuing past failures.
type Runner = verify.Runner

// AllPassed reports whether every result passed.
func AllPassed(results []ScenarioResult) bool {
	return verify.AllPassed(results)
}

// Suite returns the built-in verification scenarios.
func Suite() []Scenario {
	return verify.Suite()
}
