package verify

import (
	"fmt"
	"math"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Result records the outcome of an approximate comparison.
type Result struct {
	Pass      bool
	MaxAbsErr float64
	MaxRelErr float64
	// FailCount is the number of element pairs outside tolerance; FirstFail
	// is the flat index of the first such pair (-1 when all pass).
	FailCount int
	FirstFail int
	// SizeMismatch holds the disagreeing element counts (actual, expected)
	// when the inputs could not be compared at all.
	SizeMismatch [2]int
}

// String formats the result for diagnostics.
func (r Result) String() string {
	if r.SizeMismatch[0] != r.SizeMismatch[1] {
		return fmt.Sprintf("FAIL: size mismatch, %d elements vs %d expected",
			r.SizeMismatch[0], r.SizeMismatch[1])
	}
	if r.Pass {
		return fmt.Sprintf("pass (max abs err %.3g, max rel err %.3g)", r.MaxAbsErr, r.MaxRelErr)
	}
	return fmt.Sprintf("FAIL: %d elements out of tolerance, first at index %d (max abs err %.3g, max rel err %.3g)",
		r.FailCount, r.FirstFail, r.MaxAbsErr, r.MaxRelErr)
}

// AlmostEqual compares two slices elementwise under the tolerance.
// An element pair passes when |a-e| <= atol + rtol*|e|.
func AlmostEqual(actual, expected []float64, tol Tolerance) Result {
	r := Result{Pass: true, FirstFail: -1}
	if len(actual) != len(expected) {
		return Result{FirstFail: -1, SizeMismatch: [2]int{len(actual), len(expected)}}
	}
	for i := range actual {
		absErr := math.Abs(actual[i] - expected[i])
		if absErr > r.MaxAbsErr {
			r.MaxAbsErr = absErr
		}
		if mag := math.Abs(expected[i]); mag > 0 && absErr/mag > r.MaxRelErr {
			r.MaxRelErr = absErr / mag
		}
		if !tol.Contains(absErr, math.Abs(expected[i])) {
			r.FailCount++
			if r.FirstFail < 0 {
				r.FirstFail = i
			}
		}
	}
	r.Pass = r.FailCount == 0
	return r
}

// AlmostEqualScalar compares two scalars under the tolerance.
func AlmostEqualScalar(actual, expected float64, tol Tolerance) Result {
	return AlmostEqual([]float64{actual}, []float64{expected}, tol)
}

// CompareTensors compares two tensors under the tolerance. Shapes must
// match; a shape mismatch is an error rather than a numeric failure.
func CompareTensors(actual, expected *tensor.Tensor, tol Tolerance) (Result, error) {
	if actual == nil || expected == nil {
		return Result{}, fmt.Errorf("compare: tensors must be non-nil")
	}
	if !actual.Shape().Equal(expected.Shape()) {
		return Result{}, fmt.Errorf("compare: shape mismatch %v vs %v", actual.Shape(), expected.Shape())
	}
	return AlmostEqual(actual.Data(), expected.Data(), tol), nil
}
