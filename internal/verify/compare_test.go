package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/tensor"
)

func TestAlmostEqual_Bookkeeping(t *testing.T) {
	actual := []float64{1.0, 2.0, 3.5, 4.0}
	expected := []float64{1.0, 2.1, 3.0, 4.0}

	res := AlmostEqual(actual, expected, Tolerance{Rtol: 1e-3, Atol: 1e-4})
	assert.False(t, res.Pass)
	assert.Equal(t, 2, res.FailCount)
	assert.Equal(t, 1, res.FirstFail)
	assert.InDelta(t, 0.5, res.MaxAbsErr, 1e-12)
	assert.InDelta(t, 0.5/3.0, res.MaxRelErr, 1e-12)
}

func TestAlmostEqual_Pass(t *testing.T) {
	actual := []float64{1.0001, -2.0002, 0.0}
	expected := []float64{1.0, -2.0, 1e-5}

	res := AlmostEqual(actual, expected, Default)
	assert.True(t, res.Pass)
	assert.Equal(t, 0, res.FailCount)
	assert.Equal(t, -1, res.FirstFail)
}

// Atol governs near zero, rtol at large magnitude.
func TestTolerance_Interplay(t *testing.T) {
	tight := Tolerance{Rtol: 1e-3, Atol: 1e-6}

	res := AlmostEqualScalar(1e-5, 0, tight)
	assert.False(t, res.Pass, "absolute term alone must reject 1e-5 vs 0")

	res = AlmostEqualScalar(1000.5, 1000, tight)
	assert.True(t, res.Pass, "relative term must absorb 0.5 at magnitude 1000")

	res = AlmostEqualScalar(1000.5, 1000, Tolerance{Atol: 1e-6})
	assert.False(t, res.Pass, "without rtol the same pair must fail")
}

func TestAlmostEqual_LengthMismatch(t *testing.T) {
	res := AlmostEqual([]float64{1, 2}, []float64{1}, Default)
	assert.False(t, res.Pass)
	// The mismatch is reported as such, not as a synthetic element count.
	assert.Equal(t, 0, res.FailCount)
	assert.Equal(t, [2]int{2, 1}, res.SizeMismatch)
	assert.Contains(t, res.String(), "size mismatch, 2 elements vs 1 expected")
}

func TestCompareTensors_ShapeMismatch(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})
	b := tensor.Zeros(tensor.Shape{6})
	_, err := CompareTensors(a, b, Default)
	assert.Error(t, err)

	_, err = CompareTensors(nil, b, Default)
	assert.Error(t, err)
}

func TestCompareTensors_Pass(t *testing.T) {
	a := tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	res, err := CompareTensors(a, a.Clone(), Tight)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Zero(t, res.MaxAbsErr)
}
