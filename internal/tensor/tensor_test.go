package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	tr, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	assert.True(t, tr.Shape().Equal(Shape{2, 3}))
	assert.Equal(t, 6, tr.NumElements())
	assert.Equal(t, 6.0, tr.At(1, 2))
	assert.Equal(t, 4.0, tr.At(1, 0))
}

func TestFromSlice_ShapeMismatch(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	assert.Error(t, err)
}

func TestFromSlice_CopiesInput(t *testing.T) {
	data := []float64{1, 2}
	tr, err := FromSlice(data, Shape{2})
	require.NoError(t, err)

	data[0] = 99
	assert.Equal(t, 1.0, tr.At(0))
}

func TestShapeValidate(t *testing.T) {
	assert.Error(t, Shape{}.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
	assert.NoError(t, Shape{3, 4}.Validate())
}

func TestZerosOnesFull(t *testing.T) {
	z := Zeros(Shape{2, 2})
	assert.Equal(t, 0.0, z.Sum())

	o := Ones(Shape{2, 2})
	assert.Equal(t, 4.0, o.Sum())

	f := Full(2.5, Shape{3})
	assert.Equal(t, 7.5, f.Sum())
}

func TestSetAt(t *testing.T) {
	tr := Zeros(Shape{2, 3})
	tr.Set(7, 1, 1)
	assert.Equal(t, 7.0, tr.At(1, 1))
	assert.Equal(t, 0.0, tr.At(0, 1))
}

func TestClone_Independent(t *testing.T) {
	a := MustFromSlice([]float64{1, 2, 3}, Shape{3})
	b := a.Clone()
	b.Set(9, 0)

	assert.Equal(t, 1.0, a.At(0))
	assert.Equal(t, 9.0, b.At(0))
}

func TestReshape(t *testing.T) {
	a := MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b, err := a.Reshape(Shape{3, 2})
	require.NoError(t, err)

	assert.Equal(t, 4.0, b.At(1, 1))

	_, err = a.Reshape(Shape{4})
	assert.Error(t, err)
}

func TestItem(t *testing.T) {
	s := MustFromSlice([]float64{42}, Shape{1})
	assert.Equal(t, 42.0, s.Item())

	assert.Panics(t, func() {
		MustFromSlice([]float64{1, 2}, Shape{2}).Item()
	})
}

func TestElementwiseOps(t *testing.T) {
	a := MustFromSlice([]float64{1, 2, 3}, Shape{3})
	b := MustFromSlice([]float64{4, 5, 6}, Shape{3})

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum.Data())

	diff, err := Sub(b, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3}, diff.Data())

	prod, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, prod.Data())

	_, err = Add(a, Zeros(Shape{2}))
	assert.Error(t, err)
}

func TestScaleSumMean(t *testing.T) {
	a := MustFromSlice([]float64{1, 2, 3, 4}, Shape{4})
	assert.Equal(t, 10.0, a.Sum())
	assert.Equal(t, 2.5, a.Mean())

	scaled := a.Scale(0.5)
	assert.Equal(t, 5.0, scaled.Sum())
	// Scale does not mutate the receiver.
	assert.Equal(t, 10.0, a.Sum())
}

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(7).Uniform(-1, 1, Shape{4, 4})
	b := NewRNG(7).Uniform(-1, 1, Shape{4, 4})
	assert.Equal(t, a.Data(), b.Data())

	c := NewRNG(8).Uniform(-1, 1, Shape{4, 4})
	assert.NotEqual(t, a.Data(), c.Data())
}

func TestRNG_UniformRange(t *testing.T) {
	u := NewRNG(1).Uniform(2, 5, Shape{100})
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 5.0)
	}
}

func TestRNG_Bernoulli(t *testing.T) {
	b := NewRNG(3).Bernoulli(0.5, Shape{50})
	for _, v := range b.Data() {
		assert.True(t, v == 0 || v == 1)
	}
}
