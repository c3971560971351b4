package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Add returns the elementwise sum a + b. Shapes must match.
func Add(a, b *Tensor) (*Tensor, error) {
	return zipWith(a, b, "Add", func(x, y float64) float64 { return x + y })
}

// Sub returns the elementwise difference a - b. Shapes must match.
func Sub(a, b *Tensor) (*Tensor, error) {
	return zipWith(a, b, "Sub", func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product a * b. Shapes must match.
func Mul(a, b *Tensor) (*Tensor, error) {
	return zipWith(a, b, "Mul", func(x, y float64) float64 { return x * y })
}

// Scale returns a new tensor with every element multiplied by s.
func (t *Tensor) Scale(s float64) *Tensor {
	out := t.Clone()
	floats.Scale(s, out.data)
	return out
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	return floats.Sum(t.data)
}

// Mean returns the arithmetic mean of all elements.
func (t *Tensor) Mean() float64 {
	return floats.Sum(t.data) / float64(len(t.data))
}

func zipWith(a, b *Tensor, op string, f func(x, y float64) float64) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, fmt.Errorf("%s: shape mismatch %v vs %v", op, a.shape, b.shape)
	}
	out := make([]float64, len(a.data))
	for i := range a.data {
		out[i] = f(a.data[i], b.data[i])
	}
	return &Tensor{data: out, shape: a.shape.Clone(), strides: append([]int(nil), a.strides...)}, nil
}
