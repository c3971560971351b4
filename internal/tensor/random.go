package tensor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RNG is an explicitly seeded random source for tensor creation.
//
// Scenarios own their RNG rather than sharing package-global state, so
// each one draws an independent, reproducible stream.
type RNG struct {
	src *rand.Rand
}

// NewRNG creates a generator seeded with the given value.
func NewRNG(seed uint64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// Uniform creates a tensor with elements drawn from U(low, high).
func (r *RNG) Uniform(low, high float64, shape Shape) *Tensor {
	dist := distuv.Uniform{Min: low, Max: high, Src: r.src}
	return r.fill(dist.Rand, shape)
}

// Normal creates a tensor with elements drawn from N(mu, sigma).
func (r *RNG) Normal(mu, sigma float64, shape Shape) *Tensor {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}
	return r.fill(dist.Rand, shape)
}

// Bernoulli creates a tensor of 0/1 values with success probability p.
func (r *RNG) Bernoulli(p float64, shape Shape) *Tensor {
	dist := distuv.Bernoulli{P: p, Src: r.src}
	return r.fill(dist.Rand, shape)
}

func (r *RNG) fill(draw func() float64, shape Shape) *Tensor {
	out := Zeros(shape)
	for i := range out.data {
		out.data[i] = draw()
	}
	return out
}
