package reference

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CTC computes the negative log-likelihood of the label sequence under the
// forward (alpha) recurrence, allowing blank insertion between and around
// labels. activations is one sequence in time-major order (steps × classes),
// unnormalized; a softmax over classes is applied per step. The blank symbol
// is the last class.
//
// The recurrence runs in linear space with per-step rescaling, deliberately
// a different formulation than the log-space implementation under test.
func CTC(activations []float64, steps, classes int, label []int) float64 {
	blank := classes - 1

	// Extended label: blanks interleaved around every symbol.
	ext := make([]int, 2*len(label)+1)
	for i := range ext {
		ext[i] = blank
	}
	for i, l := range label {
		ext[2*i+1] = l
	}
	n := len(ext)

	probs := make([]float64, steps*classes)
	for t := 0; t < steps; t++ {
		row := activations[t*classes : (t+1)*classes]
		out := probs[t*classes : (t+1)*classes]
		maxV := floats.Max(row)
		sum := 0.0
		for c, v := range row {
			out[c] = math.Exp(v - maxV)
			sum += out[c]
		}
		floats.Scale(1/sum, out)
	}

	alpha := make([]float64, n)
	next := make([]float64, n)
	alpha[0] = probs[blank]
	if n > 1 {
		alpha[1] = probs[ext[1]]
	}
	logLik := rescale(alpha)

	for t := 1; t < steps; t++ {
		frame := probs[t*classes : (t+1)*classes]
		for s := 0; s < n; s++ {
			a := alpha[s]
			if s >= 1 {
				a += alpha[s-1]
			}
			// A skip over the preceding blank is allowed unless the symbol
			// repeats or is itself blank.
			if s >= 2 && ext[s] != blank && ext[s] != ext[s-2] {
				a += alpha[s-2]
			}
			next[s] = a * frame[ext[s]]
		}
		alpha, next = next, alpha
		logLik += rescale(alpha)
	}

	tail := alpha[n-1]
	if n > 1 {
		tail += alpha[n-2]
	}
	return -(logLik + math.Log(tail))
}

// rescale normalizes alpha to sum one and returns the log of the factor.
func rescale(alpha []float64) float64 {
	sum := floats.Sum(alpha)
	floats.Scale(1/sum, alpha)
	return math.Log(sum)
}
