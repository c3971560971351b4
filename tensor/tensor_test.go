// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/criterion-ml/criterion/tensor"
)

// TestPublicAPI verifies the re-exported surface works end to end.
func TestPublicAPI(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if !a.Shape().Equal(tensor.Shape{2, 2}) {
		t.Errorf("Shape() = %v, want [2, 2]", a.Shape())
	}

	b := tensor.Full(1, tensor.Shape{2, 2})
	sum, err := tensor.Add(a, b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got := sum.At(1, 1); got != 5 {
		t.Errorf("Add result At(1,1) = %v, want 5", got)
	}

	if got := tensor.Ones(tensor.Shape{3}).Sum(); got != 3 {
		t.Errorf("Ones sum = %v, want 3", got)
	}
}

// TestRNGAlias verifies a seeded generator reproduces its stream through
// the public alias.
func TestRNGAlias(t *testing.T) {
	a := tensor.NewRNG(11).Normal(0, 1, tensor.Shape{4})
	b := tensor.NewRNG(11).Normal(0, 1, tensor.Shape{4})
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatalf("streams diverge at %d: %v vs %v", i, a.Data()[i], b.Data()[i])
		}
	}
}
