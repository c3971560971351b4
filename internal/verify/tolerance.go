package verify

// Tolerance defines acceptable numeric drift between an implementation and
// its reference computation. A pair (a, e) is close when
// |a-e| <= Atol + Rtol*|e|.
type Tolerance struct {
	Rtol float64
	Atol float64
}

// Default is the tolerance used when a scenario does not override it.
var Default = Tolerance{Rtol: 1e-3, Atol: 1e-4}

// Tight tolerances for checks that should agree to near float precision.
var (
	Tight = Tolerance{Rtol: 1e-3, Atol: 1e-6}
	Fine  = Tolerance{Rtol: 1e-3, Atol: 1e-5}
)

// Contains reports whether an absolute deviation at the given expected
// magnitude is within bounds.
func (t Tolerance) Contains(absErr, expectedMagnitude float64) bool {
	return absErr <= t.Atol+t.Rtol*expectedMagnitude
}
