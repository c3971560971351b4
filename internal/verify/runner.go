package verify

import (
	"fmt"
	"hash/fnv"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Scenario is one verification case: it produces an actual output from the
// implementation under test and an expected output from a reference
// computation, to be judged under the scenario's tolerance.
//
// Scenarios are independent and order-insensitive. Each invocation receives
// a freshly seeded generator derived from the runner seed and the scenario
// name, so randomized scenarios are reproducible without sharing state.
type Scenario struct {
	Name string
	Tol  Tolerance
	Run  func(rng *tensor.RNG) (actual, expected *tensor.Tensor, err error)
}

// ScenarioResult is the outcome of a single scenario.
type ScenarioResult struct {
	Name   string
	Result Result
	Err    error
}

// Passed reports whether the scenario completed and its comparison passed.
func (r ScenarioResult) Passed() bool {
	return r.Err == nil && r.Result.Pass
}

// String formats the outcome for reports.
func (r ScenarioResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%-40s ERROR: %v", r.Name, r.Err)
	}
	return fmt.Sprintf("%-40s %s", r.Name, r.Result)
}

// Runner executes scenarios sequentially. A failing scenario does not abort
// the remaining ones.
type Runner struct {
	Seed      uint64
	Scenarios []Scenario
}

// Run executes every scenario and returns one result per scenario.
func (r *Runner) Run() []ScenarioResult {
	results := make([]ScenarioResult, 0, len(r.Scenarios))
	for _, s := range r.Scenarios {
		results = append(results, r.runOne(s))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []ScenarioResult) bool {
	for _, res := range results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

func (r *Runner) runOne(s Scenario) ScenarioResult {
	res := ScenarioResult{Name: s.Name}
	tol := s.Tol
	if tol == (Tolerance{}) {
		tol = Default
	}

	actual, expected, err := s.Run(tensor.NewRNG(scenarioSeed(r.Seed, s.Name)))
	if err != nil {
		res.Err = err
		return res
	}
	res.Result, res.Err = CompareTensors(actual, expected, tol)
	return res
}

// scenarioSeed derives a per-scenario seed from the runner seed and the
// scenario name, keeping runs order-insensitive.
func scenarioSeed(seed uint64, name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ h.Sum64()
}
