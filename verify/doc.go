// Copyright 2026 Criterion ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package verify provides the numeric verification harness: approximate
// comparison with deviation bookkeeping, independent scenarios with
// reproducible randomness, and the built-in suite checking every loss
// against its reference formula.
//
// # Basic Usage
//
//	import "github.com/criterion-ml/criterion/verify"
//
//	runner := &verify.Runner{Seed: 42, Scenarios: verify.Suite()}
//	results := runner.Run()
//	for _, res := range results {
//	    fmt.Println(res)
//	}
//	if !verify.AllPassed(results) {
//	    os.Exit(1)
//	}
//
// Comparison follows |actual-expected| <= atol + rtol*|expected| per
// element; Result records the largest deviations and the first failing
// index for diagnostics.
package verify
