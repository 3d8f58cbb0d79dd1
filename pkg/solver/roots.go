/*
Copyright 2025 The vcrc Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package solver

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotBracketed is returned when f(lo) and f(hi) have the same sign.
	ErrNotBracketed = errors.New("root is not bracketed")
	// ErrNoConvergence is returned when the iteration budget is exhausted.
	ErrNoConvergence = errors.New("root finder did not converge")
)

// DefaultMaxIterations bounds FindRoot when maxIter is not positive.
const DefaultMaxIterations = 200

// FindRoot locates x in [lo, hi] with f(x) = 0 using the Illinois variant of regula falsi.
// Iteration stops once the bracket or the step shrinks below tol.
func FindRoot(f func(float64) (float64, error), lo, hi, tol float64, maxIter int) (float64, error) {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	flo, err := f(lo)
	if err != nil {
		return math.NaN(), err
	}
	if flo == 0 {
		return lo, nil
	}
	fhi, err := f(hi)
	if err != nil {
		return math.NaN(), err
	}
	if fhi == 0 {
		return hi, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return math.NaN(), fmt.Errorf("%w in [%g, %g]: f(lo)=%g, f(hi)=%g", ErrNotBracketed, lo, hi, flo, fhi)
	}

	prev := math.Inf(1)
	side := 0
	for i := 0; i < maxIter; i++ {
		x := (lo*fhi - hi*flo) / (fhi - flo)
		fx, err := f(x)
		if err != nil {
			return math.NaN(), err
		}
		if fx == 0 || hi-lo <= tol || math.Abs(x-prev) <= tol {
			return x, nil
		}
		prev = x
		if math.Signbit(fx) == math.Signbit(fhi) {
			hi, fhi = x, fx
			if side == -1 {
				flo /= 2
			}
			side = -1
		} else {
			lo, flo = x, fx
			if side == 1 {
				fhi /= 2
			}
			side = 1
		}
	}
	return math.NaN(), fmt.Errorf("%w after %d iterations in [%g, %g]", ErrNoConvergence, maxIter, lo, hi)
}
