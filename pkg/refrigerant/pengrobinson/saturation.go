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

package pengrobinson

import (
	"errors"
	"fmt"
	"math"

	"github.com/refcycle/vcrc/pkg/solver"
)

const (
	// Saturation is resolved between these reduced temperatures.
	minReducedSaturationTemperature = 0.4
	maxReducedSaturationTemperature = 0.995

	maxSaturationIterations = 100
	fugacityTolerance       = 1e-10
	temperatureTolerance    = 1e-9
)

var (
	errNearCritical        = errors.New("too close to the critical point")
	errBelowSaturationLine = errors.New("below the lowest supported saturation temperature")
)

// saturation is a raw (un-offset) saturated liquid/vapor pair.
type saturation struct {
	temperature float64
	pressure    float64
	hl, hv      float64
	sl, sv      float64
}

// saturationPressure solves equal fugacities of the liquid and vapor roots at t.
// Newton iterates on ln P starting from the Wilson correlation.
func (e *eos) saturationPressure(t float64) (float64, error) {
	tc, pc := e.fluid.CriticalTemperature, e.fluid.CriticalPressure
	if t > maxReducedSaturationTemperature*tc {
		return math.NaN(), fmt.Errorf("%w: T=%.3f K, Tc=%.3f K", errNearCritical, t, tc)
	}
	if t < minReducedSaturationTemperature*tc {
		return math.NaN(), fmt.Errorf("%w: T=%.3f K", errBelowSaturationLine, t)
	}

	p := pc * math.Exp(5.373*(1+e.fluid.AcentricFactor)*(1-tc/t))
	// pressures known to be below (lo) and above (hi) the saturation pressure
	lo, hi := 0.0, math.Inf(1)
	for i := 0; i < maxSaturationIterations; i++ {
		A, B := e.dimensionless(t, p)
		roots := compressibilities(A, B)
		if len(roots) < 2 {
			if liquidLike(roots[0], B) {
				hi = p
			} else {
				lo = p
			}
			p = between(lo, hi)
			continue
		}
		liquid := e.departure(t, p, roots[0])
		vapor := e.departure(t, p, roots[len(roots)-1])
		g := liquid.lnPhi - vapor.lnPhi
		if math.Abs(g) < fugacityTolerance {
			return p, nil
		}
		if g > 0 {
			lo = p
		} else {
			hi = p
		}
		step := g / (vapor.z - liquid.z)
		step = math.Max(-0.5, math.Min(0.5, step))
		next := p * math.Exp(step)
		if next <= lo || next >= hi {
			next = between(lo, hi)
		}
		p = next
	}
	return math.NaN(), fmt.Errorf("saturation pressure at T=%.3f K: %w", t, solver.ErrNoConvergence)
}

// between bisects [lo, hi] geometrically, or steps outward by 10% while a side is still open.
func between(lo, hi float64) float64 {
	switch {
	case lo > 0 && !math.IsInf(hi, 1):
		return math.Sqrt(lo * hi)
	case lo > 0:
		return lo * 1.1
	default:
		return hi * 0.9
	}
}

// saturationAt returns the raw saturated pair at t.
func (e *eos) saturationAt(t float64) (saturation, error) {
	p, err := e.saturationPressure(t)
	if err != nil {
		return saturation{}, err
	}
	liquid := e.state(t, p, liquidRoot)
	vapor := e.state(t, p, vaporRoot)
	return saturation{
		temperature: t,
		pressure:    p,
		hl:          liquid.h,
		hv:          vapor.h,
		sl:          liquid.s,
		sv:          vapor.s,
	}, nil
}

// saturationTemperature inverts saturationPressure.
func (e *eos) saturationTemperature(p float64) (float64, error) {
	tc := e.fluid.CriticalTemperature
	lo, hi := minReducedSaturationTemperature*tc, maxReducedSaturationTemperature*tc
	t, err := solver.FindRoot(func(t float64) (float64, error) {
		ps, err := e.saturationPressure(t)
		if err != nil {
			return math.NaN(), err
		}
		return math.Log(ps / p), nil
	}, lo, hi, temperatureTolerance, 0)
	if errors.Is(err, solver.ErrNotBracketed) {
		if p >= e.fluid.CriticalPressure*0.5 {
			return math.NaN(), fmt.Errorf("%w: P=%.0f Pa", errNearCritical, p)
		}
		return math.NaN(), fmt.Errorf("%w: P=%.0f Pa", errBelowSaturationLine, p)
	}
	return t, err
}
