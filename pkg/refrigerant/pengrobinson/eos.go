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
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/refcycle/vcrc/pkg/refrigerant"
)

const (
	referenceTemperature = refrigerant.ZeroCelsius
	referencePressure    = 1e5
)

// rootChoice selects which compressibility root of the cubic a state uses.
type rootChoice int

const (
	stableRoot rootChoice = iota
	vaporRoot
	liquidRoot
)

// eos holds the Peng-Robinson constants of one fluid on a specific (per kg) basis.
type eos struct {
	fluid *refrigerant.Fluid
	r     float64
	ac    float64
	b     float64
	kappa float64
	cp    [4]float64
}

// rawState is a single-phase state before the IIR reference offsets are applied.
type rawState struct {
	z         float64
	lnPhi     float64
	h         float64
	s         float64
	vaporLike bool
}

func newEOS(f *refrigerant.Fluid) *eos {
	r := f.SpecificGasConstant()
	tc, pc, w := f.CriticalTemperature, f.CriticalPressure, f.AcentricFactor
	e := &eos{
		fluid: f,
		r:     r,
		ac:    0.45724 * r * r * tc * tc / pc,
		b:     0.07780 * r * tc / pc,
		kappa: 0.37464 + 1.54226*w - 0.26992*w*w,
	}
	for i, c := range f.IdealGasHeatCapacity {
		e.cp[i] = c / f.MolarMass
	}
	return e
}

// attraction returns a(T) and da/dT.
func (e *eos) attraction(t float64) (a, dadT float64) {
	tc := e.fluid.CriticalTemperature
	m := 1 + e.kappa*(1-math.Sqrt(t/tc))
	a = e.ac * m * m
	dadT = -e.ac * e.kappa * m / math.Sqrt(t*tc)
	return a, dadT
}

func (e *eos) dimensionless(t, p float64) (A, B float64) {
	a, _ := e.attraction(t)
	rt := e.r * t
	return a * p / (rt * rt), e.b * p / rt
}

// departure evaluates fugacity and residual properties for one root.
func (e *eos) departure(t, p, z float64) rawState {
	a, dadT := e.attraction(t)
	rt := e.r * t
	A := a * p / (rt * rt)
	B := e.b * p / rt
	l := math.Log((z + (1+math.Sqrt2)*B) / (z + (1-math.Sqrt2)*B))
	return rawState{
		z:     z,
		lnPhi: z - 1 - math.Log(z-B) - A/(2*math.Sqrt2*B)*l,
		h:     rt*(z-1) + (t*dadT-a)/(2*math.Sqrt2*e.b)*l,
		s:     e.r*math.Log(z-B) + dadT/(2*math.Sqrt2*e.b)*l,
	}
}

func (e *eos) idealEnthalpy(t float64) float64 {
	c, t0 := e.cp, referenceTemperature
	return c[0]*(t-t0) +
		c[1]/2*(t*t-t0*t0) +
		c[2]/3*(t*t*t-t0*t0*t0) +
		c[3]/4*(t*t*t*t-t0*t0*t0*t0)
}

func (e *eos) idealEntropy(t, p float64) float64 {
	c, t0 := e.cp, referenceTemperature
	return c[0]*math.Log(t/t0) +
		c[1]*(t-t0) +
		c[2]/2*(t*t-t0*t0) +
		c[3]/3*(t*t*t-t0*t0*t0) -
		e.r*math.Log(p/referencePressure)
}

// state returns the raw single-phase state at (T, P) on the chosen root.
func (e *eos) state(t, p float64, choice rootChoice) rawState {
	A, B := e.dimensionless(t, p)
	roots := compressibilities(A, B)

	var chosen rawState
	switch choice {
	case vaporRoot:
		chosen = e.departure(t, p, roots[len(roots)-1])
	case liquidRoot:
		chosen = e.departure(t, p, roots[0])
	default:
		for i, z := range roots {
			candidate := e.departure(t, p, z)
			if i == 0 || candidate.lnPhi < chosen.lnPhi {
				chosen = candidate
			}
		}
	}
	if len(roots) > 1 {
		chosen.vaporLike = chosen.z == roots[len(roots)-1]
	} else {
		chosen.vaporLike = !liquidLike(chosen.z, B)
	}
	chosen.h += e.idealEnthalpy(t)
	chosen.s += e.idealEntropy(t, p)
	return chosen
}

// compressibilities returns the physical (Z > B) real roots of the Peng-Robinson cubic in ascending order.
// Roots come from the eigenvalues of the companion matrix and are polished with Newton steps.
func compressibilities(A, B float64) []float64 {
	c2 := -(1 - B)
	c1 := A - 3*B*B - 2*B
	c0 := -(A*B - B*B - B*B*B)

	companion := mat.NewDense(3, 3, []float64{
		-c2, -c1, -c0,
		1, 0, 0,
		0, 1, 0,
	})
	var eig mat.Eigen
	roots := make([]float64, 0, 3)
	if eig.Factorize(companion, mat.EigenNone) {
		for _, v := range eig.Values(nil) {
			if math.Abs(imag(v)) > 1e-9*math.Max(1, math.Abs(real(v))) {
				continue
			}
			if z := polish(real(v), c2, c1, c0); z > B {
				roots = append(roots, z)
			}
		}
	}
	if len(roots) == 0 {
		// the largest root always exceeds B; fall back to Newton from the ideal-gas guess
		roots = append(roots, polish(1, c2, c1, c0))
	}
	sort.Float64s(roots)
	return roots
}

// liquidLike reports whether a lone real root lies on the liquid branch: the complex pair then sits
// above the inflection point of the cubic at (1-B)/3.
func liquidLike(z, B float64) bool {
	return z < (1-B)/3
}

func polish(z, c2, c1, c0 float64) float64 {
	for i := 0; i < 4; i++ {
		f := ((z+c2)*z+c1)*z + c0
		df := (3*z+2*c2)*z + c1
		if df == 0 {
			break
		}
		z -= f / df
	}
	return z
}
