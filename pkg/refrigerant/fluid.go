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

package refrigerant

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// UniversalGasConstant in J/(mol·K).
	UniversalGasConstant = 8.314462618

	// GlideTolerance is the largest temperature glide (K) still treated as zero.
	GlideTolerance = 0.01

	// ZeroCelsius is 0 °C in K.
	ZeroCelsius = 273.15
)

// ErrUnknownRefrigerant is returned by Lookup for names missing from the catalog.
var ErrUnknownRefrigerant = errors.New("unknown refrigerant")

// Kind classifies a working fluid by its composition.
type Kind string

const (
	// SingleComponent is a pure fluid (R32, R744, ...).
	SingleComponent Kind = "SingleComponent"
	// AzeotropicBlend is a blend that boils at constant temperature (R5xx series).
	AzeotropicBlend Kind = "AzeotropicBlend"
	// ZeotropicBlend is a blend with a composition-dependent glide (R4xx series).
	ZeotropicBlend Kind = "ZeotropicBlend"
)

// Fluid holds the identity and the constants a property provider needs for one refrigerant.
type Fluid struct {
	// Name is the canonical designation, e.g. "R32".
	Name string

	// MolarMass in kg/mol.
	MolarMass float64

	// CriticalTemperature in K.
	CriticalTemperature float64

	// CriticalPressure in Pa.
	CriticalPressure float64

	// AcentricFactor is Pitzer's acentric factor.
	AcentricFactor float64

	// IdealGasHeatCapacity holds the coefficients of cp0(T) = c0 + c1·T + c2·T² + c3·T³ in J/(mol·K).
	IdealGasHeatCapacity [4]float64

	// Glide is the temperature glide at atmospheric pressure in K (zero for pure fluids).
	Glide float64
}

// Kind classifies the fluid following the ASHRAE 34 numbering: R4xx zeotropic, R5xx azeotropic.
func (f *Fluid) Kind() Kind {
	name := strings.ToUpper(f.Name)
	switch {
	case strings.HasPrefix(name, "R4"):
		return ZeotropicBlend
	case strings.HasPrefix(name, "R5"):
		return AzeotropicBlend
	default:
		return SingleComponent
	}
}

// IsSingleComponent reports whether the fluid is a pure substance.
func (f *Fluid) IsSingleComponent() bool {
	return f.Kind() == SingleComponent
}

// IsAzeotropicBlend reports whether the fluid is an azeotropic blend.
func (f *Fluid) IsAzeotropicBlend() bool {
	return f.Kind() == AzeotropicBlend
}

// IsZeotropicBlend reports whether the fluid is a zeotropic blend.
func (f *Fluid) IsZeotropicBlend() bool {
	return f.Kind() == ZeotropicBlend
}

// HasGlide reports whether the fluid changes temperature during an isobaric phase change.
func (f *Fluid) HasGlide() bool {
	return f.Glide > GlideTolerance
}

// SpecificGasConstant in J/(kg·K).
func (f *Fluid) SpecificGasConstant() float64 {
	return UniversalGasConstant / f.MolarMass
}

func (f *Fluid) String() string {
	return f.Name
}

// Lookup returns the catalog entry for name (case-insensitive).
func Lookup(name string) (*Fluid, error) {
	fluid, ok := catalog[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRefrigerant, name)
	}
	return fluid, nil
}

// Names returns the sorted catalog names.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, f := range catalog {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
